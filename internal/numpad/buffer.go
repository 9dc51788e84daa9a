package numpad

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/noah-isme/pos-tender/internal/money"
)

const (
	// MaxLength is the maximum number of characters a buffer accepts through Input.
	MaxLength = 10
	// MaxDecimals is the number of digits allowed after the decimal point.
	MaxDecimals = 2
)

// Reasons reported when a key is rejected.
const (
	RejectFull        = "full"
	RejectSecondPoint = "second_point"
	RejectDecimals    = "decimals"
	RejectInvalidKey  = "invalid_key"
)

// Buffer accumulates on-screen keypad strokes. The zero value is an empty buffer.
type Buffer struct {
	text string
}

// Input appends a single digit or decimal point, reporting whether it was accepted.
func (b *Buffer) Input(key string) bool {
	if reason := b.reject(key); reason != "" {
		RejectedKeysTotal.WithLabelValues(reason).Inc()
		return false
	}
	b.text += key
	return true
}

func (b *Buffer) reject(key string) string {
	if len(b.text) >= MaxLength {
		return RejectFull
	}
	if key == "." {
		if strings.Contains(b.text, ".") {
			return RejectSecondPoint
		}
		return ""
	}
	if len(key) != 1 || key[0] < '0' || key[0] > '9' {
		return RejectInvalidKey
	}
	if idx := strings.IndexByte(b.text, '.'); idx >= 0 && len(b.text)-idx-1 >= MaxDecimals {
		return RejectDecimals
	}
	return ""
}

// Backspace removes the last character. It is a no-op on an empty buffer.
func (b *Buffer) Backspace() {
	if b.text == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(b.text)
	b.text = b.text[:len(b.text)-size]
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.text = ""
}

// SetAmount replaces the buffer with v formatted to exactly two decimals.
func (b *Buffer) SetAmount(v float64) {
	b.text = strconv.FormatFloat(money.Round2(v), 'f', MaxDecimals, 64)
}

// SetText replaces the buffer verbatim.
func (b *Buffer) SetText(s string) {
	b.text = s
}

// String returns the raw buffer.
func (b *Buffer) String() string {
	return b.text
}

// Empty reports whether nothing has been entered.
func (b *Buffer) Empty() bool {
	return b.text == ""
}

// Value parses the buffer as a number, yielding 0 when it cannot be parsed.
func (b *Buffer) Value() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(b.text), 64)
	if err != nil {
		return 0
	}
	return money.Sanitize(v)
}
