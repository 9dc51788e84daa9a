package payment

import (
	"strings"

	"github.com/google/uuid"

	"github.com/noah-isme/pos-tender/internal/money"
)

// MethodCustomerCredit is the wallet method drawing on the customer's credit balance.
const MethodCustomerCredit = "Customer Credit"

// Mode of payment types.
const (
	TypeCash    = "Cash"
	TypeBank    = "Bank"
	TypeGeneral = "General"
	TypePhone   = "Phone"
)

// Entry is one tendered payment within a split tender.
type Entry struct {
	ID     uuid.UUID `json:"id"`
	Method string    `json:"method"`
	Amount float64   `json:"amount"`
}

// Balance is the customer's signed account balance. A negative NetBalance
// means the customer holds credit.
type Balance struct {
	NetBalance float64 `json:"net_balance"`
}

// AvailableCredit returns the credit the customer may spend, or a negative
// value when the customer owes money.
func (b Balance) AvailableCredit() float64 {
	return money.Round2(-b.NetBalance)
}

// Method describes a payment method enabled on the POS profile.
type Method struct {
	Name           string `json:"mode_of_payment"`
	Type           string `json:"type"`
	Default        bool   `json:"default"`
	AllowInReturns bool   `json:"allow_in_returns"`
}

// IsWallet reports whether the method draws on customer credit.
func (m Method) IsWallet() bool {
	return strings.EqualFold(m.Name, MethodCustomerCredit)
}

// DefaultMethod returns the method flagged as default, or the first one.
func DefaultMethod(methods []Method) (Method, bool) {
	for _, m := range methods {
		if m.Default {
			return m, true
		}
	}
	if len(methods) == 0 {
		return Method{}, false
	}
	return methods[0], true
}

// FindMethod looks up a method by name, ignoring case and surrounding space.
func FindMethod(methods []Method, name string) (Method, bool) {
	name = strings.TrimSpace(name)
	for _, m := range methods {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return Method{}, false
}

// TotalPaid sums all entry amounts, treating non-finite amounts as zero.
func TotalPaid(entries []Entry) float64 {
	amounts := make([]float64, 0, len(entries))
	for _, e := range entries {
		amounts = append(amounts, e.Amount)
	}
	return money.Sum(amounts...)
}

// MethodTotal sums the entries tendered with the given method.
func MethodTotal(entries []Entry, method string) float64 {
	amounts := make([]float64, 0, len(entries))
	method = strings.TrimSpace(method)
	for _, e := range entries {
		if strings.EqualFold(strings.TrimSpace(e.Method), method) {
			amounts = append(amounts, e.Amount)
		}
	}
	return money.Sum(amounts...)
}

// MethodTotals groups entry amounts by method, ignoring case. Each group is
// keyed by the spelling of its first entry.
func MethodTotals(entries []Entry) map[string]float64 {
	names := make(map[string]string)
	grouped := make(map[string][]float64)
	for _, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.Method))
		if _, ok := names[key]; !ok {
			names[key] = e.Method
		}
		grouped[key] = append(grouped[key], e.Amount)
	}
	out := make(map[string]float64, len(grouped))
	for key, amounts := range grouped {
		out[names[key]] = money.Sum(amounts...)
	}
	return out
}
