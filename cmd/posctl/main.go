package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/pos-tender/internal/common"
	"github.com/noah-isme/pos-tender/internal/config"
	"github.com/noah-isme/pos-tender/internal/currency"
	"github.com/noah-isme/pos-tender/internal/numpad"
	"github.com/noah-isme/pos-tender/internal/obs"
	"github.com/noah-isme/pos-tender/internal/payment"
	"github.com/noah-isme/pos-tender/internal/quickamount"
)

const (
	exitOK         = 0
	exitFailure    = 1
	exitIncomplete = 2
)

type tenderDocument struct {
	GrandTotal float64         `json:"grand_total"`
	Currency   string          `json:"currency"`
	Locale     string          `json:"locale"`
	Return     bool            `json:"return"`
	Customer   payment.Balance `json:"customer"`
	Payments   []struct {
		Method string  `json:"method"`
		Amount float64 `json:"amount"`
	} `json:"payments"`
	Numpad string `json:"numpad"`
}

type displayValue struct {
	Amount float64 `json:"amount"`
	Text   string  `json:"text"`
	Class  string  `json:"class"`
}

type numpadView struct {
	Keys  string  `json:"keys"`
	Text  string  `json:"text"`
	Value float64 `json:"value"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type report struct {
	Currency     string                  `json:"currency"`
	Symbol       string                  `json:"symbol"`
	Summary      payment.Summary         `json:"summary"`
	Display      map[string]displayValue `json:"display"`
	MethodTotals map[string]float64      `json:"method_totals"`
	QuickAmounts []displayValue          `json:"quick_amounts"`
	Numpad       *numpadView             `json:"numpad,omitempty"`
	Receipt      *payment.Receipt        `json:"receipt,omitempty"`
	Error        *errorBody              `json:"error,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("posctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		file     = fs.String("file", "", "tender document to evaluate; reads stdin when empty")
		complete = fs.Bool("complete", false, "attempt to complete the tender and include the receipt")
		metrics  = fs.Bool("metrics", false, "write collected metrics to stderr in Prometheus text format")
	)
	if err := fs.Parse(args); err != nil {
		return exitFailure
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return exitFailure
	}
	logger := obs.NewLoggerTo(stderr, cfg.LogFormat, cfg.LogLevel).With().Str("component", "posctl").Logger()

	doc, err := readDocument(*file, stdin)
	if err != nil {
		logger.Error().Err(err).Msg("read tender document")
		return exitFailure
	}

	rep, code := evaluate(cfg, doc, *complete, logger)

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		logger.Error().Err(err).Msg("encode report")
		return exitFailure
	}

	if *metrics {
		reg := obs.NewRegistry(cfg.MetricsNamespace,
			payment.TenderRecomputeTotal,
			payment.TenderCompleteTotal,
			quickamount.SuggestTotal,
			numpad.RejectedKeysTotal,
		)
		if err := obs.WriteMetrics(stderr, reg); err != nil {
			logger.Error().Err(err).Msg("write metrics")
		}
	}
	return code
}

func readDocument(path string, stdin io.Reader) (tenderDocument, error) {
	var doc tenderDocument
	r := stdin
	if strings.TrimSpace(path) != "" {
		f, err := os.Open(path)
		if err != nil {
			return doc, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return doc, fmt.Errorf("decode tender document: %w", err)
	}
	return doc, nil
}

func evaluate(cfg *config.Config, doc tenderDocument, complete bool, logger zerolog.Logger) (report, int) {
	code := valueOr(doc.Currency, cfg.Currency)
	locale := valueOr(doc.Locale, cfg.Locale)
	rep := report{Currency: strings.ToUpper(code), Symbol: currency.SymbolFor(code, locale)}

	tender := payment.NewTender(payment.Options{Methods: cfg.PaymentMethods, Policy: cfg.Policy, Return: doc.Return})
	tender.SetGrandTotal(doc.GrandTotal)
	tender.SetBalance(doc.Customer)
	for _, p := range doc.Payments {
		if _, err := tender.AddPayment(p.Method, p.Amount); err != nil {
			logger.Warn().Err(err).Str("method", p.Method).Float64("amount", p.Amount).Msg("payment rejected")
			rep.Error = toErrorBody(err)
			return rep, exitFailure
		}
	}

	s := tender.Summary()
	rep.Summary = s
	rep.MethodTotals = payment.MethodTotals(tender.Entries())
	display := func(v float64) displayValue {
		return displayValue{Amount: v, Text: currency.Format(v, code, locale), Class: currency.Class(v)}
	}
	rep.Display = map[string]displayValue{
		"grand_total":                display(tender.GrandTotal()),
		"total_paid":                 display(s.TotalPaid),
		"total_available_credit":     display(s.TotalAvailableCredit),
		"remaining_available_credit": display(s.RemainingAvailableCredit),
		"remaining_amount":           display(s.RemainingAmount),
		"change_amount":              display(s.ChangeAmount),
	}
	for _, amount := range tender.QuickAmounts() {
		rep.QuickAmounts = append(rep.QuickAmounts, display(amount))
	}

	if doc.Numpad != "" {
		var buf numpad.Buffer
		for _, r := range doc.Numpad {
			buf.Input(string(r))
		}
		rep.Numpad = &numpadView{Keys: doc.Numpad, Text: buf.String(), Value: buf.Value()}
	}

	logger.Debug().
		Float64("grand_total", tender.GrandTotal()).
		Float64("total_paid", s.TotalPaid).
		Float64("remaining", s.RemainingAmount).
		Float64("change", s.ChangeAmount).
		Int("payments", len(doc.Payments)).
		Msg("tender evaluated")

	if !complete {
		return rep, exitOK
	}
	receipt, err := tender.Complete()
	if err != nil {
		logger.Info().Err(err).Str("code", common.ErrorCode(err)).Msg("tender not completed")
		rep.Error = toErrorBody(err)
		return rep, exitIncomplete
	}
	rep.Receipt = &receipt
	logger.Info().Int("payments", len(receipt.Payments)).Float64("change_returned", receipt.ChangeReturned).Msg("tender completed")
	return rep, exitOK
}

func toErrorBody(err error) *errorBody {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		return &errorBody{Code: appErr.Code, Message: appErr.Message, Details: appErr.Details}
	}
	return &errorBody{Code: "internal", Message: err.Error()}
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}
