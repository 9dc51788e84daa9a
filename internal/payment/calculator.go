package payment

import "github.com/noah-isme/pos-tender/internal/money"

// MethodTotalFunc returns the amount tendered so far with a payment method.
type MethodTotalFunc func(method string) float64

// Summary aggregates the derived tender values shown to the cashier.
type Summary struct {
	TotalPaid                float64 `json:"total_paid"`
	TotalAvailableCredit     float64 `json:"total_available_credit"`
	RemainingAvailableCredit float64 `json:"remaining_available_credit"`
	RemainingAmount          float64 `json:"remaining_amount"`
	ChangeAmount             float64 `json:"change_amount"`
}

// Settled reports whether the payments cover the grand total.
func (s Summary) Settled() bool {
	return s.RemainingAmount == 0
}

// Compute derives the tender summary. When methodTotal is nil the customer
// credit usage is read from the entries themselves.
func Compute(entries []Entry, grandTotal float64, balance Balance, methodTotal MethodTotalFunc) Summary {
	if methodTotal == nil {
		methodTotal = func(method string) float64 { return MethodTotal(entries, method) }
	}

	paid := TotalPaid(entries)
	due := money.Round2(grandTotal)
	credit := balance.AvailableCredit()

	return Summary{
		TotalPaid:                paid,
		TotalAvailableCredit:     credit,
		RemainingAvailableCredit: money.NonNegative(money.Sub(credit, methodTotal(MethodCustomerCredit))),
		RemainingAmount:          money.NonNegative(money.Sub(due, paid)),
		ChangeAmount:             money.NonNegative(money.Sub(paid, due)),
	}
}
