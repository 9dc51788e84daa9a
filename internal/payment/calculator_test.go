package payment_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pos-tender/internal/payment"
)

func TestComputeTotalPaid(t *testing.T) {
	t.Parallel()

	entries := []payment.Entry{{Method: "Cash", Amount: 10.1}, {Method: "Card", Amount: 5}}
	s := payment.Compute(entries, 20, payment.Balance{}, nil)
	require.Equal(t, 15.1, s.TotalPaid)
	require.Equal(t, 4.9, s.RemainingAmount)
	require.Equal(t, 0.0, s.ChangeAmount)
}

func TestComputeMissingAmountsCountAsZero(t *testing.T) {
	t.Parallel()

	entries := []payment.Entry{{Method: "Cash"}, {Method: "Card", Amount: math.NaN()}, {Method: "Cash", Amount: 3}}
	s := payment.Compute(entries, 3, payment.Balance{}, nil)
	require.Equal(t, 3.0, s.TotalPaid)
	require.True(t, s.Settled())
}

func TestComputeChange(t *testing.T) {
	t.Parallel()

	entries := []payment.Entry{{Method: "Cash", Amount: 50}}
	s := payment.Compute(entries, 37.45, payment.Balance{}, nil)
	require.Equal(t, 0.0, s.RemainingAmount)
	require.Equal(t, 12.55, s.ChangeAmount)
}

func TestComputeRoundsGrandTotal(t *testing.T) {
	t.Parallel()

	entries := []payment.Entry{{Method: "Cash", Amount: 0.1}, {Method: "Cash", Amount: 0.2}}
	s := payment.Compute(entries, 0.3, payment.Balance{}, nil)
	require.Equal(t, 0.3, s.TotalPaid)
	require.Equal(t, 0.0, s.RemainingAmount)
	require.Equal(t, 0.0, s.ChangeAmount)
}

func TestComputeCredit(t *testing.T) {
	t.Parallel()

	entries := []payment.Entry{
		{Method: payment.MethodCustomerCredit, Amount: 15},
		{Method: "Cash", Amount: 5},
	}
	s := payment.Compute(entries, 30, payment.Balance{NetBalance: -40}, nil)
	require.Equal(t, 40.0, s.TotalAvailableCredit)
	require.Equal(t, 25.0, s.RemainingAvailableCredit)
	require.Equal(t, 10.0, s.RemainingAmount)
}

func TestComputeCustomerOwes(t *testing.T) {
	t.Parallel()

	s := payment.Compute(nil, 10, payment.Balance{NetBalance: 25}, nil)
	require.Equal(t, -25.0, s.TotalAvailableCredit)
	require.Equal(t, 0.0, s.RemainingAvailableCredit)
	require.Equal(t, 10.0, s.RemainingAmount)
}

func TestComputeUsesAccessor(t *testing.T) {
	t.Parallel()

	calls := []string{}
	accessor := func(method string) float64 {
		calls = append(calls, method)
		return 7.5
	}
	s := payment.Compute(nil, 0, payment.Balance{NetBalance: -10}, accessor)
	require.Equal(t, []string{payment.MethodCustomerCredit}, calls)
	require.Equal(t, 2.5, s.RemainingAvailableCredit)
}

func TestRemainingAndChangeExclusive(t *testing.T) {
	t.Parallel()

	totals := []float64{0, 0.01, 9.99, 10, 10.01, 37.5, 100}
	paid := []float64{0, 0.01, 5, 10, 10.005, 40, 99.99}
	for _, gt := range totals {
		for _, p := range paid {
			s := payment.Compute([]payment.Entry{{Method: "Cash", Amount: p}}, gt, payment.Balance{}, nil)
			require.GreaterOrEqual(t, s.RemainingAmount, 0.0)
			require.GreaterOrEqual(t, s.ChangeAmount, 0.0)
			require.False(t, s.RemainingAmount > 0 && s.ChangeAmount > 0, "gt=%v paid=%v", gt, p)
			if s.TotalPaid >= gt {
				require.Equal(t, 0.0, s.RemainingAmount)
			}
		}
	}
}

func TestMethodTotals(t *testing.T) {
	t.Parallel()

	entries := []payment.Entry{
		{Method: "Cash", Amount: 0.1},
		{Method: "Cash", Amount: 0.2},
		{Method: "Card", Amount: 12},
	}
	require.Equal(t, 0.3, payment.MethodTotal(entries, "cash"))
	require.Equal(t, 0.0, payment.MethodTotal(entries, "Voucher"))
	require.Equal(t, map[string]float64{"Cash": 0.3, "Card": 12}, payment.MethodTotals(entries))
}

func TestMethodTotalsIgnoreCase(t *testing.T) {
	t.Parallel()

	entries := []payment.Entry{
		{Method: "customer credit", Amount: 5},
		{Method: "Customer Credit", Amount: 5},
		{Method: " CASH", Amount: 1.25},
	}
	require.Equal(t, 10.0, payment.MethodTotal(entries, payment.MethodCustomerCredit))
	require.Equal(t, map[string]float64{"customer credit": 10, " CASH": 1.25}, payment.MethodTotals(entries))
}

func TestDefaultAndFindMethod(t *testing.T) {
	t.Parallel()

	methods := []payment.Method{
		{Name: "Cash", Type: payment.TypeCash},
		{Name: "Card", Type: payment.TypeBank, Default: true},
		{Name: payment.MethodCustomerCredit, Type: payment.TypeGeneral},
	}
	def, ok := payment.DefaultMethod(methods)
	require.True(t, ok)
	require.Equal(t, "Card", def.Name)

	def, ok = payment.DefaultMethod(methods[:1])
	require.True(t, ok)
	require.Equal(t, "Cash", def.Name)

	_, ok = payment.DefaultMethod(nil)
	require.False(t, ok)

	m, ok := payment.FindMethod(methods, " customer credit ")
	require.True(t, ok)
	require.True(t, m.IsWallet())
	require.False(t, methods[0].IsWallet())
}
