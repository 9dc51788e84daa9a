package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/pos-tender/internal/currency"
)

func runCLI(t *testing.T, input string, args ...string) (report, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(input), &stdout, &stderr)
	var rep report
	if stdout.Len() > 0 {
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &rep))
	}
	return rep, stderr.String(), code
}

func TestRunEvaluatesTender(t *testing.T) {
	input := `{
		"grand_total": 57,
		"customer": {"net_balance": -30},
		"payments": [{"method": "Cash", "amount": 10}, {"method": "Customer Credit", "amount": 10}],
		"numpad": "12.345"
	}`
	rep, _, code := runCLI(t, input)
	require.Equal(t, exitOK, code)
	require.Equal(t, "USD", rep.Currency)
	require.Equal(t, "$", rep.Symbol)
	require.Equal(t, 20.0, rep.Summary.TotalPaid)
	require.Equal(t, 37.0, rep.Summary.RemainingAmount)
	require.Equal(t, 20.0, rep.Summary.RemainingAvailableCredit)
	require.Equal(t, "$ 37.00", rep.Display["remaining_amount"].Text)
	require.Equal(t, map[string]float64{"Cash": 10, "Customer Credit": 10}, rep.MethodTotals)

	amounts := make([]float64, 0, len(rep.QuickAmounts))
	for _, q := range rep.QuickAmounts {
		amounts = append(amounts, q.Amount)
	}
	require.Equal(t, []float64{37, 50, 60, 100}, amounts)

	require.NotNil(t, rep.Numpad)
	require.Equal(t, "12.34", rep.Numpad.Text)
	require.Equal(t, 12.34, rep.Numpad.Value)
	require.Nil(t, rep.Receipt)
}

func TestRunCompleteIncomplete(t *testing.T) {
	rep, _, code := runCLI(t, `{"grand_total": 20, "payments": [{"method": "Cash", "amount": 5}]}`, "-complete")
	require.Equal(t, exitIncomplete, code)
	require.NotNil(t, rep.Error)
	require.Equal(t, "payment_incomplete", rep.Error.Code)
}

func TestRunCompleteFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tender.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"grand_total": 18.5, "locale": "de-DE", "currency": "EUR", "payments": [{"method": "Card", "amount": 20}]}`), 0o600))

	rep, _, code := runCLI(t, "", "-file", path, "-complete")
	require.Equal(t, exitOK, code)
	require.NotNil(t, rep.Receipt)
	require.Equal(t, 1.5, rep.Receipt.ChangeReturned)
	require.Equal(t, "€ 1,50", rep.Display["change_amount"].Text)
}

func TestRunRejectsUnknownMethod(t *testing.T) {
	rep, stderr, code := runCLI(t, `{"grand_total": 5, "payments": [{"method": "Barter", "amount": 5}]}`)
	require.Equal(t, exitFailure, code)
	require.Equal(t, "unknown_payment_method", rep.Error.Code)
	require.Contains(t, stderr, "payment rejected")
}

func TestRunRejectsMalformedDocument(t *testing.T) {
	_, stderr, code := runCLI(t, `{"grand_total": "lots"}`)
	require.Equal(t, exitFailure, code)
	require.Contains(t, stderr, "decode tender document")
}

func TestRunWritesMetrics(t *testing.T) {
	_, stderr, code := runCLI(t, `{"grand_total": 5}`, "-metrics")
	require.Equal(t, exitOK, code)
	require.Contains(t, stderr, "pos_payment_tender_recompute_total")
	require.Contains(t, stderr, "pos_quickamount_suggest_total")
}

func TestRunMetricsNamespaceFromEnv(t *testing.T) {
	t.Setenv("METRICS_NAMESPACE", "store")
	_, stderr, code := runCLI(t, `{"grand_total": 5}`, "-metrics")
	require.Equal(t, exitOK, code)
	require.Contains(t, stderr, "store_payment_tender_recompute_total")
	require.NotContains(t, stderr, "pos_payment_tender_recompute_total")
}

func TestRunReturnRejectsRestrictedMethod(t *testing.T) {
	rep, _, code := runCLI(t, `{"grand_total": 5, "return": true, "payments": [{"method": "Card", "amount": 5}]}`)
	require.Equal(t, exitFailure, code)
	require.Equal(t, "payment_method_not_allowed_in_returns", rep.Error.Code)

	rep, _, code = runCLI(t, `{"grand_total": 5, "return": true, "payments": [{"method": "Cash", "amount": 5}]}`)
	require.Equal(t, exitOK, code)
	require.Nil(t, rep.Error)
}

func TestRunSymbolFollowsLocale(t *testing.T) {
	rep, _, code := runCLI(t, `{"grand_total": 5, "currency": "CAD", "locale": "fr-CA"}`)
	require.Equal(t, exitOK, code)
	require.Equal(t, currency.SymbolFor("CAD", "fr-CA"), rep.Symbol)
}
