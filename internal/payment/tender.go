package payment

import (
	"math"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/noah-isme/pos-tender/internal/money"
	"github.com/noah-isme/pos-tender/internal/quickamount"
)

// Policy captures the POS settings that govern how a tender may complete.
type Policy struct {
	AllowPartialPayment bool
	AllowWriteOffChange bool
}

// Options configures a Tender.
type Options struct {
	// Methods restricts accepted payment methods. Empty accepts any named method.
	Methods []Method
	Policy  Policy
	// Return marks a refund tender; only methods allowing returns are accepted.
	Return bool
	// OnChange, when set, receives the summary after every recompute.
	OnChange func(Summary)
}

// Receipt is the outcome of completing a tender.
type Receipt struct {
	Summary
	Payments         []Entry `json:"payments"`
	Outstanding      float64 `json:"outstanding"`
	ChangeReturned   float64 `json:"change_returned"`
	ChangeWrittenOff float64 `json:"change_written_off"`
}

type paymentInput struct {
	Method string  `validate:"required,max=140"`
	Amount float64 `validate:"finite,gte=0"`
}

// Tender holds the inputs of a split payment and keeps its summary current:
// every mutation recomputes the derived values before returning.
type Tender struct {
	opts       Options
	validate   *validator.Validate
	entries    []Entry
	grandTotal float64
	balance    Balance
	summary    Summary
}

// NewTender constructs an empty tender.
func NewTender(opts Options) *Tender {
	v := validator.New()
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	t := &Tender{opts: opts, validate: v}
	t.recompute()
	return t
}

// SetGrandTotal updates the amount due.
func (t *Tender) SetGrandTotal(total float64) {
	t.grandTotal = money.Sanitize(total)
	t.recompute()
}

// GrandTotal returns the amount due.
func (t *Tender) GrandTotal() float64 {
	return t.grandTotal
}

// SetBalance updates the customer's account balance.
func (t *Tender) SetBalance(b Balance) {
	t.balance = b
	t.recompute()
}

// AddPayment appends a validated payment entry.
func (t *Tender) AddPayment(method string, amount float64) (Entry, error) {
	name, err := t.checkInput(method, amount)
	if err != nil {
		return Entry{}, err
	}
	entry := Entry{ID: uuid.New(), Method: name, Amount: money.Round2(amount)}
	t.entries = append(t.entries, entry)
	t.recompute()
	return entry, nil
}

// UpdatePayment replaces the amount of an existing entry.
func (t *Tender) UpdatePayment(id uuid.UUID, amount float64) error {
	idx := t.indexOf(id)
	if idx < 0 {
		return newError(CodePaymentNotFound, ErrPaymentNotFound, "payment not found")
	}
	if _, err := t.checkInput(t.entries[idx].Method, amount); err != nil {
		return err
	}
	t.entries[idx].Amount = money.Round2(amount)
	t.recompute()
	return nil
}

// RemovePayment deletes an entry.
func (t *Tender) RemovePayment(id uuid.UUID) error {
	idx := t.indexOf(id)
	if idx < 0 {
		return newError(CodePaymentNotFound, ErrPaymentNotFound, "payment not found")
	}
	t.entries = append(t.entries[:idx], t.entries[idx+1:]...)
	t.recompute()
	return nil
}

// ClearPayments removes every entry.
func (t *Tender) ClearPayments() {
	t.entries = nil
	t.recompute()
}

// Entries returns a copy of the current entries.
func (t *Tender) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// MethodTotal returns the amount tendered so far with method.
func (t *Tender) MethodTotal(method string) float64 {
	return MethodTotal(t.entries, method)
}

// Summary returns the derived values for the current inputs.
func (t *Tender) Summary() Summary {
	return t.summary
}

// QuickAmounts suggests round amounts for what is still owed.
func (t *Tender) QuickAmounts() []float64 {
	return quickamount.Suggest(t.summary.RemainingAmount)
}

// Complete checks the tender against the policy and produces a receipt.
func (t *Tender) Complete() (Receipt, error) {
	s := t.summary
	if used := t.MethodTotal(MethodCustomerCredit); used > 0 && used > money.NonNegative(s.TotalAvailableCredit) {
		TenderCompleteTotal.WithLabelValues(CodeCreditExceeded).Inc()
		return Receipt{}, newError(CodeCreditExceeded, ErrCreditExceeded, "customer credit exceeded").
			WithDetails(map[string]float64{"used": used, "available": s.TotalAvailableCredit})
	}
	if s.RemainingAmount > 0 && !t.opts.Policy.AllowPartialPayment {
		TenderCompleteTotal.WithLabelValues(CodePaymentIncomplete).Inc()
		return Receipt{}, newError(CodePaymentIncomplete, ErrPaymentIncomplete, "payment incomplete").
			WithDetails(map[string]float64{"remaining": s.RemainingAmount})
	}

	receipt := Receipt{
		Summary:     s,
		Payments:    t.Entries(),
		Outstanding: s.RemainingAmount,
	}
	if t.opts.Policy.AllowWriteOffChange {
		receipt.ChangeWrittenOff = s.ChangeAmount
	} else {
		receipt.ChangeReturned = s.ChangeAmount
	}
	TenderCompleteTotal.WithLabelValues("ok").Inc()
	return receipt, nil
}

func (t *Tender) checkInput(method string, amount float64) (string, error) {
	in := paymentInput{Method: strings.TrimSpace(method), Amount: amount}
	if err := t.validate.Struct(in); err != nil {
		return "", newError(CodeInvalidPayment, ErrInvalidPayment, "invalid payment").WithDetails(fieldErrors(err))
	}
	if len(t.opts.Methods) == 0 {
		return in.Method, nil
	}
	m, ok := FindMethod(t.opts.Methods, in.Method)
	if !ok {
		return "", newError(CodeUnknownMethod, ErrUnknownMethod, "payment method not enabled").
			WithDetails(map[string]string{"method": in.Method})
	}
	if t.opts.Return && !m.AllowInReturns {
		return "", newError(CodeNotAllowedInReturns, ErrNotAllowedInReturns, "payment method not allowed in returns").
			WithDetails(map[string]string{"method": m.Name})
	}
	return m.Name, nil
}

func (t *Tender) indexOf(id uuid.UUID) int {
	for i, e := range t.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (t *Tender) recompute() {
	t.summary = Compute(t.entries, t.grandTotal, t.balance, t.MethodTotal)
	TenderRecomputeTotal.Inc()
	if t.opts.OnChange != nil {
		t.opts.OnChange(t.summary)
	}
}

func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out["_"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		out[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return out
}
