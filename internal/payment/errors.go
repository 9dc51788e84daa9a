package payment

import (
	"errors"

	"github.com/noah-isme/pos-tender/internal/common"
)

var (
	// ErrInvalidPayment is returned when a payment fails input validation.
	ErrInvalidPayment = errors.New("invalid payment")
	// ErrUnknownMethod indicates the method is not enabled for the tender.
	ErrUnknownMethod = errors.New("payment method not enabled")
	// ErrNotAllowedInReturns indicates the method cannot refund a return.
	ErrNotAllowedInReturns = errors.New("payment method not allowed in returns")
	// ErrPaymentNotFound is returned when no entry matches the given ID.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrCreditExceeded indicates more customer credit was tendered than is available.
	ErrCreditExceeded = errors.New("customer credit exceeded")
	// ErrPaymentIncomplete indicates the grand total is not covered and partial payment is not allowed.
	ErrPaymentIncomplete = errors.New("payment incomplete")
)

// Error codes attached to AppError values returned by Tender.
const (
	CodeInvalidPayment      = "invalid_payment"
	CodeUnknownMethod       = "unknown_payment_method"
	CodePaymentNotFound     = "payment_not_found"
	CodeNotAllowedInReturns = "payment_method_not_allowed_in_returns"
	CodeCreditExceeded      = "customer_credit_exceeded"
	CodePaymentIncomplete   = "payment_incomplete"
)

func newError(code string, err error, message string) *common.AppError {
	return common.NewAppError(code, message, err)
}
