package order

import (
	"fmt"

	"foodgo/internal/pkg/errs"
)

// PaymentMethod enumerates how a customer pays for an order.
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodUPI    PaymentMethod = "upi"
	PaymentMethodWallet PaymentMethod = "wallet"
)

// Validate checks the method is a member of the enumerated set.
func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodUPI, PaymentMethodWallet:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment method",
			fmt.Errorf("%q is not a valid payment method", string(m)))
	}
}

// String implements fmt.Stringer.
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentStatus enumerates the settlement state of an order's payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Validate checks the status is a member of the enumerated set.
func (s PaymentStatus) Validate() error {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%q is not a valid payment status", string(s)))
	}
}

// String implements fmt.Stringer.
func (s PaymentStatus) String() string {
	return string(s)
}

// Payment captures the settlement side of an order. The gateway itself is an
// external collaborator; this core only records its outcome.
type Payment struct {
	Method        PaymentMethod
	Status        PaymentStatus
	TransactionID string
	Amount        float64
}

// Validate checks both enums and a non-negative amount.
func (p Payment) Validate() error {
	if err := p.Method.Validate(); err != nil {
		return err
	}
	if err := p.Status.Validate(); err != nil {
		return err
	}
	if p.Amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("payment amount",
			fmt.Errorf("%f is negative", p.Amount))
	}
	return nil
}
