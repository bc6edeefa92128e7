package ports

import (
	"context"
)

// PaymentCharge is the gateway's answer to a charge request.
type PaymentCharge struct {
	TransactionID string
	Succeeded     bool
}

// PaymentGateway charges a customer for an order through an external payment
// provider. Transport-level failures surface as errs.ExternalServiceError; a
// declined charge is a successful call with Succeeded=false.
type PaymentGateway interface {
	Charge(ctx context.Context, orderID string, amount float64, method string) (PaymentCharge, error)
}
