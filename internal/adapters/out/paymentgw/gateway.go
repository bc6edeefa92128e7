// Package paymentgw implements the payment gateway port against a simulated
// provider. There is no real processor behind it; the adapter produces
// realistic transaction identifiers and deterministic outcomes so the payment
// flow can be exercised end to end.
package paymentgw

import (
	"context"

	"github.com/lucsky/cuid"

	"foodgo/internal/core/ports"
	"foodgo/internal/pkg/errs"
)

// Gateway simulates an external payment provider.
//
// Charges above DeclineAbove are declined (Succeeded=false, no error), which
// gives tests and demos a knob for the failure path. Zero means never decline.
type Gateway struct {
	declineAbove float64
}

// NewGateway creates a simulated gateway. declineAbove <= 0 disables the
// decline threshold.
func NewGateway(declineAbove float64) *Gateway {
	return &Gateway{declineAbove: declineAbove}
}

// Charge settles the given amount against the order. A cancelled context is
// reported as a transport failure, same as a real provider timing out.
func (g *Gateway) Charge(
	ctx context.Context,
	orderID string,
	amount float64,
	method string,
) (ports.PaymentCharge, error) {
	if err := ctx.Err(); err != nil {
		return ports.PaymentCharge{}, errs.NewExternalServiceError("payment gateway", err)
	}
	if orderID == "" {
		return ports.PaymentCharge{}, errs.NewValueIsRequiredError("orderID")
	}
	if amount <= 0 {
		return ports.PaymentCharge{}, errs.NewValueIsInvalidError("amount")
	}
	if method == "" {
		return ports.PaymentCharge{}, errs.NewValueIsRequiredError("method")
	}

	if g.declineAbove > 0 && amount > g.declineAbove {
		return ports.PaymentCharge{Succeeded: false}, nil
	}

	return ports.PaymentCharge{
		TransactionID: "txn_" + cuid.New(),
		Succeeded:     true,
	}, nil
}
