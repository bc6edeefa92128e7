package commands

import (
	"context"

	"foodgo/internal/core/ports"
	"foodgo/internal/pkg/errs"
)

// ProcessPaymentCommandHandler settles an order's payment through the
// external gateway port.
//
// A declined charge marks the payment failed and commits; a transport-level
// gateway failure also marks the payment failed, commits that mark, and then
// surfaces the ExternalServiceError to the caller.
type ProcessPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
}

// NewProcessPaymentCommandHandler creates a handler for payment settlement.
func NewProcessPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.PaymentGateway,
) ProcessPaymentCommandHandler {
	return ProcessPaymentCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
	}
}

// Handle processes the settlement. Only the order's own customer may pay.
func (h *ProcessPaymentCommandHandler) Handle(ctx context.Context, cmd ProcessPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !aggregate.CustomerID().IsEqual(cmd.CustomerID()) {
		return errs.NewNotAuthorizedError("customer", "process payment")
	}

	charge, gatewayErr := h.gateway.Charge(ctx,
		aggregate.ID().String(),
		aggregate.Payment().Amount,
		aggregate.Payment().Method.String(),
	)

	if gatewayErr != nil || !charge.Succeeded {
		aggregate.MarkPaymentFailed()
	} else if err = aggregate.MarkPaymentCompleted(charge.TransactionID); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return gatewayErr
}
