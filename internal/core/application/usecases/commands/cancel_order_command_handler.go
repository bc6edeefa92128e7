package commands

import (
	"context"
	"log/slog"
	"time"

	"foodgo/internal/core/application/events"
	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/ports"
	"foodgo/internal/pkg/errs"
)

// CancelOrderCommandHandler handles cancellation. Customers may cancel their
// own orders, admins any order; the transition table rejects cancelling
// terminal orders.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the cancellation. Watchers learn about it through a
// statusUpdate on the order's channel after commit.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	switch cmd.ActorRole() {
	case kernel.RoleAdmin:
		// Admins may cancel any order.
	case kernel.RoleCustomer:
		if !aggregate.CustomerID().IsEqual(cmd.ActorID()) {
			return errs.NewNotAuthorizedError(cmd.ActorRole().String(), "cancel order")
		}
	default:
		return errs.NewNotAuthorizedError(cmd.ActorRole().String(), "cancel order")
	}

	if err = aggregate.Cancel(); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event := events.StatusUpdate{
		OrderID:   aggregate.ID().String(),
		Status:    aggregate.Status().String(),
		Timestamp: time.Now(),
	}
	if err = h.publisher.Publish(ctx, event); err != nil {
		slog.Warn("cancellation publish failed", "orderId", aggregate.ID().String(), "error", err)
	}

	return nil
}
