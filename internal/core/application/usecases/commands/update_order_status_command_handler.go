package commands

import (
	"context"
	"log/slog"
	"time"

	"foodgo/internal/core/application/events"
	"foodgo/internal/core/ports"
	"foodgo/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler handles lifecycle transitions reported by
// the assigned delivery partner. Transition legality lives in the aggregate;
// the handler owns authorization and event publication.
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewUpdateOrderStatusCommandHandler creates a handler for status transitions.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the transition. Only the assigned partner may move an
// order; after commit a statusUpdate event goes to the order's channel.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	if !aggregate.IsAssignedTo(cmd.PartnerID()) {
		return errs.NewNotAuthorizedError("delivery_partner", "update order status")
	}

	if err = aggregate.UpdateStatus(cmd.NewStatus(), cmd.Location()); err != nil {
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
	if loc := cmd.Location(); loc != nil {
		lat, lon := loc.Latitude(), loc.Longitude()
		event.Latitude, event.Longitude = &lat, &lon
	}
	if err = h.publisher.Publish(ctx, event); err != nil {
		slog.Warn("statusUpdate publish failed", "orderId", aggregate.ID().String(), "error", err)
	}

	return nil
}
