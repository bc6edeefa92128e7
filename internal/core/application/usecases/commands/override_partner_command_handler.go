package commands

import (
	"context"
	"log/slog"
	"time"

	"foodgo/internal/core/application/events"
	"foodgo/internal/core/ports"
)

// OverridePartnerCommandHandler handles admin reassignment of an order to a
// different delivery partner. The replacement must exist; watchers of the
// order learn about it through a fresh orderAccepted event.
type OverridePartnerCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewOverridePartnerCommandHandler creates a handler for partner overrides.
func NewOverridePartnerCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) OverridePartnerCommandHandler {
	return OverridePartnerCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the reassignment.
func (h *OverridePartnerCommandHandler) Handle(ctx context.Context, cmd OverridePartnerCommand) error {
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

	replacement, err := uow.PartnerRepository().Get(ctx, cmd.NewPartnerID())
	if err != nil {
		return err
	}

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.OverridePartner(replacement.ID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event := events.OrderAccepted{
		OrderID:     aggregate.ID().String(),
		PartnerID:   replacement.ID().String(),
		PartnerName: replacement.Name(),
		EtaMinutes:  pickupEta(aggregate, replacement),
		AcceptedAt:  time.Now(),
	}
	if err = h.publisher.Publish(ctx, event); err != nil {
		slog.Warn("partner override publish failed", "orderId", aggregate.ID().String(), "error", err)
	}

	return nil
}
