package commands

import (
	"context"
	"log/slog"
	"time"

	"foodgo/internal/core/application/events"
	"foodgo/internal/core/ports"
)

// UpdatePartnerLocationCommandHandler handles partner position reports.
//
// Besides stamping the partner's presence record, the position is appended to
// the route trail of every order the partner is currently carrying (picked_up
// or on_the_way), and each of those orders gets a deliveryLocationUpdate on
// its channel after commit.
type UpdatePartnerLocationCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewUpdatePartnerLocationCommandHandler creates a handler for location reports.
func NewUpdatePartnerLocationCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
) UpdatePartnerLocationCommandHandler {
	return UpdatePartnerLocationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the position report.
func (h *UpdatePartnerLocationCommandHandler) Handle(ctx context.Context, cmd UpdatePartnerLocationCommand) error {
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

	reporter, err := uow.PartnerRepository().Get(ctx, cmd.PartnerID())
	if err != nil {
		return err
	}

	if err = reporter.RecordLocation(cmd.Location()); err != nil {
		return err
	}

	if err = uow.PartnerRepository().Update(ctx, reporter); err != nil {
		return err
	}

	active, err := uow.OrderRepository().GetAllActiveByPartner(ctx, cmd.PartnerID())
	if err != nil {
		return err
	}

	var evts []events.Event
	for _, aggregate := range active {
		if !aggregate.Status().IsEnRoute() {
			continue
		}

		if err = aggregate.RecordPartnerLocation(cmd.Location()); err != nil {
			return err
		}
		if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
			return err
		}

		evts = append(evts, events.DeliveryLocationUpdate{
			OrderID:   aggregate.ID().String(),
			PartnerID: cmd.PartnerID().String(),
			Latitude:  cmd.Location().Latitude(),
			Longitude: cmd.Location().Longitude(),
			Timestamp: time.Now(),
		})
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if len(evts) > 0 {
		if err = h.publisher.Publish(ctx, evts...); err != nil {
			slog.Warn("deliveryLocationUpdate publish failed", "partnerId", cmd.PartnerID().String(), "error", err)
		}
	}

	return nil
}
