package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"foodgo/internal/core/application/events"
	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/order"
	"foodgo/internal/core/domain/model/partner"
	"foodgo/internal/core/domain/services"
	"foodgo/internal/core/ports"
	"foodgo/internal/pkg/errs"
)

// AcceptOrderCommandHandler handles first-claim-wins order acceptance.
//
// The claim only succeeds while the order is unassigned in a claimable status.
// Racing claims are serialized by the repository's version-conditional update:
// exactly one committer wins, everyone else gets a conflict from Update and is
// answered with the same not-available error an already-claimed order produces.
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
func NewAcceptOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the claim. On success the orderAccepted event goes to the
// order's channel and the winning partner's channel after commit.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
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

	claimant, err := uow.PartnerRepository().Get(ctx, cmd.PartnerID())
	if err != nil {
		return err
	}

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.Accept(claimant.ID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		if errors.Is(err, errs.ErrConflict) {
			// Lost the race: indistinguishable from an order that was
			// already claimed when we looked.
			return errs.NewObjectNotFoundErrorWithCause("order", cmd.OrderID().String(), err)
		}
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event := events.OrderAccepted{
		OrderID:     aggregate.ID().String(),
		PartnerID:   claimant.ID().String(),
		PartnerName: claimant.Name(),
		EtaMinutes:  pickupEta(aggregate, claimant),
		AcceptedAt:  time.Now(),
	}
	if err = h.publisher.Publish(ctx, event); err != nil {
		slog.Warn("orderAccepted publish failed", "orderId", aggregate.ID().String(), "error", err)
	}

	return nil
}

// pickupEta estimates the partner's travel time to the restaurant in minutes.
// Claims are legal from any distance, so the matcher ranks without a radius
// cap; when either location is unknown the default distance stands in.
func pickupEta(aggregate *order.Order, claimant *partner.DeliveryPartner) int {
	if pickup := aggregate.Restaurant().Coordinates; pickup != nil {
		candidate, err := services.NewPartnerMatcher().Best(
			*pickup, []*partner.DeliveryPartner{claimant}, services.UnboundedRadiusKm)
		if err == nil {
			return candidate.EtaMinutes
		}
	}

	return kernel.TravelEstimate(kernel.DefaultDistanceKm, claimant.Vehicle().Type.SpeedKmh())
}
