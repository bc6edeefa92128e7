package commands

import (
	"context"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/pkg/errs"
)

// RateOrderCommandHandler handles post-delivery ratings. A customer rating
// their own order also folds the rating into the assigned partner's rolling
// average; a partner rating the customer only touches the order.
type RateOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewRateOrderCommandHandler creates a handler for order ratings.
func NewRateOrderCommandHandler(uowFactory UoWFactory) RateOrderCommandHandler {
	return RateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rating. The aggregate enforces delivered-only and
// at-most-once per side; the handler enforces ownership.
func (h *RateOrderCommandHandler) Handle(ctx context.Context, cmd RateOrderCommand) error {
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
	case kernel.RoleCustomer:
		if !aggregate.CustomerID().IsEqual(cmd.ActorID()) {
			return errs.NewNotAuthorizedError(cmd.ActorRole().String(), "rate order")
		}

		if err = aggregate.RecordCustomerRating(cmd.Entry()); err != nil {
			return err
		}

		// The customer's rating targets the partner who delivered.
		partnerID := aggregate.PartnerID()
		if partnerID == nil {
			return errs.NewValueIsRequiredError("assigned partner")
		}

		rated, err := uow.PartnerRepository().Get(ctx, *partnerID)
		if err != nil {
			return err
		}
		if err = rated.ApplyRating(cmd.Entry().Rating); err != nil {
			return err
		}
		if err = uow.PartnerRepository().Update(ctx, rated); err != nil {
			return err
		}

	case kernel.RoleDeliveryPartner:
		if !aggregate.IsAssignedTo(cmd.ActorID()) {
			return errs.NewNotAuthorizedError(cmd.ActorRole().String(), "rate order")
		}

		if err = aggregate.RecordPartnerRating(cmd.Entry()); err != nil {
			return err
		}

	default:
		return errs.NewNotAuthorizedError(cmd.ActorRole().String(), "rate order")
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
