package commands

import (
	"context"
)

// SetPartnerOnlineCommandHandler handles partner availability toggles.
type SetPartnerOnlineCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewSetPartnerOnlineCommandHandler creates a handler for availability toggles.
func NewSetPartnerOnlineCommandHandler(uowFactory PartnerUoWFactory) SetPartnerOnlineCommandHandler {
	return SetPartnerOnlineCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the toggle.
func (h *SetPartnerOnlineCommandHandler) Handle(ctx context.Context, cmd SetPartnerOnlineCommand) error {
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

	aggregate, err := uow.PartnerRepository().Get(ctx, cmd.PartnerID())
	if err != nil {
		return err
	}

	aggregate.SetOnline(cmd.Online())

	if err = uow.PartnerRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
