package commands

import (
	"context"
)

// AdjustEarningsCommandHandler handles partner earnings credits and
// withdrawals. Withdrawing more than the pending balance fails with
// InsufficientFundsError from the aggregate.
type AdjustEarningsCommandHandler struct {
	uowFactory PartnerUoWFactory
}

// NewAdjustEarningsCommandHandler creates a handler for earnings adjustments.
func NewAdjustEarningsCommandHandler(uowFactory PartnerUoWFactory) AdjustEarningsCommandHandler {
	return AdjustEarningsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the adjustment.
func (h *AdjustEarningsCommandHandler) Handle(ctx context.Context, cmd AdjustEarningsCommand) error {
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

	switch cmd.Adjustment() {
	case EarningsAdd:
		err = aggregate.AddEarnings(cmd.Amount())
	case EarningsWithdraw:
		err = aggregate.WithdrawEarnings(cmd.Amount())
	}
	if err != nil {
		return err
	}

	if err = uow.PartnerRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
