package commands

import (
	"errors"
	"fmt"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/pkg/errs"
	"foodgo/internal/pkg/guard"
)

var ErrAdjustEarningsCommandIsNotConstructed = errors.New(
	"AdjustEarningsCommand must be created via NewAdjustEarningsCommand constructor",
)

// EarningsAdjustment selects the direction of an earnings change.
type EarningsAdjustment string

const (
	// EarningsAdd credits the amount to both total and pending.
	EarningsAdd EarningsAdjustment = "add"
	// EarningsWithdraw debits the amount from pending only.
	EarningsWithdraw EarningsAdjustment = "withdraw"
)

// Validate checks the adjustment is a member of the enumerated set.
func (a EarningsAdjustment) Validate() error {
	switch a {
	case EarningsAdd, EarningsWithdraw:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("adjustment",
			fmt.Errorf("%q is not a valid earnings adjustment", string(a)))
	}
}

// AdjustEarningsCommand represents an earnings credit or withdrawal for a
// delivery partner.
type AdjustEarningsCommand struct { //nolint:recvcheck //using for validation
	partnerID  kernel.UUID
	adjustment EarningsAdjustment
	amount     float64

	guard guard.ConstructorGuard
}

// NewAdjustEarningsCommand creates a command to adjust a partner's earnings.
func NewAdjustEarningsCommand(
	partnerID kernel.UUID,
	adjustment EarningsAdjustment,
	amount float64,
) (AdjustEarningsCommand, error) {
	cmd := AdjustEarningsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPartnerID(partnerID),
		cmd.setAdjustment(adjustment),
		cmd.setAmount(amount),
	); err != nil {
		return AdjustEarningsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdjustEarningsCommand) Validate() error {
	return c.guard.Validate(ErrAdjustEarningsCommandIsNotConstructed)
}

// PartnerID returns the affected partner.
func (c AdjustEarningsCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Adjustment returns the direction of the change.
func (c AdjustEarningsCommand) Adjustment() EarningsAdjustment {
	return c.adjustment
}

// Amount returns the positive amount being moved.
func (c AdjustEarningsCommand) Amount() float64 {
	return c.amount
}

func (c *AdjustEarningsCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}

func (c *AdjustEarningsCommand) setAdjustment(adjustment EarningsAdjustment) error {
	if err := adjustment.Validate(); err != nil {
		return err
	}

	c.adjustment = adjustment
	return nil
}

func (c *AdjustEarningsCommand) setAmount(amount float64) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%f is not greater than 0", amount))
	}

	c.amount = amount
	return nil
}
