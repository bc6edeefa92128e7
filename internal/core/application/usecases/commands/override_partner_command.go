package commands

import (
	"errors"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/pkg/errs"
	"foodgo/internal/pkg/guard"
)

var ErrOverridePartnerCommandIsNotConstructed = errors.New(
	"OverridePartnerCommand must be created via NewOverridePartnerCommand constructor",
)

// OverridePartnerCommand represents an operator reassigning an order to a
// different delivery partner. Regular assignment is immutable after the
// first claim; this is the admin escape hatch.
type OverridePartnerCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.OrderID
	newPartnerID kernel.UUID
	actorRole    kernel.Role

	guard guard.ConstructorGuard
}

// NewOverridePartnerCommand creates a command to reassign an order.
func NewOverridePartnerCommand(
	orderID kernel.OrderID,
	newPartnerID kernel.UUID,
	actorRole kernel.Role,
) (OverridePartnerCommand, error) {
	cmd := OverridePartnerCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNewPartnerID(newPartnerID),
		cmd.setActorRole(actorRole),
	); err != nil {
		return OverridePartnerCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c OverridePartnerCommand) Validate() error {
	if err := c.guard.Validate(ErrOverridePartnerCommandIsNotConstructed); err != nil {
		return err
	}

	if c.actorRole != kernel.RoleAdmin {
		return errs.NewNotAuthorizedError(c.actorRole.String(), "override partner")
	}

	return nil
}

// OrderID returns the order being reassigned.
func (c OverridePartnerCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// NewPartnerID returns the replacement partner.
func (c OverridePartnerCommand) NewPartnerID() kernel.UUID {
	return c.newPartnerID
}

func (c *OverridePartnerCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *OverridePartnerCommand) setNewPartnerID(newPartnerID kernel.UUID) error {
	if err := newPartnerID.Validate(); err != nil {
		return err
	}

	c.newPartnerID = newPartnerID
	return nil
}

func (c *OverridePartnerCommand) setActorRole(actorRole kernel.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorRole = actorRole
	return nil
}
