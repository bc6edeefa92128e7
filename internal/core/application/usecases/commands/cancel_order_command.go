package commands

import (
	"errors"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a customer (own order) or admin cancelling an
// order.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.OrderID
	actorID   kernel.UUID
	actorRole kernel.Role

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order.
func NewCancelOrderCommand(
	orderID kernel.OrderID,
	actorID kernel.UUID,
	actorRole kernel.Role,
) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setActorRole(actorRole),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order being cancelled.
func (c CancelOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// ActorID returns the cancelling user.
func (c CancelOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the cancelling user's role.
func (c CancelOrderCommand) ActorRole() kernel.Role {
	return c.actorRole
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *CancelOrderCommand) setActorRole(actorRole kernel.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorRole = actorRole
	return nil
}
