package commands

import (
	"errors"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/order"
	"foodgo/internal/pkg/guard"
)

var ErrRateOrderCommandIsNotConstructed = errors.New(
	"RateOrderCommand must be created via NewRateOrderCommand constructor",
)

// RateOrderCommand represents one side rating the other after delivery.
// The actor's role decides which side of the order the rating lands on.
type RateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.OrderID
	actorID   kernel.UUID
	actorRole kernel.Role
	entry     order.RatingEntry

	guard guard.ConstructorGuard
}

// NewRateOrderCommand creates a command to rate a delivered order.
func NewRateOrderCommand(
	orderID kernel.OrderID,
	actorID kernel.UUID,
	actorRole kernel.Role,
	rating int,
	comment string,
) (RateOrderCommand, error) {
	cmd := RateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	entry := order.RatingEntry{Rating: rating, Comment: comment}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setActorRole(actorRole),
		entry.Validate(),
	); err != nil {
		return RateOrderCommand{}, err
	}

	cmd.entry = entry
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RateOrderCommand) Validate() error {
	return c.guard.Validate(ErrRateOrderCommandIsNotConstructed)
}

// OrderID returns the rated order.
func (c RateOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// ActorID returns the rating user.
func (c RateOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// ActorRole returns the rating user's role.
func (c RateOrderCommand) ActorRole() kernel.Role {
	return c.actorRole
}

// Entry returns the rating payload.
func (c RateOrderCommand) Entry() order.RatingEntry {
	return c.entry
}

func (c *RateOrderCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RateOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}

func (c *RateOrderCommand) setActorRole(actorRole kernel.Role) error {
	if err := actorRole.Validate(); err != nil {
		return err
	}

	c.actorRole = actorRole
	return nil
}
