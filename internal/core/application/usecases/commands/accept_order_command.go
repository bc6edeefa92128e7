package commands

import (
	"errors"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor",
)

// AcceptOrderCommand represents a delivery partner's claim on an open order.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.OrderID
	partnerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a command for a partner to claim an order.
func NewAcceptOrderCommand(orderID kernel.OrderID, partnerID kernel.UUID) (AcceptOrderCommand, error) {
	cmd := AcceptOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPartnerID(partnerID),
	); err != nil {
		return AcceptOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

// OrderID returns the order being claimed.
func (c AcceptOrderCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// PartnerID returns the claiming partner.
func (c AcceptOrderCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

func (c *AcceptOrderCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AcceptOrderCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}
