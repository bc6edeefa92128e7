package commands

import (
	"errors"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/order"
	"foodgo/internal/pkg/errs"
	"foodgo/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents the assigned partner moving an order
// through its lifecycle. The initial status is never settable this way, and
// the transition table in the aggregate gates everything else.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.OrderID
	partnerID kernel.UUID
	newStatus order.Status
	location  *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to transition an order.
// The optional location is recorded on the history entry.
func NewUpdateOrderStatusCommand(
	orderID kernel.OrderID,
	partnerID kernel.UUID,
	newStatus order.Status,
	location *kernel.GeoPoint,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPartnerID(partnerID),
		cmd.setNewStatus(newStatus),
		cmd.setLocation(location),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order being transitioned.
func (c UpdateOrderStatusCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// PartnerID returns the acting partner.
func (c UpdateOrderStatusCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// NewStatus returns the target status.
func (c UpdateOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

// Location returns the optional reported location.
func (c UpdateOrderStatusCommand) Location() *kernel.GeoPoint {
	return c.location
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}

func (c *UpdateOrderStatusCommand) setNewStatus(newStatus order.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}

	if newStatus.IsInitial() {
		return errs.NewValueIsInvalidError("status")
	}

	c.newStatus = newStatus
	return nil
}

func (c *UpdateOrderStatusCommand) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}

	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
