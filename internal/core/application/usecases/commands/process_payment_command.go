package commands

import (
	"errors"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/pkg/guard"
)

var ErrProcessPaymentCommandIsNotConstructed = errors.New(
	"ProcessPaymentCommand must be created via NewProcessPaymentCommand constructor",
)

// ProcessPaymentCommand represents a request to settle an order's payment
// through the external gateway.
type ProcessPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.OrderID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewProcessPaymentCommand creates a command to settle an order's payment.
func NewProcessPaymentCommand(orderID kernel.OrderID, customerID kernel.UUID) (ProcessPaymentCommand, error) {
	cmd := ProcessPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
	); err != nil {
		return ProcessPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessPaymentCommand) Validate() error {
	return c.guard.Validate(ErrProcessPaymentCommandIsNotConstructed)
}

// OrderID returns the order being settled.
func (c ProcessPaymentCommand) OrderID() kernel.OrderID {
	return c.orderID
}

// CustomerID returns the paying customer.
func (c ProcessPaymentCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c *ProcessPaymentCommand) setOrderID(orderID kernel.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ProcessPaymentCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}
