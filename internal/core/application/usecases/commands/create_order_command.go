package commands

import (
	"errors"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/order"
	"foodgo/internal/pkg/errs"
	"foodgo/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a customer's request to place a new order.
// Carries everything the Order aggregate needs; the detailed field validation
// happens in order.NewOrder, the command only checks structural requirements.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID          kernel.UUID
	restaurant          order.Restaurant
	items               []order.Item
	pricing             order.Pricing
	address             order.DeliveryAddress
	paymentMethod       order.PaymentMethod
	specialInstructions string
	platformOrderID     string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
func NewCreateOrderCommand(
	customerID kernel.UUID,
	restaurant order.Restaurant,
	items []order.Item,
	pricing order.Pricing,
	address order.DeliveryAddress,
	paymentMethod order.PaymentMethod,
	specialInstructions string,
	platformOrderID string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	cmd.restaurant = restaurant
	cmd.pricing = pricing
	cmd.address = address
	cmd.paymentMethod = paymentMethod
	cmd.specialInstructions = specialInstructions
	cmd.platformOrderID = platformOrderID

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// CustomerID returns the ordering customer's identifier.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Restaurant returns the pickup details.
func (c CreateOrderCommand) Restaurant() order.Restaurant {
	return c.restaurant
}

// Items returns the order line items.
func (c CreateOrderCommand) Items() []order.Item {
	return c.items
}

// Pricing returns the money breakdown.
func (c CreateOrderCommand) Pricing() order.Pricing {
	return c.pricing
}

// Address returns the drop-off details.
func (c CreateOrderCommand) Address() order.DeliveryAddress {
	return c.address
}

// PaymentMethod returns how the customer pays.
func (c CreateOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

// SpecialInstructions returns the customer's free-text instructions.
func (c CreateOrderCommand) SpecialInstructions() string {
	return c.specialInstructions
}

// PlatformOrderID returns the aggregator platform's own order reference.
func (c CreateOrderCommand) PlatformOrderID() string {
	return c.platformOrderID
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	c.items = items
	return nil
}
