package commands

import (
	"context"
	"log/slog"

	"foodgo/internal/core/application/events"
	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/order"
	"foodgo/internal/core/ports"
)

// CreateOrderCommandHandler handles order placement. It creates the aggregate
// in placed status, persists it, and after the commit broadcasts the new offer
// to the partner pool.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order placement command and returns the new order's
// identifier. The newOrder broadcast goes out only after the transaction
// commits; a publish failure is logged, never propagated.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.OrderID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.OrderID{}, err
	}

	aggregate, err := order.NewOrder(
		cmd.CustomerID(),
		cmd.Restaurant(),
		cmd.Items(),
		cmd.Pricing(),
		cmd.Address(),
		cmd.PaymentMethod(),
		cmd.SpecialInstructions(),
		cmd.PlatformOrderID(),
	)
	if err != nil {
		return kernel.OrderID{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.OrderID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return kernel.OrderID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.OrderID{}, err
	}

	event := events.NewOrder{
		OrderID:        aggregate.ID().String(),
		RestaurantName: aggregate.Restaurant().Name,
		Platform:       aggregate.Restaurant().Platform.String(),
		PickupAddress:  aggregate.Restaurant().Address,
		DropStreet:     aggregate.Address().Street,
		Total:          aggregate.Pricing().Total,
		DistanceKm:     aggregate.DistanceKm(),
		PlacedAt:       aggregate.CreatedAt(),
	}
	if err = h.publisher.Publish(ctx, event); err != nil {
		slog.Warn("newOrder broadcast failed", "orderId", aggregate.ID().String(), "error", err)
	}

	return aggregate.ID(), nil
}
