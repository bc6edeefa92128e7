// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries bypass the aggregates and read optimized models straight from the
// database; authorization scoping is applied inside each handler.
package queries

import (
	"errors"
	"time"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a single order scoped to the caller: customers see
// their own orders, delivery partners the ones assigned to them, admins any.
type GetOrderQuery struct {
	orderID   kernel.OrderID
	actorID   kernel.UUID
	actorRole kernel.Role

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for a single order on behalf of a caller.
func NewGetOrderQuery(
	orderID kernel.OrderID,
	actorID kernel.UUID,
	actorRole kernel.Role,
) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	if err := actorID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	if err := actorRole.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID:   orderID,
		actorID:   actorID,
		actorRole: actorRole,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the requested order identifier.
func (q GetOrderQuery) OrderID() kernel.OrderID {
	return q.orderID
}

// ActorID returns the caller's identifier.
func (q GetOrderQuery) ActorID() kernel.UUID {
	return q.actorID
}

// ActorRole returns the caller's role.
func (q GetOrderQuery) ActorRole() kernel.Role {
	return q.actorRole
}

// OrderItemResponse is a single order line in the read model.
type OrderItemResponse struct {
	Name           string   `json:"name"`
	Quantity       int      `json:"quantity"`
	Price          float64  `json:"price"`
	Customizations []string `json:"customizations,omitempty"`
}

// GetOrderQueryResponse is the full order read model.
type GetOrderQueryResponse struct {
	ID         string
	CustomerID string
	PartnerID  *string

	RestaurantName    string
	RestaurantAddress string
	Platform          string

	Items []OrderItemResponse

	Subtotal    float64
	DeliveryFee float64
	Taxes       float64
	Discount    float64
	Total       float64

	DropStreet string
	DropCity   string
	DropState  string

	Status string

	PaymentMethod string
	PaymentStatus string

	EstimatedDeliveryTime time.Time
	ActualDeliveryTime    *time.Time

	CurrentLat *float64
	CurrentLng *float64

	SpecialInstructions string
	CreatedAt           time.Time
}
