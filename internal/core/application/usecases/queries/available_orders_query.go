package queries

import (
	"errors"
	"time"

	"foodgo/internal/pkg/guard"
)

var ErrAvailableOrdersQueryIsNotConstructed = errors.New(
	"AvailableOrdersQuery must be created via NewAvailableOrdersQuery constructor",
)

// AvailableOrdersQuery retrieves the open order pool: orders no partner has
// claimed yet, oldest first so the longest-waiting customers surface first.
// This is the list broadcast to online partners.
type AvailableOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewAvailableOrdersQuery creates a query for the unclaimed order pool.
func NewAvailableOrdersQuery() AvailableOrdersQuery {
	return AvailableOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q AvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrAvailableOrdersQueryIsNotConstructed)
}

// AvailableOrdersQueryResponse is one claimable order as shown to partners:
// enough to judge the pickup, the drop and what the trip pays.
type AvailableOrdersQueryResponse struct {
	ID             string
	RestaurantName string
	RestaurantLat  *float64
	RestaurantLng  *float64
	DropStreet     string
	DropCity       string
	DropLat        *float64
	DropLng        *float64
	Status         string
	Total          float64
	DeliveryFee    float64
	CreatedAt      time.Time
}
