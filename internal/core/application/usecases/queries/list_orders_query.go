package queries

import (
	"errors"
	"time"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/order"
	"foodgo/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

const (
	// DefaultPageSize applies when the caller supplies no limit.
	DefaultPageSize = 20
	// MaxPageSize bounds a single page regardless of the requested limit.
	MaxPageSize = 100
)

// ListOrdersQuery retrieves a page of orders scoped to the caller, newest
// first, optionally filtered by status.
type ListOrdersQuery struct {
	actorID   kernel.UUID
	actorRole kernel.Role
	status    *order.Status
	limit     int
	offset    int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a paging query over the caller's orders.
// A non-positive limit falls back to DefaultPageSize; limits above MaxPageSize
// are clamped; a negative offset is treated as zero.
func NewListOrdersQuery(
	actorID kernel.UUID,
	actorRole kernel.Role,
	status *order.Status,
	limit int,
	offset int,
) (ListOrdersQuery, error) {
	if err := actorID.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if err := actorRole.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}

	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	return ListOrdersQuery{
		actorID:   actorID,
		actorRole: actorRole,
		status:    status,
		limit:     limit,
		offset:    offset,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// ActorID returns the caller's identifier.
func (q ListOrdersQuery) ActorID() kernel.UUID {
	return q.actorID
}

// ActorRole returns the caller's role.
func (q ListOrdersQuery) ActorRole() kernel.Role {
	return q.actorRole
}

// Status returns the optional status filter.
func (q ListOrdersQuery) Status() *order.Status {
	return q.status
}

// Limit returns the page size.
func (q ListOrdersQuery) Limit() int {
	return q.limit
}

// Offset returns the page offset.
func (q ListOrdersQuery) Offset() int {
	return q.offset
}

// ListOrdersQueryResponse is a single order summary in the listing.
type ListOrdersQueryResponse struct {
	ID                    string
	CustomerID            string
	PartnerID             *string
	RestaurantName        string
	Status                string
	Total                 float64
	PaymentStatus         string
	EstimatedDeliveryTime time.Time
	CreatedAt             time.Time
}
