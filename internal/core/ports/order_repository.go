// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, the event publisher and the
// payment gateway. Adapters implement these interfaces; the core only depends
// on them.
package ports

import (
	"context"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Update performs a version-conditional write: the row is only written when
// its stored version equals the aggregate's loaded version, and the version is
// bumped on success. A lost race surfaces as errs.ConflictError. This is what
// makes first-claim-wins hold under concurrent accepts.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate using a
	// version-conditional write. Returns errs.ConflictError when the stored
	// version no longer matches the aggregate's loaded version.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its identifier.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.OrderID) (*order.Order, error)

	// GetAllUnassigned retrieves orders with no assigned partner in a
	// claimable status (placed or confirmed), oldest first.
	GetAllUnassigned(ctx context.Context) ([]*order.Order, error)

	// GetAllActiveByPartner retrieves the partner's non-terminal orders.
	GetAllActiveByPartner(ctx context.Context, partnerID kernel.UUID) ([]*order.Order, error)
}
