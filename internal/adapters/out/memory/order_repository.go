package memory

import (
	"context"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/order"
	"foodgo/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository on the in-memory store.
type OrderRepository struct {
	store *Store
}

// NewOrderRepository creates an order repository over the given store.
func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

// Add stores a new order. Re-adding an existing id is a conflict.
func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s := aggregate.Snapshot()
	id := s.ID.String()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.orders[id]; exists {
		return errs.NewConflictError("order", id)
	}
	r.store.orders[id] = s
	return nil
}

// Update performs a version-conditional write: the stored snapshot is only
// replaced when its version still equals the version the aggregate was loaded
// with, and the stored version is bumped. A lost race is errs.ConflictError.
func (r *OrderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s := aggregate.Snapshot()
	id := s.ID.String()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, exists := r.store.orders[id]
	if !exists {
		return errs.NewObjectNotFoundError("order", id)
	}
	if stored.Version != s.Version {
		return errs.NewConflictError("order version", id)
	}

	s.Version++
	r.store.orders[id] = s
	return nil
}

// Get retrieves an order by ID.
func (r *OrderRepository) Get(_ context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	s, exists := r.store.orders[id.String()]
	r.store.mu.Unlock()

	if !exists {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return order.RestoreOrder(s)
}

// GetAllUnassigned retrieves claimable orders with no assigned partner,
// oldest first.
func (r *OrderRepository) GetAllUnassigned(_ context.Context) ([]*order.Order, error) {
	r.store.mu.Lock()
	snapshots := r.store.orderedOrders(func(s order.Snapshot) bool {
		return s.PartnerID == nil && s.Status.IsClaimable()
	})
	r.store.mu.Unlock()

	return restoreAll(snapshots)
}

// GetAllActiveByPartner retrieves the partner's non-terminal orders.
func (r *OrderRepository) GetAllActiveByPartner(
	_ context.Context,
	partnerID kernel.UUID,
) ([]*order.Order, error) {
	if err := partnerID.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	snapshots := r.store.orderedOrders(func(s order.Snapshot) bool {
		return s.PartnerID != nil && s.PartnerID.IsEqual(partnerID) && !s.Status.IsTerminal()
	})
	r.store.mu.Unlock()

	return restoreAll(snapshots)
}

func restoreAll(snapshots []order.Snapshot) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(snapshots))
	for _, s := range snapshots {
		o, err := order.RestoreOrder(s)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
