package memory

import (
	"context"

	"foodgo/internal/core/ports"
)

// UnitOfWorkFactory creates in-memory unit of work instances.
type UnitOfWorkFactory struct {
	store *Store
}

// NewUnitOfWorkFactory creates a factory over a shared store.
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create produces a new UnitOfWork over the shared store.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork satisfies ports.UnitOfWork over the in-memory store. Writes
// apply immediately; Begin, Commit and Rollback only exist to satisfy the
// contract. Consistency under concurrency comes from the repositories'
// version-conditional updates, not from transaction isolation.
type UnitOfWork struct {
	store *Store
}

// Begin is a no-op.
func (uow *UnitOfWork) Begin(_ context.Context) error { return nil }

// Commit is a no-op.
func (uow *UnitOfWork) Commit(_ context.Context) error { return nil }

// Rollback is a no-op; already-applied writes are not undone.
func (uow *UnitOfWork) Rollback(_ context.Context) error { return nil }

// OrderRepository returns an order repository over the shared store.
func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return NewOrderRepository(uow.store)
}

// PartnerRepository returns a partner repository over the shared store.
func (uow *UnitOfWork) PartnerRepository() ports.PartnerRepository {
	return NewPartnerRepository(uow.store)
}
