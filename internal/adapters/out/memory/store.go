// Package memory provides in-memory implementations of the repository ports.
// It backs local development and concurrency tests: all state lives behind a
// single mutex and updates use the same version-conditional scheme as the
// postgres adapter, so first-claim-wins holds here too.
//
// The unit of work is not transactional: writes apply immediately and
// Rollback cannot undo them. Command handlers stay correct regardless because
// every write is guarded by the aggregate version check.
package memory

import (
	"sort"
	"sync"

	"foodgo/internal/core/domain/model/order"
	"foodgo/internal/core/domain/model/partner"
)

// Store holds all in-memory state. Safe for concurrent use.
type Store struct {
	mu sync.Mutex

	orders   map[string]order.Snapshot
	partners map[string]partner.Snapshot

	// uniqueness indexes for partner signup, email/phone -> partner id
	emails map[string]string
	phones map[string]string
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		orders:   make(map[string]order.Snapshot),
		partners: make(map[string]partner.Snapshot),
		emails:   make(map[string]string),
		phones:   make(map[string]string),
	}
}

func (s *Store) orderedOrders(keep func(order.Snapshot) bool) []order.Snapshot {
	snapshots := make([]order.Snapshot, 0)
	for _, snapshot := range s.orders {
		if keep(snapshot) {
			snapshots = append(snapshots, snapshot)
		}
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].CreatedAt.Before(snapshots[j].CreatedAt)
	})
	return snapshots
}

func (s *Store) orderedPartners(keep func(partner.Snapshot) bool) []partner.Snapshot {
	snapshots := make([]partner.Snapshot, 0)
	for _, snapshot := range s.partners {
		if keep(snapshot) {
			snapshots = append(snapshots, snapshot)
		}
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Name < snapshots[j].Name
	})
	return snapshots
}
