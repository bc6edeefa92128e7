package memory

import (
	"context"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/partner"
	"foodgo/internal/pkg/errs"
)

// PartnerRepository implements ports.PartnerRepository on the in-memory store.
type PartnerRepository struct {
	store *Store
}

// NewPartnerRepository creates a partner repository over the given store.
func NewPartnerRepository(store *Store) *PartnerRepository {
	return &PartnerRepository{store: store}
}

// Add stores a new partner, enforcing email and phone uniqueness.
func (r *PartnerRepository) Add(_ context.Context, aggregate *partner.DeliveryPartner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s := aggregate.Snapshot()
	id := s.ID.String()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.partners[id]; exists {
		return errs.NewConflictError("delivery partner", id)
	}
	if owner, taken := r.store.emails[s.Email]; taken && owner != id {
		return errs.NewConflictError("delivery partner email", s.Email)
	}
	if owner, taken := r.store.phones[s.Phone]; taken && owner != id {
		return errs.NewConflictError("delivery partner phone", s.Phone)
	}

	r.store.partners[id] = s
	r.store.emails[s.Email] = id
	r.store.phones[s.Phone] = id
	return nil
}

// Update performs a version-conditional write, mirroring the order
// repository's optimistic scheme.
func (r *PartnerRepository) Update(_ context.Context, aggregate *partner.DeliveryPartner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s := aggregate.Snapshot()
	id := s.ID.String()

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, exists := r.store.partners[id]
	if !exists {
		return errs.NewObjectNotFoundError("delivery partner", id)
	}
	if stored.Version != s.Version {
		return errs.NewConflictError("partner version", id)
	}

	s.Version++
	r.store.partners[id] = s
	return nil
}

// Get retrieves a partner by ID.
func (r *PartnerRepository) Get(_ context.Context, id kernel.UUID) (*partner.DeliveryPartner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	s, exists := r.store.partners[id.String()]
	r.store.mu.Unlock()

	if !exists {
		return nil, errs.NewObjectNotFoundError("delivery partner", id.String())
	}
	return partner.RestoreDeliveryPartner(s)
}

// GetAllDispatchable retrieves every online, verified, active partner with a
// known location, sorted by name.
func (r *PartnerRepository) GetAllDispatchable(_ context.Context) ([]*partner.DeliveryPartner, error) {
	r.store.mu.Lock()
	snapshots := r.store.orderedPartners(func(s partner.Snapshot) bool {
		return s.IsOnline && s.IsVerified && s.IsActive && s.CurrentLocation != nil
	})
	r.store.mu.Unlock()

	return restorePartners(snapshots)
}

// GetAllOnline retrieves every partner currently flagged online, sorted by
// name.
func (r *PartnerRepository) GetAllOnline(_ context.Context) ([]*partner.DeliveryPartner, error) {
	r.store.mu.Lock()
	snapshots := r.store.orderedPartners(func(s partner.Snapshot) bool {
		return s.IsOnline
	})
	r.store.mu.Unlock()

	return restorePartners(snapshots)
}

func restorePartners(snapshots []partner.Snapshot) ([]*partner.DeliveryPartner, error) {
	partners := make([]*partner.DeliveryPartner, 0, len(snapshots))
	for _, s := range snapshots {
		p, err := partner.RestoreDeliveryPartner(s)
		if err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}
	return partners, nil
}
