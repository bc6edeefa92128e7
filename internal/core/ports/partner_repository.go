package ports

import (
	"context"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/partner"
)

// PartnerRepository defines the persistence contract for delivery partner
// aggregates. Like OrderRepository, Update is version-conditional.
type PartnerRepository interface {
	// Add persists a new partner aggregate to storage. Email and phone
	// uniqueness is enforced here; violations surface as errs.ConflictError.
	Add(ctx context.Context, aggregate *partner.DeliveryPartner) error

	// Update persists changes to an existing partner aggregate using a
	// version-conditional write.
	Update(ctx context.Context, aggregate *partner.DeliveryPartner) error

	// Get retrieves a partner aggregate by its identifier.
	// Returns errs.ObjectNotFoundError when no such partner exists.
	Get(ctx context.Context, id kernel.UUID) (*partner.DeliveryPartner, error)

	// GetAllDispatchable retrieves every online, verified, active partner
	// with a known location. Callers apply geo filtering on top.
	GetAllDispatchable(ctx context.Context) ([]*partner.DeliveryPartner, error)

	// GetAllOnline retrieves every partner currently flagged online,
	// regardless of verification. Used by the presence sweep.
	GetAllOnline(ctx context.Context) ([]*partner.DeliveryPartner, error)
}
