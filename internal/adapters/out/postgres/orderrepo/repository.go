package orderrepo

import (
	"context"
	"errors"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/order"
	"foodgo/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

// Update saves an existing order with a version-conditional write. The row is
// only written when its stored version still equals the version the aggregate
// was loaded with; the stored version is bumped on success. A lost race
// surfaces as errs.ConflictError, which is what makes concurrent accepts of
// the same order resolve to exactly one winner.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	// Select("*") forces zero-valued columns to be written too; Updates
	// with a struct would silently skip them.
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Select("*").
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("order version", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllUnassigned retrieves claimable orders with no assigned partner,
// oldest first.
func (r *GormOrderRepository) GetAllUnassigned(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("partner_id IS NULL AND status IN ?",
			[]string{order.StatusPlaced.String(), order.StatusConfirmed.String()}).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllActiveByPartner retrieves the partner's non-terminal orders.
func (r *GormOrderRepository) GetAllActiveByPartner(
	ctx context.Context,
	partnerID kernel.UUID,
) ([]*order.Order, error) {
	if err := partnerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("partner_id = ? AND status NOT IN ?",
			partnerID.Bytes(),
			[]string{order.StatusDelivered.String(), order.StatusCancelled.String()}).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
