package partnerrepo

import (
	"context"
	"errors"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/partner"
	"foodgo/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPartnerRepository implements ports.PartnerRepository using GORM.
type GormPartnerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormPartnerRepository creates a new GORM partner repository.
func NewGormPartnerRepository(db *gorm.DB, tracker aggregateTracker) *GormPartnerRepository {
	return &GormPartnerRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new partner to the database. A duplicate email or phone trips
// the unique indexes and surfaces as errs.ConflictError. Requires the GORM
// session to be opened with TranslateError so driver unique violations map
// to gorm.ErrDuplicatedKey.
func (r *GormPartnerRepository) Add(ctx context.Context, aggregate *partner.DeliveryPartner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("delivery partner", aggregate.ID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

// Update saves an existing partner with a version-conditional write, the same
// optimistic scheme the order repository uses.
func (r *GormPartnerRepository) Update(ctx context.Context, aggregate *partner.DeliveryPartner) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).Model(&PartnerDTO{}).
		Select("*").
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("partner version", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID().String(), aggregate)
	return nil
}

// Get retrieves a partner by ID.
func (r *GormPartnerRepository) Get(ctx context.Context, id kernel.UUID) (*partner.DeliveryPartner, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PartnerDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery partner", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllDispatchable retrieves every online, verified, active partner with a
// known location. Geo filtering happens in the matcher on top of this set.
func (r *GormPartnerRepository) GetAllDispatchable(ctx context.Context) ([]*partner.DeliveryPartner, error) {
	var dtos []PartnerDTO
	err := r.db.WithContext(ctx).
		Where("is_online AND is_verified AND is_active AND current_lat IS NOT NULL").
		Order("name ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

// GetAllOnline retrieves every partner currently flagged online, regardless
// of verification. The presence sweep walks this set.
func (r *GormPartnerRepository) GetAllOnline(ctx context.Context) ([]*partner.DeliveryPartner, error) {
	var dtos []PartnerDTO
	err := r.db.WithContext(ctx).
		Where("is_online").
		Order("name ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainAll(dtos)
}

func toDomainAll(dtos []PartnerDTO) ([]*partner.DeliveryPartner, error) {
	partners := make([]*partner.DeliveryPartner, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}
	return partners, nil
}
