// Package partnerrepo provides data transfer objects and mapping functions
// for delivery partner persistence.
package partnerrepo

import (
	"time"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/partner"

	"github.com/google/uuid"
)

// PartnerDTO represents the database structure for persisting delivery
// partner aggregates. Email and phone carry unique indexes; the registry
// rejects duplicate signups at this level.
type PartnerDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string
	Email string `gorm:"uniqueIndex"`
	Phone string `gorm:"uniqueIndex"`

	VehicleType   string
	LicenseNumber string
	VehicleNumber string

	RatingAverage float64
	RatingCount   int

	EarningsTotal   float64
	EarningsPending float64

	IsOnline          bool `gorm:"index"`
	CurrentLat        *float64
	CurrentLng        *float64
	LocationUpdatedAt *time.Time

	IsVerified bool
	IsActive   bool

	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int
}

// TableName specifies the database table name for partner entities.
func (PartnerDTO) TableName() string {
	return "delivery_partners"
}

// fromDomain converts a partner aggregate to its database representation.
func fromDomain(aggregate *partner.DeliveryPartner) PartnerDTO {
	s := aggregate.Snapshot()

	dto := PartnerDTO{
		ID:    s.ID.Bytes(),
		Name:  s.Name,
		Email: s.Email,
		Phone: s.Phone,

		VehicleType:   s.Vehicle.Type.String(),
		LicenseNumber: s.Vehicle.LicenseNumber,
		VehicleNumber: s.Vehicle.VehicleNumber,

		RatingAverage: s.Rating.Average,
		RatingCount:   s.Rating.Count,

		EarningsTotal:   s.Earnings.Total,
		EarningsPending: s.Earnings.Pending,

		IsOnline:   s.IsOnline,
		IsVerified: s.IsVerified,
		IsActive:   s.IsActive,

		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Version:   s.Version,
	}

	if s.CurrentLocation != nil {
		lat := s.CurrentLocation.Point.Latitude()
		lng := s.CurrentLocation.Point.Longitude()
		updatedAt := s.CurrentLocation.UpdatedAt
		dto.CurrentLat = &lat
		dto.CurrentLng = &lng
		dto.LocationUpdatedAt = &updatedAt
	}

	return dto
}

// toDomain converts a database DTO back to a partner aggregate via
// RestoreDeliveryPartner.
func toDomain(dto PartnerDTO) (*partner.DeliveryPartner, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	s := partner.Snapshot{
		ID:    id,
		Name:  dto.Name,
		Email: dto.Email,
		Phone: dto.Phone,

		Vehicle: partner.Vehicle{
			Type:          partner.VehicleType(dto.VehicleType),
			LicenseNumber: dto.LicenseNumber,
			VehicleNumber: dto.VehicleNumber,
		},
		Rating: partner.Rating{
			Average: dto.RatingAverage,
			Count:   dto.RatingCount,
		},
		Earnings: partner.Earnings{
			Total:   dto.EarningsTotal,
			Pending: dto.EarningsPending,
		},

		IsOnline:   dto.IsOnline,
		IsVerified: dto.IsVerified,
		IsActive:   dto.IsActive,

		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
		Version:   dto.Version,
	}

	if dto.CurrentLat != nil && dto.CurrentLng != nil && dto.LocationUpdatedAt != nil {
		point, geoErr := kernel.NewGeoPoint(*dto.CurrentLat, *dto.CurrentLng)
		if geoErr != nil {
			return nil, geoErr
		}
		s.CurrentLocation = &partner.Position{
			Point:     point,
			UpdatedAt: *dto.LocationUpdatedAt,
		}
	}

	return partner.RestoreDeliveryPartner(s)
}
