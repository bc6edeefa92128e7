package queries

import (
	"context"
	"math"
	"sort"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/partner"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NearbyPartnersQueryHandler reads dispatchable partners around a point.
// The bounding box is applied in SQL; the exact great-circle distance and the
// travel estimate are computed on the narrowed set here.
type NearbyPartnersQueryHandler struct {
	db *gorm.DB
}

// NewNearbyPartnersQueryHandler creates a handler for partner radius searches.
func NewNearbyPartnersQueryHandler(db *gorm.DB) NearbyPartnersQueryHandler {
	return NearbyPartnersQueryHandler{db: db}
}

// Handle executes the query, closest partners first.
func (h NearbyPartnersQueryHandler) Handle(
	ctx context.Context,
	query NearbyPartnersQuery,
) ([]NearbyPartnersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	center := query.Center()
	delta := kernel.DegreeDelta(query.RadiusKm())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id, name, vehicle_type, rating_average, current_lat, current_lng
		FROM delivery_partners
		WHERE is_online AND is_verified AND is_active
			AND current_lat BETWEEN ? AND ?
			AND current_lng BETWEEN ? AND ?
	`,
		center.Latitude()-delta, center.Latitude()+delta,
		center.Longitude()-delta, center.Longitude()+delta,
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	partners := make([]NearbyPartnersQueryResponse, 0)

	for rows.Next() {
		var (
			id            uuid.UUID
			name          string
			vehicleType   string
			ratingAverage float64
			lat, lng      float64
		)
		if err = rows.Scan(&id, &name, &vehicleType, &ratingAverage, &lat, &lng); err != nil {
			return nil, err
		}

		partnerID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		location, locErr := kernel.NewGeoPoint(lat, lng)
		if locErr != nil {
			return nil, locErr
		}

		distanceKm, distErr := center.DistanceKm(location)
		if distErr != nil {
			return nil, distErr
		}
		if distanceKm > query.RadiusKm() {
			continue
		}

		partners = append(partners, NearbyPartnersQueryResponse{
			ID:            partnerID,
			Name:          name,
			VehicleType:   vehicleType,
			RatingAverage: ratingAverage,
			Location:      location,
			DistanceKm:    math.Round(distanceKm*100) / 100,
			EtaMinutes:    kernel.TravelEstimate(distanceKm, partner.VehicleType(vehicleType).SpeedKmh()),
		})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(partners, func(i, j int) bool {
		return partners[i].DistanceKm < partners[j].DistanceKm
	})

	return partners, nil
}
