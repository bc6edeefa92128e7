package queries

import (
	"errors"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/services"
	"foodgo/internal/pkg/guard"
)

var ErrNearbyPartnersQueryIsNotConstructed = errors.New(
	"NearbyPartnersQuery must be created via NewNearbyPartnersQuery constructor",
)

// NearbyPartnersQuery retrieves dispatchable partners around a point, closest
// first. Backs the operator map and pre-claim partner discovery.
type NearbyPartnersQuery struct {
	center   kernel.GeoPoint
	radiusKm float64

	guard guard.ConstructorGuard
}

// NewNearbyPartnersQuery creates a radius search around a center point.
// A non-positive radius falls back to the default search radius.
func NewNearbyPartnersQuery(center kernel.GeoPoint, radiusKm float64) (NearbyPartnersQuery, error) {
	if err := center.Validate(); err != nil {
		return NearbyPartnersQuery{}, err
	}

	if radiusKm <= 0 {
		radiusKm = services.DefaultSearchRadiusKm
	}

	return NearbyPartnersQuery{
		center:   center,
		radiusKm: radiusKm,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q NearbyPartnersQuery) Validate() error {
	return q.guard.Validate(ErrNearbyPartnersQueryIsNotConstructed)
}

// Center returns the search center.
func (q NearbyPartnersQuery) Center() kernel.GeoPoint {
	return q.center
}

// RadiusKm returns the effective search radius.
func (q NearbyPartnersQuery) RadiusKm() float64 {
	return q.radiusKm
}

// NearbyPartnersQueryResponse is one partner in the radius search result.
type NearbyPartnersQueryResponse struct {
	ID            kernel.UUID
	Name          string
	VehicleType   string
	RatingAverage float64
	Location      kernel.GeoPoint
	DistanceKm    float64
	EtaMinutes    int
}
