package services

import (
	"errors"
	"sort"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/domain/model/partner"
)

// ErrPartnerNotFound is returned when no suitable partner is available for an
// order: either no partners were provided, or none is dispatchable within the
// search radius.
var ErrPartnerNotFound = errors.New("partner not found")

const (
	// DefaultSearchRadiusKm is the nearby-partner search radius used when
	// the caller does not specify one.
	DefaultSearchRadiusKm = 5.0

	// UnboundedRadiusKm covers the whole globe; used when ranking must not
	// exclude anyone by distance, such as estimating a claimant's ETA.
	UnboundedRadiusKm = 20050.0
)

// Candidate is a partner ranked for an order: the partner itself, its distance
// from the pickup point and the travel estimate for its vehicle.
type Candidate struct {
	Partner    *partner.DeliveryPartner
	DistanceKm float64
	EtaMinutes int
}

// PartnerMatcher is a domain service that ranks delivery partners for a pickup
// point. It applies the dispatchability rules (online, verified, active, has a
// known location inside the search box) and orders candidates by travel
// estimate, closest first.
//
// The matcher only ranks; it never assigns. Assignment stays first-claim-wins
// through the accept flow, with the matcher feeding offer fan-out and
// nearby-partner queries.
type PartnerMatcher struct{}

// NewPartnerMatcher creates a new PartnerMatcher instance.
func NewPartnerMatcher() PartnerMatcher {
	return PartnerMatcher{}
}

// Rank filters the given partners down to dispatchable ones within radiusKm of
// the pickup point and returns them sorted by travel estimate ascending, with
// distance as the tie-breaker. A non-positive radius falls back to the
// default.
//
// Returns ErrPartnerNotFound when no partner qualifies.
func (m PartnerMatcher) Rank(
	pickup kernel.GeoPoint,
	partners []*partner.DeliveryPartner,
	radiusKm float64,
) ([]Candidate, error) {
	if err := pickup.Validate(); err != nil {
		return nil, err
	}

	if radiusKm <= 0 {
		radiusKm = DefaultSearchRadiusKm
	}

	var candidates []Candidate
	for _, p := range partners {
		if err := p.Validate(); err != nil {
			return nil, err
		}

		if !p.IsDispatchable() {
			continue
		}

		location := p.CurrentLocation()
		if location == nil {
			continue
		}

		inBox, err := location.Point.InBoundingBox(pickup, radiusKm)
		if err != nil {
			return nil, err
		}
		if !inBox {
			continue
		}

		km, err := location.Point.DistanceKm(pickup)
		if err != nil {
			return nil, err
		}

		candidates = append(candidates, Candidate{
			Partner:    p,
			DistanceKm: km,
			EtaMinutes: kernel.TravelEstimate(km, p.Vehicle().Type.SpeedKmh()),
		})
	}

	if len(candidates) == 0 {
		return nil, ErrPartnerNotFound
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].EtaMinutes != candidates[j].EtaMinutes {
			return candidates[i].EtaMinutes < candidates[j].EtaMinutes
		}
		return candidates[i].DistanceKm < candidates[j].DistanceKm
	})

	return candidates, nil
}

// Best returns the single top-ranked candidate for a pickup point.
func (m PartnerMatcher) Best(
	pickup kernel.GeoPoint,
	partners []*partner.DeliveryPartner,
	radiusKm float64,
) (Candidate, error) {
	ranked, err := m.Rank(pickup, partners, radiusKm)
	if err != nil {
		return Candidate{}, err
	}
	return ranked[0], nil
}
