package kernel

import (
	"errors"
	"fmt"
	"math"
	"time"

	"foodgo/internal/pkg/errs"
	"foodgo/internal/pkg/guard"
)

const (
	// MinLatitude is the southernmost valid latitude in degrees.
	MinLatitude = -90.0
	// MaxLatitude is the northernmost valid latitude in degrees.
	MaxLatitude = 90.0
	// MinLongitude is the westernmost valid longitude in degrees.
	MinLongitude = -180.0
	// MaxLongitude is the easternmost valid longitude in degrees.
	MaxLongitude = 180.0

	// earthRadiusKm is the mean radius of the Earth used by the haversine formula.
	earthRadiusKm = 6371.0

	// kmPerDegree approximates how many kilometers one degree of latitude spans.
	// Used to convert a radius in kilometers into a bounding-box degree delta.
	kmPerDegree = 111.0

	// DefaultDistanceKm is assumed when either end of a route has no coordinates.
	DefaultDistanceKm = 5.0

	// baseDeliveryTime is the fixed preparation component of a delivery estimate.
	baseDeliveryTime = 30 * time.Minute

	// basePickupTime is the fixed preparation component of a travel estimate.
	basePickupTime = 10.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable value object representing a geographic coordinate
// in decimal degrees. The zero value is invalid and fails validation; use
// NewGeoPoint to create instances.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(28.6139, 77.2090)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(point) // Output: GeoPoint(28.613900,77.209000)
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the given coordinates.
// Latitude must be within [-90, 90] and longitude within [-180, 180].
//
// Returns:
//   - GeoPoint: a valid coordinate instance
//   - error: validation error if either component is out of bounds
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLatitude(latitude), point.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks that the GeoPoint was created via NewGeoPoint.
// The zero value fails this validation.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.latitude, p.longitude)
}

// IsEqual compares two points for exact coordinate equality.
// Both points must be properly constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.latitude == other.latitude && p.longitude == other.longitude, nil
}

// DistanceKm calculates the great-circle distance to another point in
// kilometers using the haversine formula. Both points must be properly
// constructed.
//
// Example:
//
//	delhi, _ := kernel.NewGeoPoint(28.6139, 77.2090)
//	rohini, _ := kernel.NewGeoPoint(28.7041, 77.1025)
//	km, _ := delhi.DistanceKm(rohini) // ≈ 13.9
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	dLat := toRadians(other.latitude - p.latitude)
	dLon := toRadians(other.longitude - p.longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(p.latitude))*math.Cos(toRadians(other.latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, nil
}

// InBoundingBox reports whether the point lies within an axis-aligned box
// centered on the given point with a half-side of radiusKm. The box uses the
// flat approximation of one degree per 111 km on both axes; it is a fast
// prefilter, not exact geodesic containment.
func (p GeoPoint) InBoundingBox(center GeoPoint, radiusKm float64) (bool, error) {
	if err := errors.Join(p.Validate(), center.Validate()); err != nil {
		return false, err
	}

	delta := DegreeDelta(radiusKm)
	return p.latitude >= center.latitude-delta && p.latitude <= center.latitude+delta &&
		p.longitude >= center.longitude-delta && p.longitude <= center.longitude+delta, nil
}

// DegreeDelta converts a radius in kilometers into the degree half-width of
// the bounding box used by nearby queries.
func DegreeDelta(radiusKm float64) float64 {
	return radiusKm / kmPerDegree
}

// DeliveryEstimate returns the estimated time to deliver an order across the
// given distance: a 30 minute base plus 2 minutes per kilometer, with the
// per-distance component rounded up to whole minutes.
func DeliveryEstimate(distanceKm float64) time.Duration {
	travel := time.Duration(math.Ceil(2*distanceKm)) * time.Minute
	return baseDeliveryTime + travel
}

// TravelEstimate returns the estimated time in minutes for a vehicle moving at
// speedKmh to cover distanceKm, including a 10 minute pickup buffer, rounded
// up to whole minutes. A non-positive speed falls back to 25 km/h.
func TravelEstimate(distanceKm, speedKmh float64) int {
	if speedKmh <= 0 {
		speedKmh = 25
	}
	return int(math.Ceil(basePickupTime + (distanceKm/speedKmh)*60))
}

func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < MinLatitude || latitude > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}

	p.latitude = latitude
	return nil
}

func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < MinLongitude || longitude > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}

	p.longitude = longitude
	return nil
}

func toRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
