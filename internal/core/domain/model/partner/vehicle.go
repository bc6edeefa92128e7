package partner

import (
	"fmt"

	"foodgo/internal/pkg/errs"
)

// VehicleType enumerates the kinds of vehicle a delivery partner rides.
// Each type carries an assumed average city speed used for travel estimates.
type VehicleType string

const (
	VehicleBicycle VehicleType = "bicycle"
	VehicleBike    VehicleType = "bike"
	VehicleScooter VehicleType = "scooter"
	VehicleCar     VehicleType = "car"
)

// speeds maps each vehicle type to its assumed average speed in km/h.
// Cars are slower than two-wheelers in dense city traffic.
var speeds = map[VehicleType]float64{
	VehicleBicycle: 15,
	VehicleBike:    25,
	VehicleScooter: 25,
	VehicleCar:     20,
}

// Validate checks the vehicle type is a member of the enumerated set.
func (v VehicleType) Validate() error {
	if _, ok := speeds[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vehicle type",
			fmt.Errorf("%q is not a valid vehicle type", string(v)))
	}
	return nil
}

// String implements fmt.Stringer.
func (v VehicleType) String() string {
	return string(v)
}

// SpeedKmh returns the assumed average speed for the vehicle type.
func (v VehicleType) SpeedKmh() float64 {
	return speeds[v]
}

// Vehicle describes the partner's registered vehicle and papers.
type Vehicle struct {
	Type          VehicleType
	LicenseNumber string
	VehicleNumber string
}

// Validate enforces a known type; the registration numbers are free-form.
func (v Vehicle) Validate() error {
	return v.Type.Validate()
}
