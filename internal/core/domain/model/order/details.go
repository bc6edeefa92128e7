package order

import (
	"fmt"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/pkg/errs"
)

// Platform identifies the origin aggregator an order was placed through.
type Platform string

const (
	PlatformZomato   Platform = "zomato"
	PlatformSwiggy   Platform = "swiggy"
	PlatformUberEats Platform = "uber_eats"
	PlatformBlinkit  Platform = "blinkit"
	PlatformZepto    Platform = "zepto"
	PlatformInstamart Platform = "instamart"
	PlatformGrofers  Platform = "grofers"
)

// Validate checks the platform is a member of the enumerated set.
func (p Platform) Validate() error {
	switch p {
	case PlatformZomato, PlatformSwiggy, PlatformUberEats, PlatformBlinkit,
		PlatformZepto, PlatformInstamart, PlatformGrofers:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("platform",
			fmt.Errorf("%q is not a valid platform", string(p)))
	}
}

// String implements fmt.Stringer.
func (p Platform) String() string {
	return string(p)
}

// Item is a single order line: what was ordered, how many, at what price,
// plus any free-text customizations the customer asked for.
type Item struct {
	Name           string
	Quantity       int
	Price          float64
	Customizations []string
}

// Validate enforces the per-line invariants: a name, a positive quantity and
// a non-negative price.
func (i Item) Validate() error {
	if i.Name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	if i.Quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("item quantity",
			fmt.Errorf("%d is not greater than 0", i.Quantity))
	}
	if i.Price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("item price",
			fmt.Errorf("%f is negative", i.Price))
	}
	return nil
}

// Pricing carries the order's money breakdown. Total is supplied by the caller
// and trusted as-is; the core validates it is a sane number but never
// recomputes it from the components.
type Pricing struct {
	Subtotal    float64
	DeliveryFee float64
	Taxes       float64
	Discount    float64
	Total       float64
}

// Validate rejects negative totals. Component fields are informational and not
// cross-checked against Total.
func (p Pricing) Validate() error {
	if p.Total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("pricing total",
			fmt.Errorf("%f is negative", p.Total))
	}
	return nil
}

// Restaurant describes the pickup side of an order, including the aggregator
// platform it originated on. Coordinates are optional; distance estimation
// falls back to a default when they are missing.
type Restaurant struct {
	Name        string
	Address     string
	Phone       string
	Coordinates *kernel.GeoPoint
	Platform    Platform
}

// Validate enforces a name and a valid platform; when coordinates are present
// they must be properly constructed.
func (r Restaurant) Validate() error {
	if r.Name == "" {
		return errs.NewValueIsRequiredError("restaurant name")
	}
	if err := r.Platform.Validate(); err != nil {
		return err
	}
	if r.Coordinates != nil {
		if err := r.Coordinates.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DeliveryAddress describes the drop-off side of an order. Coordinates are
// optional with the same default-distance fallback as the restaurant side.
type DeliveryAddress struct {
	Street       string
	City         string
	State        string
	ZipCode      string
	Coordinates  *kernel.GeoPoint
	Landmark     string
	Instructions string
}

// Validate enforces a street; when coordinates are present they must be
// properly constructed.
func (a DeliveryAddress) Validate() error {
	if a.Street == "" {
		return errs.NewValueIsRequiredError("delivery address street")
	}
	if a.Coordinates != nil {
		if err := a.Coordinates.Validate(); err != nil {
			return err
		}
	}
	return nil
}
