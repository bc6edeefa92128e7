package kernel

import (
	"fmt"

	"foodgo/internal/pkg/errs"
)

// Role identifies which side of the marketplace an authenticated caller acts
// for. The value arrives with the caller identity from the API surface; this
// core only consumes it for authorization decisions.
type Role string

const (
	// RoleCustomer places orders and rates partners.
	RoleCustomer Role = "customer"
	// RoleDeliveryPartner claims and delivers orders.
	RoleDeliveryPartner Role = "delivery_partner"
	// RoleAdmin performs operator overrides.
	RoleAdmin Role = "admin"
)

// Validate checks the role is one of the known values.
func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleDeliveryPartner, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%q is not a valid role", string(r)))
	}
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}
