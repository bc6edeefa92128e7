package commands

import (
	"errors"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/pkg/guard"
)

var ErrUpdatePartnerLocationCommandIsNotConstructed = errors.New(
	"UpdatePartnerLocationCommand must be created via NewUpdatePartnerLocationCommand constructor",
)

// UpdatePartnerLocationCommand represents a delivery partner reporting their
// current position.
type UpdatePartnerLocationCommand struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID
	location  kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdatePartnerLocationCommand creates a command to report a partner position.
func NewUpdatePartnerLocationCommand(partnerID kernel.UUID, location kernel.GeoPoint) (UpdatePartnerLocationCommand, error) {
	cmd := UpdatePartnerLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPartnerID(partnerID),
		cmd.setLocation(location),
	); err != nil {
		return UpdatePartnerLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdatePartnerLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePartnerLocationCommandIsNotConstructed)
}

// PartnerID returns the reporting partner.
func (c UpdatePartnerLocationCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Location returns the reported position.
func (c UpdatePartnerLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *UpdatePartnerLocationCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}

func (c *UpdatePartnerLocationCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
