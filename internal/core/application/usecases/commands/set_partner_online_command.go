package commands

import (
	"errors"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/pkg/guard"
)

var ErrSetPartnerOnlineCommandIsNotConstructed = errors.New(
	"SetPartnerOnlineCommand must be created via NewSetPartnerOnlineCommand constructor",
)

// SetPartnerOnlineCommand represents a partner toggling their availability.
type SetPartnerOnlineCommand struct { //nolint:recvcheck //using for validation
	partnerID kernel.UUID
	online    bool

	guard guard.ConstructorGuard
}

// NewSetPartnerOnlineCommand creates a command to set a partner's online flag.
func NewSetPartnerOnlineCommand(partnerID kernel.UUID, online bool) (SetPartnerOnlineCommand, error) {
	cmd := SetPartnerOnlineCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setPartnerID(partnerID); err != nil {
		return SetPartnerOnlineCommand{}, err
	}

	cmd.online = online
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetPartnerOnlineCommand) Validate() error {
	return c.guard.Validate(ErrSetPartnerOnlineCommandIsNotConstructed)
}

// PartnerID returns the partner toggling availability.
func (c SetPartnerOnlineCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Online returns the requested availability.
func (c SetPartnerOnlineCommand) Online() bool {
	return c.online
}

func (c *SetPartnerOnlineCommand) setPartnerID(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	c.partnerID = partnerID
	return nil
}
