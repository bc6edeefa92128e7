package partner

import (
	"errors"
	"time"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/pkg/errs"
	"foodgo/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when attempting to create a partner without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrEmailIsRequired is returned when attempting to create a partner without an email.
	ErrEmailIsRequired = errs.NewValueIsRequiredError("email")
	// ErrPhoneIsRequired is returned when attempting to create a partner without a phone.
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrPartnerIsNotConstructed is returned when using an improperly initialized DeliveryPartner.
	ErrPartnerIsNotConstructed = errors.New("DeliveryPartner must be created via NewDeliveryPartner or RestoreDeliveryPartner")
)

// Position is the partner's last reported coordinate with its report time.
// UpdatedAt drives presence sweeps: partners whose position goes stale are
// taken offline.
type Position struct {
	Point     kernel.GeoPoint
	UpdatedAt time.Time
}

// DeliveryPartner is the aggregate root for a registered delivery partner.
// It owns the partner's identity and contact details, the registered vehicle,
// the rolling rating, the earnings balances and the presence state.
//
// Business rules:
//   - Name, email and phone are required; email and phone are unique across
//     partners (enforced by the repository)
//   - Partners start unverified, offline and with no location
//   - The rolling rating folds in one order rating at a time; history is not kept
//   - Earnings credits raise both total and pending; withdrawals only lower
//     pending and fail on insufficient funds
//   - Only online AND verified partners surface in nearby queries
type DeliveryPartner struct {
	id    kernel.UUID
	name  string
	email string
	phone string

	vehicle  Vehicle
	rating   Rating
	earnings Earnings

	isOnline        bool
	currentLocation *Position

	isVerified bool
	isActive   bool

	createdAt time.Time
	updatedAt time.Time

	// version supports optimistic concurrency control in repositories.
	version int

	guard guard.ConstructorGuard
}

// NewDeliveryPartner registers a new delivery partner. The partner starts
// active but unverified and offline, with an empty rating and zero earnings.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - name: display name (required)
//   - email: contact email, unique across partners (required)
//   - phone: contact phone, unique across partners (required)
//   - vehicle: the registered vehicle
//
// Returns the created partner, or an aggregated validation error.
func NewDeliveryPartner(id kernel.UUID, name, email, phone string, vehicle Vehicle) (*DeliveryPartner, error) {
	p := &DeliveryPartner{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setEmail(email),
		p.setPhone(phone),
		p.setVehicle(vehicle),
	); err != nil {
		return nil, err
	}

	now := time.Now()
	p.isActive = true
	p.createdAt = now
	p.updatedAt = now
	p.version = 1

	return p, nil
}

// Snapshot is the full persisted state of a delivery partner.
type Snapshot struct {
	ID    kernel.UUID
	Name  string
	Email string
	Phone string

	Vehicle  Vehicle
	Rating   Rating
	Earnings Earnings

	IsOnline        bool
	CurrentLocation *Position

	IsVerified bool
	IsActive   bool

	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int
}

// RestoreDeliveryPartner reconstructs a DeliveryPartner aggregate from
// persistence.
func RestoreDeliveryPartner(s Snapshot) (*DeliveryPartner, error) {
	p := &DeliveryPartner{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(s.ID),
		p.setName(s.Name),
		p.setEmail(s.Email),
		p.setPhone(s.Phone),
		p.setVehicle(s.Vehicle),
		s.Rating.Validate(),
		s.Earnings.Validate(),
	); err != nil {
		return nil, err
	}

	if s.Version < 1 {
		return nil, errs.NewVersionIsInvalidError("partner version")
	}

	if s.CurrentLocation != nil {
		if err := s.CurrentLocation.Point.Validate(); err != nil {
			return nil, err
		}
		pos := *s.CurrentLocation
		p.currentLocation = &pos
	}

	p.rating = s.Rating
	p.earnings = s.Earnings
	p.isOnline = s.IsOnline
	p.isVerified = s.IsVerified
	p.isActive = s.IsActive
	p.createdAt = s.CreatedAt
	p.updatedAt = s.UpdatedAt
	p.version = s.Version

	return p, nil
}

// Snapshot captures the aggregate's complete state for persistence.
func (p *DeliveryPartner) Snapshot() Snapshot {
	var pos *Position
	if p.currentLocation != nil {
		v := *p.currentLocation
		pos = &v
	}

	return Snapshot{
		ID:              p.id,
		Name:            p.name,
		Email:           p.email,
		Phone:           p.phone,
		Vehicle:         p.vehicle,
		Rating:          p.rating,
		Earnings:        p.earnings,
		IsOnline:        p.isOnline,
		CurrentLocation: pos,
		IsVerified:      p.isVerified,
		IsActive:        p.isActive,
		CreatedAt:       p.createdAt,
		UpdatedAt:       p.updatedAt,
		Version:         p.version,
	}
}

// Validate checks the partner was constructed through a factory function.
func (p *DeliveryPartner) Validate() error {
	if p == nil {
		return ErrPartnerIsNotConstructed
	}
	return p.guard.Validate(ErrPartnerIsNotConstructed)
}

// IsEqual compares two partners by their unique identifiers.
func (p *DeliveryPartner) IsEqual(other *DeliveryPartner) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the partner's unique identifier.
func (p *DeliveryPartner) ID() kernel.UUID {
	return p.id
}

// Name returns the partner's display name.
func (p *DeliveryPartner) Name() string {
	return p.name
}

// Email returns the partner's contact email.
func (p *DeliveryPartner) Email() string {
	return p.email
}

// Phone returns the partner's contact phone.
func (p *DeliveryPartner) Phone() string {
	return p.phone
}

// Vehicle returns the registered vehicle.
func (p *DeliveryPartner) Vehicle() Vehicle {
	return p.vehicle
}

// Rating returns the rolling rating.
func (p *DeliveryPartner) Rating() Rating {
	return p.rating
}

// Earnings returns the earnings balances.
func (p *DeliveryPartner) Earnings() Earnings {
	return p.earnings
}

// IsOnline reports whether the partner is accepting work.
func (p *DeliveryPartner) IsOnline() bool {
	return p.isOnline
}

// CurrentLocation returns the last reported position, or nil.
func (p *DeliveryPartner) CurrentLocation() *Position {
	if p.currentLocation == nil {
		return nil
	}
	pos := *p.currentLocation
	return &pos
}

// IsVerified reports whether the partner passed verification.
func (p *DeliveryPartner) IsVerified() bool {
	return p.isVerified
}

// IsActive reports whether the partner account is active.
func (p *DeliveryPartner) IsActive() bool {
	return p.isActive
}

// IsDispatchable reports whether the partner may surface in nearby-partner
// results: online, verified and active.
func (p *DeliveryPartner) IsDispatchable() bool {
	return p.isOnline && p.isVerified && p.isActive
}

// CreatedAt returns the registration timestamp.
func (p *DeliveryPartner) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (p *DeliveryPartner) UpdatedAt() time.Time {
	return p.updatedAt
}

// Version returns the optimistic concurrency version.
func (p *DeliveryPartner) Version() int {
	return p.version
}

// ApplyRating folds one order rating into the rolling average.
func (p *DeliveryPartner) ApplyRating(rating int) error {
	if rating < 1 || rating > 5 {
		return errs.NewValueIsOutOfRangeError("rating", rating, 1, 5)
	}

	p.rating = p.rating.Apply(rating)
	p.touch()
	return nil
}

// AddEarnings credits an amount to both the lifetime total and the pending
// balance.
func (p *DeliveryPartner) AddEarnings(amount float64) error {
	earnings, err := p.earnings.Add(amount)
	if err != nil {
		return err
	}

	p.earnings = earnings
	p.touch()
	return nil
}

// WithdrawEarnings debits the pending balance. Returns InsufficientFundsError
// when the amount exceeds what is pending.
func (p *DeliveryPartner) WithdrawEarnings(amount float64) error {
	earnings, err := p.earnings.Withdraw(amount)
	if err != nil {
		return err
	}

	p.earnings = earnings
	p.touch()
	return nil
}

// SetOnline toggles whether the partner is accepting work.
func (p *DeliveryPartner) SetOnline(online bool) {
	p.isOnline = online
	p.touch()
}

// RecordLocation stamps the partner's current position with the report time.
func (p *DeliveryPartner) RecordLocation(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	p.currentLocation = &Position{Point: point, UpdatedAt: time.Now()}
	p.touch()
	return nil
}

// MarkVerified records that the partner passed verification.
func (p *DeliveryPartner) MarkVerified() {
	p.isVerified = true
	p.touch()
}

// Deactivate disables the partner account and takes it offline.
func (p *DeliveryPartner) Deactivate() {
	p.isActive = false
	p.isOnline = false
	p.touch()
}

func (p *DeliveryPartner) touch() {
	p.updatedAt = time.Now()
}

func (p *DeliveryPartner) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *DeliveryPartner) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	p.name = name
	return nil
}

func (p *DeliveryPartner) setEmail(email string) error {
	if email == "" {
		return ErrEmailIsRequired
	}
	p.email = email
	return nil
}

func (p *DeliveryPartner) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}
	p.phone = phone
	return nil
}

func (p *DeliveryPartner) setVehicle(vehicle Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}
	p.vehicle = vehicle
	return nil
}
