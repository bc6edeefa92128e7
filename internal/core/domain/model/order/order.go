package order

import (
	"errors"
	"fmt"
	"time"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/pkg/errs"
	"foodgo/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the aggregate root for a delivery order. It owns the lifecycle
// state machine, the append-only status history, the payment record, both
// rating sub-records and the tracking trail.
//
// Order maintains these invariants:
//   - The identifier is generated at creation and immutable
//   - The item list is non-empty
//   - Status transitions follow the legality table in status.go
//   - Status history only ever grows; entries are never mutated or removed
//   - The actual delivery time is stamped exactly once, on the transition to delivered
//   - A delivery partner is assigned at most once (admin override excepted)
//   - Each rating side is recorded at most once, and only after delivery
//
// All mutation goes through validated methods; the struct's fields are private
// so an Order can never be put into an illegal state from outside the package.
type Order struct {
	id         kernel.OrderID
	customerID kernel.UUID
	partnerID  *kernel.UUID

	restaurant Restaurant
	items      []Item
	pricing    Pricing
	address    DeliveryAddress

	status  Status
	history []StatusChange

	payment Payment

	estimatedDeliveryTime time.Time
	actualDeliveryTime    *time.Time

	customerRating *RatingEntry
	partnerRating  *RatingEntry

	currentLocation *RoutePoint
	route           []RoutePoint

	specialInstructions string
	platformOrderID     string
	isAggregated        bool

	createdAt time.Time
	updatedAt time.Time

	// version supports optimistic concurrency control in repositories.
	version int

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in placed status with exactly one status
// history entry.
//
// The estimated delivery time is derived once, here, from the great-circle
// distance between the restaurant and the delivery address (falling back to a
// default distance when either side has no coordinates) and is not recomputed
// on later edits. The payment record starts pending with the amount set to the
// caller-supplied pricing total.
//
// Parameters:
//   - customerID: the owning customer (required)
//   - restaurant: pickup details including the origin platform
//   - items: non-empty line items
//   - pricing: caller-supplied money breakdown; Total is trusted
//   - address: drop-off details
//   - method: how the customer pays
//   - instructions: optional free-text special instructions
//   - platformOrderID: the aggregator platform's own order reference, if any
//
// Returns the created order, or a validation error if any input is invalid.
func NewOrder(
	customerID kernel.UUID,
	restaurant Restaurant,
	items []Item,
	pricing Pricing,
	address DeliveryAddress,
	method PaymentMethod,
	instructions string,
	platformOrderID string,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setCustomerID(customerID),
		o.setRestaurant(restaurant),
		o.setItems(items),
		o.setPricing(pricing),
		o.setAddress(address),
		method.Validate(),
	); err != nil {
		return nil, err
	}

	now := time.Now()

	o.id = kernel.NewOrderID()
	o.payment = Payment{
		Method: method,
		Status: PaymentStatusPending,
		Amount: pricing.Total,
	}
	o.specialInstructions = instructions
	o.platformOrderID = platformOrderID
	o.isAggregated = true
	o.createdAt = now
	o.updatedAt = now
	o.version = 1

	o.estimatedDeliveryTime = now.Add(kernel.DeliveryEstimate(o.DistanceKm()))

	o.status = StatusPlaced
	o.history = []StatusChange{{Status: StatusPlaced, Timestamp: now}}

	return o, nil
}

// Snapshot is the full persisted state of an order, used to move aggregates
// across the repository boundary without exposing setters.
type Snapshot struct {
	ID         kernel.OrderID
	CustomerID kernel.UUID
	PartnerID  *kernel.UUID

	Restaurant Restaurant
	Items      []Item
	Pricing    Pricing
	Address    DeliveryAddress

	Status  Status
	History []StatusChange

	Payment Payment

	EstimatedDeliveryTime time.Time
	ActualDeliveryTime    *time.Time

	CustomerRating *RatingEntry
	PartnerRating  *RatingEntry

	CurrentLocation *RoutePoint
	Route           []RoutePoint

	SpecialInstructions string
	PlatformOrderID     string
	IsAggregated        bool

	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int
}

// RestoreOrder reconstructs an Order aggregate from persistence. Unlike
// NewOrder it performs no derivation; the snapshot is trusted to be the state
// a previously valid aggregate was saved with, and only structural checks are
// applied.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.ID.Validate(),
		o.setCustomerID(s.CustomerID),
		o.setRestaurant(s.Restaurant),
		o.setItems(s.Items),
		o.setPricing(s.Pricing),
		o.setAddress(s.Address),
		s.Status.Validate(),
		s.Payment.Validate(),
	); err != nil {
		return nil, err
	}

	if s.Version < 1 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("order version",
			fmt.Errorf("%d is not a positive version", s.Version))
	}

	if s.PartnerID != nil {
		if err := s.PartnerID.Validate(); err != nil {
			return nil, err
		}
		partnerID := *s.PartnerID
		o.partnerID = &partnerID
	}

	o.id = s.ID
	o.status = s.Status
	o.history = append([]StatusChange(nil), s.History...)
	o.payment = s.Payment
	o.estimatedDeliveryTime = s.EstimatedDeliveryTime
	o.actualDeliveryTime = s.ActualDeliveryTime
	o.customerRating = s.CustomerRating
	o.partnerRating = s.PartnerRating
	o.currentLocation = s.CurrentLocation
	o.route = append([]RoutePoint(nil), s.Route...)
	o.specialInstructions = s.SpecialInstructions
	o.platformOrderID = s.PlatformOrderID
	o.isAggregated = s.IsAggregated
	o.createdAt = s.CreatedAt
	o.updatedAt = s.UpdatedAt
	o.version = s.Version

	return o, nil
}

// Snapshot captures the aggregate's complete state for persistence.
func (o *Order) Snapshot() Snapshot {
	var partnerID *kernel.UUID
	if o.partnerID != nil {
		id := *o.partnerID
		partnerID = &id
	}

	return Snapshot{
		ID:                    o.id,
		CustomerID:            o.customerID,
		PartnerID:             partnerID,
		Restaurant:            o.restaurant,
		Items:                 append([]Item(nil), o.items...),
		Pricing:               o.pricing,
		Address:               o.address,
		Status:                o.status,
		History:               append([]StatusChange(nil), o.history...),
		Payment:               o.payment,
		EstimatedDeliveryTime: o.estimatedDeliveryTime,
		ActualDeliveryTime:    o.actualDeliveryTime,
		CustomerRating:        o.customerRating,
		PartnerRating:         o.partnerRating,
		CurrentLocation:       o.currentLocation,
		Route:                 append([]RoutePoint(nil), o.route...),
		SpecialInstructions:   o.specialInstructions,
		PlatformOrderID:       o.platformOrderID,
		IsAggregated:          o.isAggregated,
		CreatedAt:             o.createdAt,
		UpdatedAt:             o.updatedAt,
		Version:               o.version,
	}
}

// Validate ensures the Order instance was properly constructed through a factory.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.OrderID {
	return o.id
}

// CustomerID returns the owning customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// PartnerID returns the assigned delivery partner's identifier,
// or nil if the order is unclaimed.
func (o *Order) PartnerID() *kernel.UUID {
	if o.partnerID == nil {
		return nil
	}
	id := *o.partnerID
	return &id
}

// IsAssignedTo reports whether the given partner is the order's assigned partner.
func (o *Order) IsAssignedTo(partnerID kernel.UUID) bool {
	return o.partnerID != nil && o.partnerID.IsEqual(partnerID)
}

// Restaurant returns the pickup details.
func (o *Order) Restaurant() Restaurant {
	return o.restaurant
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Pricing returns the money breakdown.
func (o *Order) Pricing() Pricing {
	return o.pricing
}

// Address returns the drop-off details.
func (o *Order) Address() DeliveryAddress {
	return o.address
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// History returns a copy of the append-only status history.
func (o *Order) History() []StatusChange {
	return append([]StatusChange(nil), o.history...)
}

// Payment returns the payment record.
func (o *Order) Payment() Payment {
	return o.payment
}

// EstimatedDeliveryTime returns the ETA derived at creation.
func (o *Order) EstimatedDeliveryTime() time.Time {
	return o.estimatedDeliveryTime
}

// ActualDeliveryTime returns when the order was delivered, or nil if it wasn't.
func (o *Order) ActualDeliveryTime() *time.Time {
	if o.actualDeliveryTime == nil {
		return nil
	}
	t := *o.actualDeliveryTime
	return &t
}

// CustomerRating returns the customer's rating of the partner, or nil.
func (o *Order) CustomerRating() *RatingEntry {
	if o.customerRating == nil {
		return nil
	}
	r := *o.customerRating
	return &r
}

// PartnerRating returns the partner's rating of the customer, or nil.
func (o *Order) PartnerRating() *RatingEntry {
	if o.partnerRating == nil {
		return nil
	}
	r := *o.partnerRating
	return &r
}

// CurrentLocation returns the partner's last reported location for this order, or nil.
func (o *Order) CurrentLocation() *RoutePoint {
	if o.currentLocation == nil {
		return nil
	}
	p := *o.currentLocation
	return &p
}

// Route returns a copy of the append-only route trail.
func (o *Order) Route() []RoutePoint {
	return append([]RoutePoint(nil), o.route...)
}

// SpecialInstructions returns the customer's free-text instructions.
func (o *Order) SpecialInstructions() string {
	return o.specialInstructions
}

// PlatformOrderID returns the origin platform's own order reference.
func (o *Order) PlatformOrderID() string {
	return o.platformOrderID
}

// IsAggregated reports whether the order was sourced from an aggregator platform.
func (o *Order) IsAggregated() bool {
	return o.isAggregated
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version returns the optimistic concurrency version. Repositories bump it on
// every successful save; a conditional write on the loaded version is what
// serializes racing mutations of the same order.
func (o *Order) Version() int {
	return o.version
}

// DistanceKm returns the great-circle distance between the restaurant and the
// delivery address, or the default distance when either side has no
// coordinates.
func (o *Order) DistanceKm() float64 {
	if o.restaurant.Coordinates == nil || o.address.Coordinates == nil {
		return kernel.DefaultDistanceKm
	}

	km, err := o.restaurant.Coordinates.DistanceKm(*o.address.Coordinates)
	if err != nil {
		return kernel.DefaultDistanceKm
	}
	return km
}

// Accept claims the order for a delivery partner.
//
// The claim succeeds only while the order has no assigned partner and its
// status is still claimable (placed or confirmed). A placed order transitions
// to confirmed with a history entry; an order already confirmed keeps its
// status. Competing claims are serialized by the repository's conditional
// write, so at most one caller observes success.
//
// Returns ErrObjectNotFound (via errs) when the order is not available; the
// unknown-order and wrong-state cases are deliberately indistinguishable.
func (o *Order) Accept(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	if o.partnerID != nil || !o.status.IsClaimable() {
		return errs.NewObjectNotFoundErrorWithCause("order", o.id.String(),
			errors.New("order is not available for acceptance"))
	}

	o.partnerID = &partnerID
	if o.status == StatusPlaced {
		o.applyStatus(StatusConfirmed, nil)
	} else {
		o.touch()
	}

	return nil
}

// OverridePartner replaces the assigned partner. This is the operator escape
// hatch; regular assignment is immutable after Accept. Terminal orders cannot
// be reassigned.
func (o *Order) OverridePartner(partnerID kernel.UUID) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}

	if o.status.IsTerminal() {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot reassign a %s order", o.status))
	}

	o.partnerID = &partnerID
	o.touch()
	return nil
}

// UpdateStatus transitions the order to newStatus, appending a history entry
// with the optional reported location. Legality is enforced by the transition
// table; the transition to delivered additionally stamps the actual delivery
// time, exactly once.
func (o *Order) UpdateStatus(newStatus Status, location *kernel.GeoPoint) error {
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
	}

	next, err := o.status.TransitionTo(newStatus)
	if err != nil {
		return err
	}

	o.applyStatus(next, location)
	return nil
}

// Cancel transitions the order to cancelled. Only non-terminal orders can be
// cancelled; the transition table enforces this.
func (o *Order) Cancel() error {
	return o.UpdateStatus(StatusCancelled, nil)
}

// RecordCustomerRating stores the customer's rating of the delivery partner.
// Fails unless the order is delivered, and at most one entry is kept.
func (o *Order) RecordCustomerRating(entry RatingEntry) error {
	if err := o.validateRatable(o.customerRating); err != nil {
		return err
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	o.customerRating = &entry
	o.touch()
	return nil
}

// RecordPartnerRating stores the delivery partner's rating of the customer.
// Fails unless the order is delivered, and at most one entry is kept.
func (o *Order) RecordPartnerRating(entry RatingEntry) error {
	if err := o.validateRatable(o.partnerRating); err != nil {
		return err
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	o.partnerRating = &entry
	o.touch()
	return nil
}

// RecordPartnerLocation stamps the partner's current position on the order and
// appends it to the route trail. Only meaningful while the order is en route;
// callers filter on status before invoking.
func (o *Order) RecordPartnerLocation(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	entry := RoutePoint{Point: point, Timestamp: time.Now()}
	o.currentLocation = &entry
	o.route = append(o.route, entry)
	o.touch()
	return nil
}

// MarkPaymentCompleted records a successful gateway settlement.
func (o *Order) MarkPaymentCompleted(transactionID string) error {
	if transactionID == "" {
		return errs.NewValueIsRequiredError("transaction ID")
	}

	o.payment.Status = PaymentStatusCompleted
	o.payment.TransactionID = transactionID
	o.touch()
	return nil
}

// MarkPaymentFailed records a failed gateway settlement.
func (o *Order) MarkPaymentFailed() {
	o.payment.Status = PaymentStatusFailed
	o.touch()
}

// applyStatus performs the bookkeeping shared by every transition: set the
// status, append the history entry and stamp delivery time when terminal
// success is reached.
func (o *Order) applyStatus(newStatus Status, location *kernel.GeoPoint) {
	now := time.Now()

	o.status = newStatus
	o.history = append(o.history, StatusChange{
		Status:    newStatus,
		Timestamp: now,
		Location:  location,
	})

	if newStatus == StatusDelivered && o.actualDeliveryTime == nil {
		o.actualDeliveryTime = &now
	}

	o.updatedAt = now
}

func (o *Order) validateRatable(existing *RatingEntry) error {
	if o.status != StatusDelivered {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("can only rate delivered orders, order is %s", o.status))
	}
	if existing != nil {
		return errs.NewConflictError("rating", o.id.String())
	}
	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now()
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setRestaurant(restaurant Restaurant) error {
	if err := restaurant.Validate(); err != nil {
		return err
	}
	o.restaurant = restaurant
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = append([]Item(nil), items...)
	return nil
}

func (o *Order) setPricing(pricing Pricing) error {
	if err := pricing.Validate(); err != nil {
		return err
	}
	o.pricing = pricing
	return nil
}

func (o *Order) setAddress(address DeliveryAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}
