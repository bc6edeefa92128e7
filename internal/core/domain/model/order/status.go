package order

import (
	"fmt"

	"foodgo/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct delivery workflow.
//
// State transitions:
//
//	placed → confirmed → preparing → ready_for_pickup → picked_up → on_the_way → delivered
//	   │         │           │              │               │            │
//	   └─────────┴───────────┴──────┬───────┴───────────────┴────────────┘
//	                                ▼
//	                            cancelled
//
// delivered and cancelled are terminal: no further transitions are allowed.
// The forward-only ordering is enforced here rather than left to callers.
type Status string

const (
	// StatusPlaced is the initial status assigned when an order is created.
	StatusPlaced Status = "placed"
	// StatusConfirmed indicates a delivery partner has claimed the order.
	StatusConfirmed Status = "confirmed"
	// StatusPreparing indicates the restaurant is preparing the order.
	StatusPreparing Status = "preparing"
	// StatusReadyForPickup indicates the order awaits pickup at the restaurant.
	StatusReadyForPickup Status = "ready_for_pickup"
	// StatusPickedUp indicates the partner has collected the order.
	StatusPickedUp Status = "picked_up"
	// StatusOnTheWay indicates the partner is en route to the customer.
	StatusOnTheWay Status = "on_the_way"
	// StatusDelivered is the successful terminal status.
	StatusDelivered Status = "delivered"
	// StatusCancelled is the terminal status for abandoned orders.
	StatusCancelled Status = "cancelled"
)

// transitions is the explicit legality table for the order state machine.
// Each status maps to the set of statuses it may step to.
var transitions = map[Status][]Status{
	StatusPlaced:         {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusReadyForPickup, StatusCancelled},
	StatusReadyForPickup: {StatusPickedUp, StatusCancelled},
	StatusPickedUp:       {StatusOnTheWay, StatusCancelled},
	StatusOnTheWay:       {StatusDelivered, StatusCancelled},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusPlaced, StatusConfirmed, StatusPreparing, StatusReadyForPickup,
		StatusPickedUp, StatusOnTheWay, StatusDelivered, StatusCancelled,
	}
}

// Validate checks the status is a member of the enumerated set.
func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%q is not a valid status", string(s)))
	}
	return nil
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status allows no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsInitial reports whether the status is the creation-time status.
// Partners may only set non-initial statuses.
func (s Status) IsInitial() bool {
	return s == StatusPlaced
}

// IsClaimable reports whether an unassigned order in this status can still be
// claimed by a delivery partner.
func (s Status) IsClaimable() bool {
	return s == StatusPlaced || s == StatusConfirmed
}

// IsEnRoute reports whether an order in this status carries the partner toward
// the customer, meaning partner location updates should fan out to its channel.
func (s Status) IsEnRoute() bool {
	return s == StatusPickedUp || s == StatusOnTheWay
}

// CanTransitionTo reports whether stepping from s to next is legal
// according to the transition table.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs the transition from s to next.
//
// Returns:
//   - (next, nil) when the step is legal
//   - ("", error) when next is not a valid status or the step is not allowed
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return "", err
	}

	if !s.CanTransitionTo(next) {
		return "", errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("cannot transition from %s to %s", s, next))
	}

	return next, nil
}
