package kernel

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"foodgo/internal/pkg/errs"
)

const (
	// orderIDPrefix marks every order identifier issued by this system.
	orderIDPrefix = "FGO"
	// orderIDSuffixLength is the number of random characters appended after the timestamp.
	orderIDSuffixLength = 5
)

const orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ErrOrderIDIsRequired is returned when validating an empty order identifier.
var ErrOrderIDIsRequired = errs.NewValueIsRequiredError(
	"order ID must be created via NewOrderID or OrderIDFromString")

// OrderID is the value object identifying an order. Identifiers are generated
// at creation time from the current unix-milli timestamp plus a random
// uppercase suffix, prefixed with "FGO", and are immutable thereafter.
//
// Example: FGO1756444800000A7K2Q
type OrderID struct {
	value string
}

// NewOrderID generates a fresh order identifier from the current time and a
// random 5 character suffix.
func NewOrderID() OrderID {
	var suffix strings.Builder
	for range orderIDSuffixLength {
		suffix.WriteByte(orderIDAlphabet[rand.IntN(len(orderIDAlphabet))]) //nolint:gosec // not a secret
	}

	return OrderID{
		value: fmt.Sprintf("%s%d%s", orderIDPrefix, time.Now().UnixMilli(), suffix.String()),
	}
}

// OrderIDFromString reconstructs an OrderID from its string form, typically
// when loading from persistence or parsing a request path.
// Returns an error if the value is empty or does not carry the FGO prefix.
func OrderIDFromString(s string) (OrderID, error) {
	if s == "" {
		return OrderID{}, ErrOrderIDIsRequired
	}

	if !strings.HasPrefix(s, orderIDPrefix) || len(s) <= len(orderIDPrefix) {
		return OrderID{}, errs.NewValueIsInvalidErrorWithCause("orderId",
			fmt.Errorf("%q does not look like an order identifier", s))
	}

	return OrderID{value: s}, nil
}

// Validate checks the OrderID was created through a constructor.
func (id OrderID) Validate() error {
	if id.value == "" {
		return ErrOrderIDIsRequired
	}
	return nil
}

// String returns the identifier in its canonical string form.
func (id OrderID) String() string {
	return id.value
}

// IsEqual compares two order identifiers for equality.
func (id OrderID) IsEqual(other OrderID) bool {
	return id.value == other.value
}
