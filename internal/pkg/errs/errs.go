package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is.
var (
	// ErrObjectNotFound indicates a requested object does not exist or is not
	// in a state that makes it addressable by the requested operation.
	ErrObjectNotFound = errors.New("object not found")
	// ErrValueIsInvalid indicates a supplied value failed validation.
	ErrValueIsInvalid = errors.New("value is invalid")
	// ErrValueIsOutOfRange indicates a numeric value fell outside its allowed bounds.
	ErrValueIsOutOfRange = errors.New("value is out of range")
	// ErrValueIsRequired indicates a required value is missing.
	ErrValueIsRequired = errors.New("value is required")
	// ErrVersionIsInvalid indicates an aggregate version check failed.
	ErrVersionIsInvalid = errors.New("version is invalid")
	// ErrNotAuthorized indicates the caller's role or ownership does not permit the operation.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrConflict indicates the operation lost a concurrent modification race.
	ErrConflict = errors.New("conflict")
	// ErrInsufficientFunds indicates a withdrawal exceeds the available pending balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrExternalService indicates a downstream collaborator failed; the failure
	// is surfaced unchanged and never retried here.
	ErrExternalService = errors.New("external service failure")
)

// sanitize strips newlines from formatted values so error messages stay single-line.
func sanitize(v any) string {
	return strings.ReplaceAll(strings.ReplaceAll(fmt.Sprintf("%s", v), "\n", " "), "\r", " ")
}

// ObjectNotFoundError reports that an object with the given identifier could not
// be found. Operations that require an object in a specific state deliberately
// return this same error when the object exists but is in the wrong state, so
// callers cannot distinguish existence from state.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an underlying cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports that a named value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping an underlying cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside its allowed [Min, Max] bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError without an underlying cause.
func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping an underlying cause.
func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitizeValue(e.Value), e.ParamName, e.Min, e.Max)
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// sanitizeValue keeps numeric values formatted with %v while flattening strings.
func sanitizeValue(v any) any {
	if s, ok := v.(string); ok {
		return sanitize(s)
	}
	return v
}

// ValueIsRequiredError reports a missing required value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError reports that an aggregate version check failed during
// reconstruction from persistence.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError without an underlying cause.
func NewVersionIsInvalidError(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

// NewVersionIsInvalidErrorWithCause creates a VersionIsInvalidError wrapping an underlying cause.
func NewVersionIsInvalidErrorWithCause(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// NotAuthorizedError reports a role or ownership mismatch: the caller exists
// and is authenticated, but may not perform the requested action.
type NotAuthorizedError struct {
	Role   string
	Action string
	Cause  error
}

// NewNotAuthorizedError creates a NotAuthorizedError without an underlying cause.
func NewNotAuthorizedError(role, action string) *NotAuthorizedError {
	return &NotAuthorizedError{Role: role, Action: action}
}

// NewNotAuthorizedErrorWithCause creates a NotAuthorizedError wrapping an underlying cause.
func NewNotAuthorizedErrorWithCause(role, action string, cause error) *NotAuthorizedError {
	return &NotAuthorizedError{Role: role, Action: action, Cause: cause}
}

func (e *NotAuthorizedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s cannot %s (cause: %s)", ErrNotAuthorized, e.Role, e.Action, e.Cause)
	}
	return fmt.Sprintf("%s: %s cannot %s", ErrNotAuthorized, e.Role, e.Action)
}

func (e *NotAuthorizedError) Unwrap() error {
	return ErrNotAuthorized
}

// ConflictError reports that the operation lost a concurrent modification race,
// e.g. a competing claim on the same order committed first.
type ConflictError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewConflictError creates a ConflictError without an underlying cause.
func NewConflictError(paramName string, id any) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id}
}

// NewConflictErrorWithCause creates a ConflictError wrapping an underlying cause.
func NewConflictErrorWithCause(paramName string, id any, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %s was modified concurrently (cause: %s)",
			ErrConflict, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s %s was modified concurrently", ErrConflict, e.ParamName, sanitize(e.ID))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// InsufficientFundsError reports a withdrawal larger than the pending balance.
type InsufficientFundsError struct {
	Requested float64
	Pending   float64
}

// NewInsufficientFundsError creates an InsufficientFundsError.
func NewInsufficientFundsError(requested, pending float64) *InsufficientFundsError {
	return &InsufficientFundsError{Requested: requested, Pending: pending}
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: requested %.2f, pending %.2f", ErrInsufficientFunds, e.Requested, e.Pending)
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}

// ExternalServiceError reports a failure from a downstream collaborator such as
// the payment gateway. The cause is preserved verbatim.
type ExternalServiceError struct {
	Service string
	Cause   error
}

// NewExternalServiceError creates an ExternalServiceError wrapping the downstream failure.
func NewExternalServiceError(service string, cause error) *ExternalServiceError {
	return &ExternalServiceError{Service: service, Cause: cause}
}

func (e *ExternalServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrExternalService, e.Service, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrExternalService, e.Service)
}

func (e *ExternalServiceError) Unwrap() error {
	return ErrExternalService
}
