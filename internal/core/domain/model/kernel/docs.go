// Package kernel provides core domain primitives and utilities for the delivery system.
// It implements fundamental building blocks following Domain-Driven Design principles
// that are used throughout the domain model.
//
// The package includes:
//   - UUID: A value object for user and partner identifiers with validation and comparison
//   - OrderID: The time-based order identifier scheme (FGO prefix + timestamp + random suffix)
//   - GeoPoint: A geographic coordinate with great-circle distance and ETA estimation
//   - Role: The authenticated caller role contract consumed from the API surface
//
// These primitives enforce domain invariants and validation rules, ensuring that
// domain objects are always in a valid state. They are designed to be immutable
// and thread-safe, making them suitable for concurrent use.
package kernel
