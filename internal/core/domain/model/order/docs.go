// Package order contains the Order aggregate and its value objects.
//
// Order is the aggregate root for a delivery order: it owns the lifecycle
// state machine (status.go), the pickup/drop-off/line-item details
// (details.go), the payment record (payment.go) and the tracking trail with
// post-delivery ratings (tracking.go).
//
// Aggregates are created via NewOrder and rehydrated from persistence via
// RestoreOrder; all other mutation goes through validated methods so an
// illegal state is unrepresentable outside this package.
package order
