// Package services holds domain services: business logic that spans the order
// and delivery-partner aggregates without belonging to either.
//
// PartnerMatcher ranks dispatchable partners for a pickup point by travel
// estimate. It deliberately never assigns anyone: assignment is
// first-claim-wins through the accept flow, and the matcher only informs
// offer fan-out and nearby-partner lookups.
package services
