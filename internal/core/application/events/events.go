// Package events defines the integration events the application emits and the
// channel naming scheme used to route them to realtime subscribers.
//
// Events are published after the owning transaction commits, so subscribers
// never observe state that was rolled back. Delivery is at-most-once.
package events

import (
	"fmt"
	"time"
)

// Channel names. Every event is routed to one or more named channels; the
// realtime hub and the broker publisher both key on these.
const (
	// ChannelBroadcast reaches every connected client, used for offers to
	// the whole partner pool.
	ChannelBroadcast = "broadcast"
)

// OrderChannel names the per-order channel customers subscribe to for
// tracking a single order.
func OrderChannel(orderID string) string {
	return fmt.Sprintf("order_%s", orderID)
}

// PartnerChannel names the per-partner channel a delivery partner subscribes
// to for work directed at them.
func PartnerChannel(partnerID string) string {
	return fmt.Sprintf("partner_%s", partnerID)
}

// Event is an integration event with a wire name and routing channels.
type Event interface {
	// Name is the event's wire name as seen by subscribers.
	Name() string
	// Channels lists the channels the event is routed to.
	Channels() []string
}

// NewOrder is broadcast to the partner pool when an order is placed and needs
// a claimant.
type NewOrder struct {
	OrderID        string    `json:"orderId"`
	RestaurantName string    `json:"restaurantName"`
	Platform       string    `json:"platform"`
	PickupAddress  string    `json:"pickupAddress"`
	DropStreet     string    `json:"dropStreet"`
	Total          float64   `json:"total"`
	DistanceKm     float64   `json:"distanceKm"`
	PlacedAt       time.Time `json:"placedAt"`
}

func (NewOrder) Name() string { return "newOrder" }

func (e NewOrder) Channels() []string {
	return []string{ChannelBroadcast}
}

// OrderAccepted tells the order's watchers which partner claimed it, and the
// partner's channel that the claim succeeded.
type OrderAccepted struct {
	OrderID     string    `json:"orderId"`
	PartnerID   string    `json:"partnerId"`
	PartnerName string    `json:"partnerName"`
	EtaMinutes  int       `json:"etaMinutes"`
	AcceptedAt  time.Time `json:"acceptedAt"`
}

func (OrderAccepted) Name() string { return "orderAccepted" }

func (e OrderAccepted) Channels() []string {
	return []string{OrderChannel(e.OrderID), PartnerChannel(e.PartnerID)}
}

// StatusUpdate notifies an order's watchers of a lifecycle transition.
type StatusUpdate struct {
	OrderID   string    `json:"orderId"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
}

func (StatusUpdate) Name() string { return "statusUpdate" }

func (e StatusUpdate) Channels() []string {
	return []string{OrderChannel(e.OrderID)}
}

// DeliveryLocationUpdate streams the assigned partner's position to an
// order's watchers while the order is en route.
type DeliveryLocationUpdate struct {
	OrderID   string    `json:"orderId"`
	PartnerID string    `json:"partnerId"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

func (DeliveryLocationUpdate) Name() string { return "deliveryLocationUpdate" }

func (e DeliveryLocationUpdate) Channels() []string {
	return []string{OrderChannel(e.OrderID)}
}
