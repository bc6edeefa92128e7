// Package realtime fans application events out to subscribed clients over
// named channels. Delivery is at-most-once: a subscriber that cannot keep up
// loses frames rather than slowing everyone else down, and a subscriber that
// joins late never sees what it missed.
package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"foodgo/internal/core/application/events"
)

// DefaultSubscriberBuffer is the per-subscriber frame buffer. Once it is
// full, further frames for that subscriber are dropped.
const DefaultSubscriberBuffer = 16

// Frame is the wire unit pushed to subscribers: the event name plus the
// event's own JSON payload.
type Frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Subscription is one client's attachment to a set of channels. Frames arrive
// on C until Close.
type Subscription struct {
	channels []string
	frames   chan Frame

	closeOnce sync.Once
	hub       *Hub
}

// C returns the subscriber's frame stream.
func (s *Subscription) C() <-chan Frame {
	return s.frames
}

// Channels returns the channels this subscription is attached to.
func (s *Subscription) Channels() []string {
	return append([]string(nil), s.channels...)
}

// Close detaches the subscription and closes its frame stream.
// Safe to call more than once.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.hub.unsubscribe(s)
		close(s.frames)
	})
}

// Hub routes event frames to subscriptions by channel name. It implements
// ports.EventPublisher so command handlers can publish to it directly after
// commit.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[*Subscription]struct{}
	buffer      int
	logger      *slog.Logger
}

// NewHub creates a hub with the given per-subscriber buffer size.
// A non-positive size falls back to DefaultSubscriberBuffer.
func NewHub(buffer int, logger *slog.Logger) *Hub {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		subscribers: make(map[string]map[*Subscription]struct{}),
		buffer:      buffer,
		logger:      logger,
	}
}

// Subscribe attaches a new subscriber to the given channels.
func (h *Hub) Subscribe(channels ...string) *Subscription {
	sub := &Subscription{
		channels: append([]string(nil), channels...),
		frames:   make(chan Frame, h.buffer),
		hub:      h,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, channel := range channels {
		set, ok := h.subscribers[channel]
		if !ok {
			set = make(map[*Subscription]struct{})
			h.subscribers[channel] = set
		}
		set[sub] = struct{}{}
	}

	return sub
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, channel := range sub.channels {
		set, ok := h.subscribers[channel]
		if !ok {
			continue
		}
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subscribers, channel)
		}
	}
}

// Publish fans each event out to every subscriber of each of its channels.
// A subscriber attached to several of the event's channels still receives the
// frame once. Slow subscribers are skipped, never waited on.
func (h *Hub) Publish(_ context.Context, evts ...events.Event) error {
	for _, evt := range evts {
		payload, err := json.Marshal(evt)
		if err != nil {
			return err
		}
		frame := Frame{Event: evt.Name(), Data: payload}

		h.mu.RLock()
		delivered := make(map[*Subscription]struct{})
		for _, channel := range evt.Channels() {
			for sub := range h.subscribers[channel] {
				if _, seen := delivered[sub]; seen {
					continue
				}
				delivered[sub] = struct{}{}

				select {
				case sub.frames <- frame:
				default:
					h.logger.Warn("dropping realtime frame for slow subscriber",
						"event", evt.Name(), "channel", channel)
				}
			}
		}
		h.mu.RUnlock()
	}

	return nil
}

// SubscriberCount reports how many subscriptions a channel currently has.
func (h *Hub) SubscriberCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[channel])
}
