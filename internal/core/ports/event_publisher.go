package ports

import (
	"context"

	"foodgo/internal/core/application/events"
)

// EventPublisher fans integration events out to subscribers. Implementations
// cover the in-process realtime hub and the Kafka producer; the composite
// publisher in the composition root chains them.
//
// Publishing is best-effort at-most-once: handlers call Publish only after a
// successful commit and treat failures as log-worthy, not transactional.
type EventPublisher interface {
	Publish(ctx context.Context, evts ...events.Event) error
}
