package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"foodgo/internal/core/application/events"
	"foodgo/internal/core/ports"
)

// DefaultRebroadcastSpec re-broadcasts open offers every 30 seconds.
const DefaultRebroadcastSpec = "*/30 * * * * *"

// OfferRebroadcastJob periodically re-emits newOrder offers for orders that
// are still unclaimed, so partners who connected after the original broadcast
// still see them. The hub has no replay; this is the replacement.
type OfferRebroadcastJob struct {
	uowFactory ports.UnitOfWorkFactory
	publisher  ports.EventPublisher
	spec       string
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewOfferRebroadcastJob creates the job. An empty spec falls back to
// DefaultRebroadcastSpec.
func NewOfferRebroadcastJob(
	uowFactory ports.UnitOfWorkFactory,
	publisher ports.EventPublisher,
	spec string,
	logger *slog.Logger,
) *OfferRebroadcastJob {
	if spec == "" {
		spec = DefaultRebroadcastSpec
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OfferRebroadcastJob{
		uowFactory: uowFactory,
		publisher:  publisher,
		spec:       spec,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "offer_rebroadcast_job"),
	}
}

// Start schedules the job.
func (j *OfferRebroadcastJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("offer rebroadcast job started", "spec", j.spec)
	return nil
}

// Stop stops the schedule.
func (j *OfferRebroadcastJob) Stop() {
	j.cron.Stop()
	j.logger.Info("offer rebroadcast job stopped")
}

// Run executes one sweep: load the unclaimed pool and re-publish each offer
// on the broadcast channel. Read-only, no transaction.
func (j *OfferRebroadcastJob) Run(ctx context.Context) {
	uow := j.uowFactory.Create()

	open, err := uow.OrderRepository().GetAllUnassigned(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "loading unclaimed orders failed", "error", err)
		return
	}
	if len(open) == 0 {
		return
	}

	offers := make([]events.Event, 0, len(open))
	for _, aggregate := range open {
		offers = append(offers, events.NewOrder{
			OrderID:        aggregate.ID().String(),
			RestaurantName: aggregate.Restaurant().Name,
			Platform:       aggregate.Restaurant().Platform.String(),
			PickupAddress:  aggregate.Restaurant().Address,
			DropStreet:     aggregate.Address().Street,
			Total:          aggregate.Pricing().Total,
			DistanceKm:     aggregate.DistanceKm(),
			PlacedAt:       aggregate.CreatedAt(),
		})
	}

	if err = j.publisher.Publish(ctx, offers...); err != nil {
		j.logger.WarnContext(ctx, "offer rebroadcast failed", "error", err)
		return
	}

	j.logger.DebugContext(ctx, "rebroadcast open offers", "count", len(offers))
}
