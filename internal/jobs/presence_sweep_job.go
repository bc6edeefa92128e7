package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"foodgo/internal/core/domain/model/kernel"
	"foodgo/internal/core/ports"
	"foodgo/internal/pkg/errs"
)

const (
	// DefaultSweepSpec runs the presence sweep every minute.
	DefaultSweepSpec = "0 * * * * *"

	// DefaultStaleAfter is how long a partner may go without a location
	// report before being flipped offline.
	DefaultStaleAfter = 10 * time.Minute
)

// PresenceSweepJob flips partners offline when their location reports have
// gone stale. Partner apps report continuously while working; a partner whose
// last report is old has dropped off without toggling themselves offline and
// must not keep receiving offers.
type PresenceSweepJob struct {
	uowFactory ports.UnitOfWorkFactory
	spec       string
	staleAfter time.Duration
	cron       *cron.Cron
	logger     *slog.Logger
	now        func() time.Time
}

// NewPresenceSweepJob creates the job. Empty spec and non-positive staleAfter
// fall back to the defaults.
func NewPresenceSweepJob(
	uowFactory ports.UnitOfWorkFactory,
	spec string,
	staleAfter time.Duration,
	logger *slog.Logger,
) *PresenceSweepJob {
	if spec == "" {
		spec = DefaultSweepSpec
	}
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PresenceSweepJob{
		uowFactory: uowFactory,
		spec:       spec,
		staleAfter: staleAfter,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "presence_sweep_job"),
		now:        time.Now,
	}
}

// Start schedules the job.
func (j *PresenceSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("presence sweep job started", "spec", j.spec, "staleAfter", j.staleAfter)
	return nil
}

// Stop stops the schedule.
func (j *PresenceSweepJob) Stop() {
	j.cron.Stop()
	j.logger.Info("presence sweep job stopped")
}

// Run executes one sweep. Each stale partner is flipped in its own
// transaction; a partner that changed concurrently just loses this round and
// gets reconsidered on the next sweep.
func (j *PresenceSweepJob) Run(ctx context.Context) {
	online, err := j.uowFactory.Create().PartnerRepository().GetAllOnline(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "loading online partners failed", "error", err)
		return
	}

	cutoff := j.now().Add(-j.staleAfter)
	swept := 0

	for _, aggregate := range online {
		position := aggregate.CurrentLocation()
		if position != nil && position.UpdatedAt.After(cutoff) {
			continue
		}

		if err = j.flipOffline(ctx, aggregate.ID()); err != nil {
			if errors.Is(err, errs.ErrConflict) {
				continue
			}
			j.logger.WarnContext(ctx, "presence sweep update failed",
				"partnerId", aggregate.ID().String(), "error", err)
			continue
		}
		swept++
	}

	if swept > 0 {
		j.logger.InfoContext(ctx, "swept stale partners offline", "count", swept)
	}
}

func (j *PresenceSweepJob) flipOffline(ctx context.Context, partnerID kernel.UUID) error {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.PartnerRepository().Get(ctx, partnerID)
	if err != nil {
		return err
	}
	if !aggregate.IsOnline() {
		return nil
	}

	aggregate.SetOnline(false)
	if err = uow.PartnerRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
