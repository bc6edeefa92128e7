// Package jobs holds the scheduled background work: re-broadcasting unclaimed
// offers and sweeping stale partner presence. Jobs run on robfig/cron
// schedules and are coordinated through JobManager.
package jobs

import (
	"fmt"
)

// JobManager starts and stops all scheduled jobs together.
type JobManager struct {
	offerRebroadcastJob *OfferRebroadcastJob
	presenceSweepJob    *PresenceSweepJob
}

// NewJobManager creates a manager over the given jobs.
func NewJobManager(
	offerRebroadcastJob *OfferRebroadcastJob,
	presenceSweepJob *PresenceSweepJob,
) *JobManager {
	return &JobManager{
		offerRebroadcastJob: offerRebroadcastJob,
		presenceSweepJob:    presenceSweepJob,
	}
}

// StartAll starts every job; on failure the already-started ones are stopped.
func (jm *JobManager) StartAll() error {
	if err := jm.offerRebroadcastJob.Start(); err != nil {
		return fmt.Errorf("failed to start offer rebroadcast job: %w", err)
	}

	if err := jm.presenceSweepJob.Start(); err != nil {
		jm.offerRebroadcastJob.Stop()
		return fmt.Errorf("failed to start presence sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs.
func (jm *JobManager) StopAll() {
	jm.presenceSweepJob.Stop()
	jm.offerRebroadcastJob.Stop()
}
