package escalation

import (
	"strconv"
	"time"

	"grievgo/backend/internal/config"
	"grievgo/backend/internal/models"
	"grievgo/backend/internal/storage"
	"grievgo/backend/pkg/logger"
)

// Alerter receives out-of-band escalation alerts (telegram channel).
type Alerter interface {
	EscalationAlert(complaint *models.Complaint)
}

// Sweeper is the backend-owned side of escalation: it periodically scans
// for complaints with no progress inside the response window and escalates
// them automatically. Clients only ever display the result.
type Sweeper struct {
	Storage       storage.Storage
	Alerter       Alerter
	Interval      time.Duration
	ThresholdDays int

	stopCh chan struct{}
}

// NewSweeper creates a sweeper with the configured defaults.
func NewSweeper(s storage.Storage, alerter Alerter) *Sweeper {
	return &Sweeper{
		Storage:       s,
		Alerter:       alerter,
		Interval:      config.EscalationSweepInterval,
		ThresholdDays: config.EscalationThresholdDays,
		stopCh:        make(chan struct{}),
	}
}

// Run starts the sweep loop. Blocks; call in a goroutine.
func (sw *Sweeper) Run() {
	logger.Info().Dur("interval", sw.Interval).Msg("escalation sweeper started")

	ticker := time.NewTicker(sw.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sw.Sweep(time.Now())
		case <-sw.stopCh:
			logger.Info().Msg("escalation sweeper stopped")
			return
		}
	}
}

// Stop terminates the sweep loop.
func (sw *Sweeper) Stop() {
	close(sw.stopCh)
}

// Sweep escalates every overdue complaint once and notifies the assigned
// authority. Exported so operators can trigger it from the admin CLI.
func (sw *Sweeper) Sweep(now time.Time) {
	cutoff := now.AddDate(0, 0, -sw.ThresholdDays)
	overdue, err := sw.Storage.ListOverdueComplaints(cutoff)
	if err != nil {
		logger.Error().Err(err).Msg("overdue scan failed")
		return
	}

	for i := range overdue {
		complaint := &overdue[i]
		updated, err := sw.Storage.ApplyEscalation(complaint.ID, config.AutoEscalationReason, "system")
		if err != nil {
			logger.Error().Err(err).Str("complaint", complaint.ID).Msg("auto-escalation failed")
			continue
		}

		if updated.AssignedAuthorityID != nil {
			_ = sw.Storage.CreateNotification(&models.Notification{
				UserID:      *updated.AssignedAuthorityID,
				ComplaintID: updated.ID,
				Message:     "Complaint escalated to level " + strconv.Itoa(updated.EscalationLevel) + ": " + updated.Title,
			})
		}

		_ = sw.Storage.PublishEvent(models.StatusEvent{
			ComplaintID:     updated.ID,
			Kind:            "escalation",
			Status:          updated.Status,
			Priority:        updated.Priority,
			EscalationLevel: updated.EscalationLevel,
			OccurredAt:      now,
		})

		if sw.Alerter != nil {
			sw.Alerter.EscalationAlert(updated)
		}

		logger.Info().
			Str("complaint", updated.ID).
			Int("level", updated.EscalationLevel).
			Msg("auto-escalated overdue complaint")
	}
}
