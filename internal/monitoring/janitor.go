package monitoring

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/plumecms/plume-be/internal/services"
)

// Janitor prunes old activity events on a cron schedule so the events table
// does not grow without bound.
type Janitor struct {
	eventSvc  services.EventServiceProvider
	schedule  cron.Schedule
	retention time.Duration
	done      chan bool
}

// NewJanitor creates a janitor from a standard cron expression and a
// retention window in days.
func NewJanitor(eventSvc services.EventServiceProvider, cronExpr string, retentionDays int) (*Janitor, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &Janitor{
		eventSvc:  eventSvc,
		schedule:  schedule,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		done:      make(chan bool),
	}, nil
}

// Run sleeps until the next scheduled run, prunes, and repeats.
func (j *Janitor) Run() {
	log.Info().Msg("Starting background event janitor...")
	for {
		next := j.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-j.done:
			timer.Stop()
			log.Info().Msg("Stopping background event janitor.")
			return
		case <-timer.C:
			j.prune()
		}
	}
}

// Stop halts the janitor.
func (j *Janitor) Stop() {
	j.done <- true
}

func (j *Janitor) prune() {
	cutoff := time.Now().Add(-j.retention)
	removed, err := j.eventSvc.PruneOlderThan(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Janitor: failed to prune old events")
		return
	}
	if removed > 0 {
		log.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("Janitor: pruned old events")
	}
}
