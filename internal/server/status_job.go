package server

import (
	"github.com/rs/zerolog"

	"github.com/aristath/roboadvisor/internal/modules/history"
)

// StatusJob periodically logs a data-status snapshot. The price table is
// immutable, so this is pure observability; nothing is recomputed or
// mutated.
type StatusJob struct {
	store *history.Store
	log   zerolog.Logger
}

// NewStatusJob creates a new status snapshot job
func NewStatusJob(store *history.Store, log zerolog.Logger) *StatusJob {
	return &StatusJob{
		store: store,
		log:   log.With().Str("job", "status_snapshot").Logger(),
	}
}

// Name returns the job name for scheduler logging
func (j *StatusJob) Name() string {
	return "status_snapshot"
}

// Run logs the current data status
func (j *StatusJob) Run() error {
	table, err := j.store.Table()
	if err != nil {
		j.log.Warn().Msg("Price data not loaded, service degraded")
		return nil
	}

	first, last := table.DateRange()
	j.log.Info().
		Int("assets", table.AssetCount()).
		Int("rows", table.Len()).
		Str("from", first.Format("2006-01-02")).
		Str("to", last.Format("2006-01-02")).
		Msg("Data status snapshot")

	return nil
}
