package transcript

import "context"

type Stats struct {
	Checked int
	Updated int
	// Empty counts posts the API had no transcript for.
	Empty  int
	Failed int
}

type Backfiller interface {
	// Run fills transcripts for up to limit video posts that have none.
	Run(ctx context.Context, limit int) (Stats, error)
	// Schedule registers Run as a cron job and starts the scheduler.
	Schedule(ctx context.Context) error
	Stop() error
}
