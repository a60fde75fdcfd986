package jobs

import (
	"context"
	"fmt"

	"github.com/dwkang/goalplanner/internal/advisor"
	"github.com/dwkang/goalplanner/pkg/logger"
)

// RefreshJob re-fetches price history for the configured instrument
// set every evening so metrics are computed over fresh closes.
type RefreshJob struct {
	advisor *advisor.Advisor
	symbols []string
	logger  *logger.Logger
}

// NewRefreshJob creates a new refresh job.
func NewRefreshJob(adv *advisor.Advisor, symbols []string, log *logger.Logger) *RefreshJob {
	return &RefreshJob{
		advisor: adv,
		symbols: symbols,
		logger:  log,
	}
}

// Name returns the job name.
func (j *RefreshJob) Name() string {
	return "price_refresh"
}

// Schedule runs every day at 22:30 UTC, after the US close.
func (j *RefreshJob) Schedule() string {
	return "0 30 22 * * *"
}

// Run refreshes every configured symbol. A single failing symbol does
// not abort the rest; the job fails only when any symbol failed.
func (j *RefreshJob) Run(ctx context.Context) error {
	j.logger.WithField("symbols", j.symbols).Info("Starting scheduled price refresh")

	var failed []string
	for _, symbol := range j.symbols {
		series, err := j.advisor.Refresh(ctx, symbol)
		if err != nil {
			j.logger.WithError(err).WithFields(map[string]interface{}{
				"symbol": symbol,
			}).Error("Failed to refresh prices")
			failed = append(failed, symbol)
			continue
		}
		j.logger.WithFields(map[string]interface{}{
			"symbol": symbol,
			"points": series.Len(),
		}).Info("Prices refreshed")
	}

	if len(failed) > 0 {
		return fmt.Errorf("refresh failed for %v", failed)
	}
	return nil
}
