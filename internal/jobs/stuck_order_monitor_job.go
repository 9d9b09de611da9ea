package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// Monitor defaults: check every minute for orders stuck longer than 30
// minutes.
const (
	DefaultMonitorInterval = time.Minute
	DefaultStuckThreshold  = 30 * time.Minute
)

// StuckOrderMonitorJob periodically reports orders that never progressed
// past Processing within the threshold. The job only observes and logs;
// resolving a stuck order stays a human decision.
type StuckOrderMonitorJob struct {
	handler   queries.GetStuckOrdersQueryHandler
	interval  time.Duration
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStuckOrderMonitorJob creates a monitor that runs every interval and
// flags orders older than the threshold. Non-positive values fall back to
// the defaults.
func NewStuckOrderMonitorJob(
	handler queries.GetStuckOrdersQueryHandler,
	interval time.Duration,
	threshold time.Duration,
	logger *slog.Logger,
) *StuckOrderMonitorJob {
	if interval <= 0 {
		interval = DefaultMonitorInterval
	}
	if threshold <= 0 {
		threshold = DefaultStuckThreshold
	}

	return &StuckOrderMonitorJob{
		handler:   handler,
		interval:  interval,
		threshold: threshold,
		cron:      cron.New(),
		logger:    logger.With("component", "stuck_order_monitor_job"),
	}
}

// Start begins the periodic stuck-order check.
func (j *StuckOrderMonitorJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), j.check)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "stuck order monitor started",
		"interval", j.interval.String(), "threshold", j.threshold.String())
	return nil
}

// Stop stops the monitor.
func (j *StuckOrderMonitorJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "stuck order monitor stopped")
}

func (j *StuckOrderMonitorJob) check() {
	ctx := context.Background()
	cutoff := time.Now().UTC().Add(-j.threshold)

	query, err := queries.NewGetStuckOrdersQuery(cutoff)
	if err != nil {
		j.logger.ErrorContext(ctx, "failed to build stuck orders query", "error", err)
		return
	}

	stuck, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "stuck order check failed", "error", err)
		return
	}

	if len(stuck) == 0 {
		return
	}

	j.logger.WarnContext(ctx, "orders stuck beyond threshold",
		"count", len(stuck), "threshold", j.threshold.String())
	for _, o := range stuck {
		j.logger.WarnContext(ctx, "stuck order",
			"order_id", o.ID.String(),
			"customer_id", o.CustomerID,
			"status", o.Status,
			"order_date", o.OrderDate,
			"age", time.Since(o.OrderDate).Round(time.Second).String())
	}
}
