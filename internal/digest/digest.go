// Package digest logs a summary of the previous month on a cron schedule.
package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"fintrack/internal/analytics"
	"fintrack/internal/logger"
	"fintrack/internal/services"
)

// runTimeout bounds a single scheduled run.
const runTimeout = time.Minute

// Digest computes the monthly report of the month that just ended.
type Digest struct {
	analytics services.AnalyticsServicer
	log       *zap.SugaredLogger
	now       func() time.Time
}

// New creates a Digest over the analytics service.
func New(a services.AnalyticsServicer) *Digest {
	return &Digest{analytics: a, log: logger.Named("digest"), now: time.Now}
}

// RunOnce builds and logs the report of the month before now.
func (d *Digest) RunOnce(ctx context.Context) (*services.Report, error) {
	month, _ := analytics.PreviousMonth(analytics.CurrentMonth(d.now()))

	report, err := d.analytics.Report(ctx, month)
	if err != nil {
		d.log.Errorw("digest failed", "month", month, "error", err)
		return nil, fmt.Errorf("failed to build report for %s: %w", month, err)
	}

	summary := report.Summary.Rounded()
	budget := report.Budget.Rounded()
	d.log.Infow("monthly digest",
		"month", report.Month,
		"income", summary.Income,
		"expenses", summary.Expenses,
		"net", summary.Net,
		"total_budget", budget.Summary.TotalBudget,
		"over_budget", len(budget.OverBudget()),
	)
	for _, insight := range report.Insights {
		d.log.Infow("insight", "month", report.Month, "text", insight)
	}
	return report, nil
}

// Start schedules RunOnce on schedule (standard five-field cron syntax) and
// starts the scheduler. An empty schedule disables the digest and returns nil.
func (d *Digest) Start(schedule string) (*cron.Cron, error) {
	if schedule == "" {
		d.log.Info("Digest disabled")
		return nil, nil
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		_, _ = d.RunOnce(ctx)
	}); err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", schedule, err)
	}
	c.Start()

	d.log.Infow("Digest scheduled", "schedule", schedule)
	return c, nil
}
