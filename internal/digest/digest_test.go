package digest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"fintrack/internal/analytics"
	"fintrack/internal/services"
)

type reportFunc func(ctx context.Context, month string) (*services.Report, error)

// stubAnalytics implements only Report; the digest uses nothing else.
type stubAnalytics struct {
	services.AnalyticsServicer
	report reportFunc
}

func (s stubAnalytics) Report(ctx context.Context, month string) (*services.Report, error) {
	return s.report(ctx, month)
}

func newDigest(t *testing.T, fn reportFunc, now time.Time) (*Digest, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	return &Digest{
		analytics: stubAnalytics{report: fn},
		log:       zap.New(core).Sugar(),
		now:       func() time.Time { return now },
	}, logs
}

func TestRunOnce(t *testing.T) {
	var gotMonth string
	d, logs := newDigest(t, func(_ context.Context, month string) (*services.Report, error) {
		gotMonth = month
		return &services.Report{
			Month:   month,
			Summary: analytics.MonthlyAggregate{Month: month, Income: 100, Expenses: 40.004, Net: 59.996},
			Budget: analytics.BudgetComparison{Month: month, Rows: []analytics.BudgetRow{
				{CategoryID: "food", Status: analytics.BudgetStatusOver},
			}},
			Insights: []string{"a", "b"},
		}, nil
	}, time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC))

	report, err := d.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "2023-12", gotMonth)
	assert.Equal(t, "2023-12", report.Month)

	entries := logs.FilterMessage("monthly digest").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, 40.0, fields["expenses"])
	assert.Equal(t, int64(1), fields["over_budget"])
	assert.Equal(t, 2, logs.FilterMessage("insight").Len())
}

func TestRunOnce_Error(t *testing.T) {
	d, logs := newDigest(t, func(context.Context, string) (*services.Report, error) {
		return nil, errors.New("store down")
	}, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))

	_, err := d.RunOnce(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "2024-02")
	assert.Equal(t, 1, logs.FilterMessage("digest failed").Len())
}

func TestStart(t *testing.T) {
	d, _ := newDigest(t, nil, time.Now())

	t.Run("empty schedule disables", func(t *testing.T) {
		c, err := d.Start("")
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("invalid schedule", func(t *testing.T) {
		_, err := d.Start("every tuesday")
		require.Error(t, err)
	})

	t.Run("valid schedule", func(t *testing.T) {
		c, err := d.Start("0 9 1 * *")
		require.NoError(t, err)
		require.NotNil(t, c)
		defer c.Stop()
		assert.Len(t, c.Entries(), 1)
	})
}
