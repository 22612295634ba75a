package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"portfolio-analytics-engine/internal/models"
	"portfolio-analytics-engine/internal/services/analytics"
)

func TestClassifyPaymentTimeliness_NoRowsIsPerfect(t *testing.T) {
	summary := analytics.ClassifyPaymentTimeliness(nil, nil)

	assert.Equal(t, 0, summary.TotalRows)
	assert.Equal(t, 0, summary.LateCount)
	assert.Equal(t, 100.0, summary.OnTimePct, "No history should count as perfect history")
	assert.Equal(t, 0.0, summary.AvgDaysLate)
}

func TestClassifyPaymentTimeliness_SameDayIsOnTime(t *testing.T) {
	due := day(2026, 3, 1)
	entries := []*models.ScheduleEntry{
		paidEntry(1, due, due, 150000),
	}

	summary := analytics.ClassifyPaymentTimeliness(entries, nil)

	assert.Equal(t, 1, summary.TotalRows)
	assert.Equal(t, 0, summary.LateCount, "Same-day settlement should be on time")
	assert.Equal(t, 100.0, summary.OnTimePct)
}

func TestClassifyPaymentTimeliness_LateStrictlyAfterDueDate(t *testing.T) {
	due := day(2026, 3, 1)
	entries := []*models.ScheduleEntry{
		paidEntry(1, due, due.AddDate(0, 0, 1), 150000),
		paidEntry(1, due.AddDate(0, 1, 0), due.AddDate(0, 1, 0), 150000),
	}

	summary := analytics.ClassifyPaymentTimeliness(entries, nil)

	assert.Equal(t, 2, summary.TotalRows)
	assert.Equal(t, 1, summary.LateCount)
	assert.Equal(t, 50.0, summary.OnTimePct)
}

func TestClassifyPaymentTimeliness_AverageOverSettledRowsOnly(t *testing.T) {
	due := day(2026, 3, 1)
	entries := []*models.ScheduleEntry{
		paidEntry(1, due, due.AddDate(0, 0, 6), 150000),
		paidEntry(1, due.AddDate(0, 1, 0), due.AddDate(0, 1, 2), 150000),
		unpaidEntry(1, due.AddDate(0, 2, 0), 150000),
	}

	summary := analytics.ClassifyPaymentTimeliness(entries, nil)

	// Unpaid rows count toward totals but not the lateness average.
	assert.Equal(t, 3, summary.TotalRows)
	assert.Equal(t, 2, summary.LateCount)
	assert.InDelta(t, 4.0, summary.AvgDaysLate, 0.001)
}

func TestClassifyPaymentTimeliness_WindowPredicateFiltersRows(t *testing.T) {
	today := day(2026, 6, 15)
	entries := []*models.ScheduleEntry{
		paidEntry(1, day(2026, 6, 1), day(2026, 6, 10), 150000),  // inside window, late
		paidEntry(1, day(2026, 4, 1), day(2026, 4, 20), 150000),  // outside window
		unpaidEntry(1, day(2026, 6, 10), 150000),                 // inside window
	}

	window := analytics.TrailingWindow(today, 30)
	summary := analytics.ClassifyPaymentTimeliness(entries, window)

	assert.Equal(t, 2, summary.TotalRows, "Only rows due inside the window should count")
	assert.Equal(t, 1, summary.LateCount)
}

func TestTrailingWindow_Boundaries(t *testing.T) {
	today := day(2026, 6, 30)
	window := analytics.TrailingWindow(today, 30)

	assert.True(t, window(today), "Today should be inside the window")
	assert.True(t, window(today.AddDate(0, 0, -29)), "29 days ago should be inside")
	assert.False(t, window(today.AddDate(0, 0, -30)), "30 days ago should be outside")
	assert.False(t, window(today.AddDate(0, 0, 1)), "Future due dates should be outside")
}

func TestClassifyPaymentHistory_BandBoundaries(t *testing.T) {
	cases := []struct {
		onTimePct float64
		expected  models.PaymentHistoryBand
	}{
		{0, models.PaymentHistoryPoor},
		{49.9, models.PaymentHistoryPoor},
		{50, models.PaymentHistoryFair},
		{69.9, models.PaymentHistoryFair},
		{70, models.PaymentHistoryGood},
		{84.9, models.PaymentHistoryGood},
		{85, models.PaymentHistoryExcellent},
		{100, models.PaymentHistoryExcellent},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, analytics.ClassifyPaymentHistory(tc.onTimePct),
			"on-time %.1f%% should map to %s", tc.onTimePct, tc.expected)
	}
}

func TestTrailingWindow_IgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2026, 6, 30, 23, 59, 0, 0, time.UTC)
	window := analytics.TrailingWindow(today, 30)

	morning := time.Date(2026, 6, 30, 1, 0, 0, 0, time.UTC)
	assert.True(t, window(morning), "Same calendar day should be inside regardless of time")
}
