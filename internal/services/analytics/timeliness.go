// Package analytics implements the portfolio risk and health scoring engine.
package analytics

import (
	"time"

	"portfolio-analytics-engine/internal/models"
)

// TimelinessSummary aggregates how promptly a set of schedule entries was
// settled.
type TimelinessSummary struct {
	TotalRows   int
	LateCount   int
	OnTimePct   float64
	AvgDaysLate float64
}

// ClassifyPaymentTimeliness summarizes payment punctuality over schedule
// entries. The optional within predicate restricts the computation to
// entries whose due date it accepts; a nil predicate means full history.
//
// Zero matching rows yields a 100% on-time rate: no history is treated as
// perfect history. An entry is late only when it settled strictly after its
// due date; same-day settlement is on time.
func ClassifyPaymentTimeliness(entries []*models.ScheduleEntry, within func(time.Time) bool) TimelinessSummary {
	summary := TimelinessSummary{}

	settledRows := 0
	daysLateTotal := 0

	for _, entry := range entries {
		if within != nil && !within(entry.DueDate) {
			continue
		}

		summary.TotalRows++

		if entry.IsLate() {
			summary.LateCount++
		}

		if entry.IsPaid && entry.PaidDate != nil {
			settledRows++
			daysLateTotal += entry.DaysLate()
		}
	}

	if summary.TotalRows == 0 {
		summary.OnTimePct = 100
	} else {
		summary.OnTimePct = float64(summary.TotalRows-summary.LateCount) / float64(summary.TotalRows) * 100
	}

	if settledRows > 0 {
		summary.AvgDaysLate = float64(daysLateTotal) / float64(settledRows)
	}

	return summary
}

// TrailingWindow returns a due-date predicate accepting dates within the
// last windowDays days ending at today, inclusive of today.
func TrailingWindow(today time.Time, windowDays int) func(time.Time) bool {
	return func(d time.Time) bool {
		diff := models.DaysBetween(d, today)
		return diff >= 0 && diff < windowDays
	}
}

// ClassifyPaymentHistory buckets an on-time percentage into the four-band
// payment history grade shared by the risk scorer and the renewal ranker.
func ClassifyPaymentHistory(onTimePct float64) models.PaymentHistoryBand {
	switch {
	case onTimePct < 50:
		return models.PaymentHistoryPoor
	case onTimePct < 70:
		return models.PaymentHistoryFair
	case onTimePct < 85:
		return models.PaymentHistoryGood
	default:
		return models.PaymentHistoryExcellent
	}
}
