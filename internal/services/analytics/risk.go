// Package analytics implements the portfolio risk and health scoring engine.
package analytics

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"portfolio-analytics-engine/internal/models"
	"portfolio-analytics-engine/internal/utils"
)

// Risk recommendation strings are fixed per band, not individually tuned.
const (
	recommendationRiskCritical = "Immediate action required: escalate to collections and review legal options with the property owner."
	recommendationRiskHigh     = "Send an urgent payment reminder and schedule a meeting with the tenant to agree a payment plan."
	recommendationRiskMedium   = "Send a payment reminder 5 days before each due date and monitor upcoming payments closely."
	recommendationRiskLow      = "Continue standard payment reminders."
)

// ScoreTenant computes one tenant's payment risk from a lease and its full
// schedule history. The score is built additively from three independent
// capped buckets and clamped to [0,100].
func ScoreTenant(lease *models.Lease, tenant *models.Tenant, entries []*models.ScheduleEntry, today time.Time) *models.PaymentRiskScore {
	timeliness := ClassifyPaymentTimeliness(entries, nil)

	var outstanding int64
	for _, entry := range entries {
		outstanding += entry.OutstandingAmount()
	}

	score := 0.0

	// On-time-rate bucket
	switch {
	case timeliness.OnTimePct < 50:
		score += 40
	case timeliness.OnTimePct < 70:
		score += 30
	case timeliness.OnTimePct < 85:
		score += 15
	}

	// Lateness-severity bucket
	switch {
	case timeliness.AvgDaysLate > 10:
		score += 30
	case timeliness.AvgDaysLate > 5:
		score += 20
	case timeliness.AvgDaysLate > 2:
		score += 10
	}

	// Balance-pressure bucket
	switch {
	case outstanding > 2*lease.MonthlyRent:
		score += 30
	case outstanding > lease.MonthlyRent:
		score += 15
	}

	score = clamp(score, 0, 100)
	level := riskLevelForScore(score)

	return &models.PaymentRiskScore{
		TenantID:           tenant.ID,
		TenantName:         tenant.Name,
		LeaseID:            lease.ID,
		UnitLabel:          lease.UnitLabel,
		RiskScore:          score,
		RiskLevel:          level,
		TotalPayments:      timeliness.TotalRows,
		LatePayments:       timeliness.LateCount,
		OnTimePercentage:   timeliness.OnTimePct,
		AverageDaysLate:    timeliness.AvgDaysLate,
		OutstandingBalance: outstanding,
		LastPaymentDate:    lastPaymentDate(entries),
		NextPaymentDate:    nextPaymentDate(entries, today),
		Recommendation:     riskRecommendation(level),
	}
}

// ScoreAllTenants applies the risk scorer to every active lease in the
// snapshot. Leases whose tenant cannot be resolved are skipped, not
// errored, and counted in the report. Output is sorted descending by risk
// score; ties retain discovery order.
func ScoreAllTenants(snapshot *models.Snapshot, today time.Time) *models.RiskReport {
	report := &models.RiskReport{
		Scores: make([]*models.PaymentRiskScore, 0),
	}

	for _, lease := range snapshot.Leases {
		if !lease.IsActiveOn(today) {
			continue
		}

		tenant := snapshot.TenantByID(lease.TenantID)
		if tenant == nil || lease.UnitLabel == "" {
			report.Skipped++
			utils.GetLogger().Debug("Skipping lease with unresolved tenant or unit",
				zap.Int64("lease_id", lease.ID),
				zap.Int64("tenant_id", lease.TenantID),
			)
			continue
		}

		entries := snapshot.EntriesForLease(lease.ID)
		report.Scores = append(report.Scores, ScoreTenant(lease, tenant, entries, today))
	}

	sort.SliceStable(report.Scores, func(i, j int) bool {
		return report.Scores[i].RiskScore > report.Scores[j].RiskScore
	})

	return report
}

// riskLevelForScore maps a clamped risk score onto its ordinal band.
func riskLevelForScore(score float64) models.RiskLevel {
	switch {
	case score >= 70:
		return models.RiskLevelCritical
	case score >= 45:
		return models.RiskLevelHigh
	case score >= 20:
		return models.RiskLevelMedium
	default:
		return models.RiskLevelLow
	}
}

// riskRecommendation returns the fixed recommendation string for a band.
func riskRecommendation(level models.RiskLevel) string {
	switch level {
	case models.RiskLevelCritical:
		return recommendationRiskCritical
	case models.RiskLevelHigh:
		return recommendationRiskHigh
	case models.RiskLevelMedium:
		return recommendationRiskMedium
	default:
		return recommendationRiskLow
	}
}

// lastPaymentDate returns the most recent settlement date across paid
// entries, or nil when nothing has settled.
func lastPaymentDate(entries []*models.ScheduleEntry) *time.Time {
	var last *time.Time
	for _, entry := range entries {
		if !entry.IsPaid || entry.PaidDate == nil {
			continue
		}
		if last == nil || entry.PaidDate.After(*last) {
			last = entry.PaidDate
		}
	}
	return last
}

// nextPaymentDate returns the earliest unpaid due date on or after today,
// or nil when no future obligation exists.
func nextPaymentDate(entries []*models.ScheduleEntry, today time.Time) *time.Time {
	var next *time.Time
	for _, entry := range entries {
		if entry.IsPaid {
			continue
		}
		if models.DaysBetween(today, entry.DueDate) < 0 {
			continue
		}
		if next == nil || entry.DueDate.Before(*next) {
			due := entry.DueDate
			next = &due
		}
	}
	return next
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
