// Package analytics implements the portfolio risk and health scoring engine.
package analytics

import (
	"math"
	"time"

	"portfolio-analytics-engine/internal/models"
)

// Composite health score weights. The ROI contribution is capped so it can
// never dominate the score.
const (
	healthWeightOccupancy   = 0.30
	healthWeightCollection  = 0.35
	healthWeightMaintenance = 0.15
	healthROIPointsCap      = 20.0

	// Units are approximated as a fixed count per property; real unit
	// inventory is not part of the snapshot.
	unitsPerProperty = 10

	collectionWindowDays = 30
)

// Health recommendation sentences, appended in a fixed order when their
// condition holds.
const (
	recommendationHealthOccupancy   = "Occupancy is below target: prioritize marketing vacant units and review listing pricing."
	recommendationHealthCollection  = "Collection rate is slipping: tighten payment reminders and follow up on overdue balances."
	recommendationHealthMaintenance = "Maintenance response is slow: review vendor assignments to shorten time to acknowledgement."
	recommendationHealthROI         = "Margins are thin: audit operating expenses and revisit rent levels against the market."
	recommendationHealthLatePayers  = "A large share of recent payments arrived late: consider autopay incentives for recurring late payers."
	recommendationHealthOK          = "Portfolio is performing well: maintain current management practices."
)

// ScoreHealth computes the aggregate portfolio health for one organization
// in a single pass over the snapshot. Aggregation is order-independent.
func ScoreHealth(snapshot *models.Snapshot, today time.Time) *models.PortfolioHealth {
	metrics := models.PortfolioMetrics{
		TotalProperties: len(snapshot.Properties),
		TotalUnits:      len(snapshot.Properties) * unitsPerProperty,
	}

	for _, lease := range snapshot.Leases {
		if lease.IsActiveOn(today) {
			metrics.OccupiedUnits++
			metrics.MonthlyIncome += lease.MonthlyRent
		}
	}

	occupancyRate := 0.0
	if metrics.TotalUnits > 0 {
		occupancyRate = float64(metrics.OccupiedUnits) / float64(metrics.TotalUnits) * 100
	}

	// Collection over the trailing 30-day window, across all leases. This
	// deliberately recomputes lateness over a different row set than the
	// per-tenant risk scorer, which uses full lease history.
	window := TrailingWindow(today, collectionWindowDays)
	timeliness := ClassifyPaymentTimeliness(snapshot.ScheduleEntries, window)
	metrics.ScheduledLast30Days = timeliness.TotalRows
	metrics.LatePaymentsLast30Days = timeliness.LateCount

	collectionRate := 100.0
	if timeliness.TotalRows > 0 {
		for _, entry := range snapshot.ScheduleEntries {
			if window(entry.DueDate) && entry.IsPaid && !entry.IsLate() {
				metrics.PaidOnTimeLast30Days++
			}
		}
		collectionRate = float64(metrics.PaidOnTimeLast30Days) / float64(timeliness.TotalRows) * 100
	}

	for _, expense := range snapshot.Expenses {
		if window(expense.ExpenseDate) {
			metrics.MonthlyExpenses += expense.Amount
		}
	}

	roiPercentage := 0.0
	if metrics.MonthlyIncome > 0 {
		roiPercentage = float64(metrics.MonthlyIncome-metrics.MonthlyExpenses) / float64(metrics.MonthlyIncome) * 100
	}

	assignedRequests := 0
	responseDaysTotal := 0
	for _, request := range snapshot.MaintenanceRequests {
		if request.Status.IsOpen() {
			metrics.OpenMaintenanceRequests++
		}
		if days, ok := request.ResponseDays(); ok {
			assignedRequests++
			responseDaysTotal += days
		}
	}
	if assignedRequests > 0 {
		metrics.AvgMaintenanceResponseDays = float64(responseDaysTotal) / float64(assignedRequests)
	}

	responseRate := maintenanceResponseRate(metrics.AvgMaintenanceResponseDays)

	composite := healthWeightOccupancy*occupancyRate +
		healthWeightCollection*collectionRate +
		healthWeightMaintenance*responseRate +
		math.Min(2*roiPercentage, healthROIPointsCap)
	composite = clamp(composite, 0, 100)

	return &models.PortfolioHealth{
		HealthScore:             composite,
		HealthLevel:             healthLevelForScore(math.Round(composite)),
		OccupancyRate:           occupancyRate,
		CollectionRate:          collectionRate,
		MaintenanceResponseRate: responseRate,
		ROIPercentage:           roiPercentage,
		Recommendations:         healthRecommendations(occupancyRate, collectionRate, roiPercentage, metrics),
		Metrics:                 metrics,
	}
}

// maintenanceResponseRate maps average response days onto the step-function
// responsiveness rate.
func maintenanceResponseRate(avgDays float64) float64 {
	switch {
	case avgDays < 2:
		return 95
	case avgDays < 5:
		return 75
	default:
		return 50
	}
}

// healthLevelForScore maps the rounded composite score onto its band.
func healthLevelForScore(score float64) models.HealthLevel {
	switch {
	case score >= 90:
		return models.HealthLevelExcellent
	case score >= 75:
		return models.HealthLevelGood
	case score >= 60:
		return models.HealthLevelFair
	case score >= 40:
		return models.HealthLevelPoor
	default:
		return models.HealthLevelCritical
	}
}

// healthRecommendations tests five independent conditions in a fixed order
// and appends one sentence per condition that holds. None suppresses
// another. When nothing triggers, a single all-clear sentence is returned.
func healthRecommendations(occupancyRate, collectionRate, roiPercentage float64, metrics models.PortfolioMetrics) []string {
	recommendations := make([]string, 0)

	if occupancyRate < 80 {
		recommendations = append(recommendations, recommendationHealthOccupancy)
	}
	if collectionRate < 90 {
		recommendations = append(recommendations, recommendationHealthCollection)
	}
	if metrics.AvgMaintenanceResponseDays > 3 {
		recommendations = append(recommendations, recommendationHealthMaintenance)
	}
	if roiPercentage < 10 {
		recommendations = append(recommendations, recommendationHealthROI)
	}
	if metrics.ScheduledLast30Days > 0 &&
		float64(metrics.LatePaymentsLast30Days) > 0.2*float64(metrics.ScheduledLast30Days) {
		recommendations = append(recommendations, recommendationHealthLatePayers)
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, recommendationHealthOK)
	}

	return recommendations
}
