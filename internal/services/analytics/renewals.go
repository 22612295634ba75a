// Package analytics implements the portfolio risk and health scoring engine.
package analytics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"portfolio-analytics-engine/internal/models"
	"portfolio-analytics-engine/internal/utils"
)

// Renewal probability bounds and adjustments.
const (
	renewalProbabilityBase = 70
	renewalProbabilityMin  = 20
	renewalProbabilityMax  = 95
)

const (
	recommendationRenewalStrong  = "Strong renewal candidate: offer renewal now and consider a rent increase."
	recommendationRenewalGood    = "Good renewal candidate: offer renewal early with a modest increase."
	recommendationRenewalReview  = "Consider renewal terms carefully: review payment history before extending an offer."
	recommendationRenewalGeneric = "Evaluate renewal on standard terms."
	recommendationRenewalUrgent  = " Lease expires within 30 days: initiate contact immediately."
)

// RenewalOpportunities ranks active leases expiring within horizonDays of
// today. Each candidate gets one rent advisor call; calls run with bounded
// parallelism and results are sorted by end date afterwards, so output
// order is deterministic regardless of completion order. An advisor error
// fails the whole call; only "advisor returned nothing" falls back to the
// lease's current rent.
func (s *Service) RenewalOpportunities(ctx context.Context, orgID int64, today time.Time, horizonDays int) ([]*models.LeaseRenewalOpportunity, error) {
	snapshot, err := s.snapshots.GetOrgSnapshot(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshot: %w", err)
	}

	candidates := make([]*models.Lease, 0)
	for _, lease := range snapshot.Leases {
		if !lease.IsActiveOn(today) {
			continue
		}
		until := models.DaysBetween(today, lease.EndDate)
		if until >= 0 && until <= horizonDays {
			candidates = append(candidates, lease)
		}
	}

	utils.GetLogger().Info("Ranking renewal opportunities",
		zap.Int64("org_id", orgID),
		zap.Int("horizon_days", horizonDays),
		zap.Int("candidates", len(candidates)),
	)

	opportunities := make([]*models.LeaseRenewalOpportunity, len(candidates))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.advisorParallelism)

	for i, lease := range candidates {
		i, lease := i, lease
		group.Go(func() error {
			tenant := snapshot.TenantByID(lease.TenantID)
			property := snapshot.PropertyByID(lease.PropertyID)
			if tenant == nil || property == nil {
				// Unresolvable join, excluded from output.
				return nil
			}

			suggestion, err := s.advisor.SuggestRent(groupCtx, lease.PropertyID, orgID)
			if err != nil {
				return fmt.Errorf("rent advisor failed for property %d: %w", lease.PropertyID, err)
			}

			opportunities[i] = BuildRenewalOpportunity(
				lease,
				tenant,
				property,
				snapshot.EntriesForLease(lease.ID),
				snapshot.MaintenanceCountForTenant(tenant.ID),
				suggestion,
				today,
			)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	ranked := make([]*models.LeaseRenewalOpportunity, 0, len(opportunities))
	for _, opportunity := range opportunities {
		if opportunity != nil {
			ranked = append(ranked, opportunity)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].EndDate.Before(ranked[j].EndDate)
	})

	return ranked, nil
}

// BuildRenewalOpportunity assembles one ranked renewal entry from a
// candidate lease and its pre-fetched context. A nil suggestion means the
// advisor returned nothing; the lease's current rent is used instead.
func BuildRenewalOpportunity(
	lease *models.Lease,
	tenant *models.Tenant,
	property *models.Property,
	entries []*models.ScheduleEntry,
	maintenanceCount int,
	suggestion *models.RentSuggestion,
	today time.Time,
) *models.LeaseRenewalOpportunity {
	daysUntilExpiry := daysUntil(today, lease.EndDate)

	timeliness := ClassifyPaymentTimeliness(entries, nil)
	history := ClassifyPaymentHistory(timeliness.OnTimePct)

	durationYears := models.DaysBetween(lease.StartDate, lease.EndDate) / 365

	probability := renewalProbabilityBase
	switch history {
	case models.PaymentHistoryExcellent:
		probability += 20
	case models.PaymentHistoryGood:
		probability += 10
	case models.PaymentHistoryPoor:
		probability -= 20
	}
	if durationYears >= 2 {
		probability += 10
	}
	if maintenanceCount > 5 {
		probability -= 10
	} else if maintenanceCount == 0 {
		probability += 5
	}
	probability = int(clamp(float64(probability), renewalProbabilityMin, renewalProbabilityMax))

	suggestedRent := lease.MonthlyRent
	if suggestion != nil {
		suggestedRent = suggestion.RecommendedRent
	}

	return &models.LeaseRenewalOpportunity{
		LeaseID:            lease.ID,
		TenantID:           tenant.ID,
		TenantName:         tenant.Name,
		PropertyID:         property.ID,
		PropertyName:       property.Name,
		UnitLabel:          lease.UnitLabel,
		CurrentRent:        lease.MonthlyRent,
		SuggestedRent:      suggestedRent,
		EndDate:            lease.EndDate,
		DaysUntilExpiry:    daysUntilExpiry,
		Priority:           renewalPriority(daysUntilExpiry),
		RenewalProbability: probability,
		Recommendation:     renewalRecommendation(history, probability, daysUntilExpiry),
		TenantScore: models.TenantScore{
			PaymentHistory:      history,
			LeaseDurationYears:  durationYears,
			MaintenanceRequests: maintenanceCount,
		},
	}
}

// daysUntil returns the number of days from today until a deadline,
// rounding partial days up.
func daysUntil(today, deadline time.Time) int {
	hours := deadline.Sub(today).Hours()
	days := int(math.Ceil(hours / 24))
	if days < 0 {
		return 0
	}
	return days
}

// renewalPriority derives the urgency bucket purely from days until expiry.
func renewalPriority(daysUntilExpiry int) models.RenewalPriority {
	switch {
	case daysUntilExpiry <= 30:
		return models.RenewalPriorityImmediate
	case daysUntilExpiry <= 60:
		return models.RenewalPriorityHigh
	default:
		return models.RenewalPriorityMedium
	}
}

// renewalRecommendation composes the recommendation text from payment
// history and renewal probability, appending an urgent clause for leases
// expiring within 30 days.
func renewalRecommendation(history models.PaymentHistoryBand, probability, daysUntilExpiry int) string {
	var text string
	switch {
	case history == models.PaymentHistoryExcellent && probability >= 80:
		text = recommendationRenewalStrong
	case history == models.PaymentHistoryGood:
		text = recommendationRenewalGood
	case history == models.PaymentHistoryFair || history == models.PaymentHistoryPoor:
		text = recommendationRenewalReview
	default:
		text = recommendationRenewalGeneric
	}

	if daysUntilExpiry <= 30 {
		text += recommendationRenewalUrgent
	}

	return text
}
