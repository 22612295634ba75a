// Package models defines the data structures for the portfolio analytics engine.
package models

import (
	"time"
)

// RiskLevel classifies a tenant's payment risk score into an ordinal band.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// HealthLevel classifies a portfolio health score into an ordinal band.
type HealthLevel string

const (
	HealthLevelExcellent HealthLevel = "excellent"
	HealthLevelGood      HealthLevel = "good"
	HealthLevelFair      HealthLevel = "fair"
	HealthLevelPoor      HealthLevel = "poor"
	HealthLevelCritical  HealthLevel = "critical"
)

// RenewalPriority is the urgency bucket for a renewal opportunity, derived
// purely from days until lease expiry.
type RenewalPriority string

const (
	RenewalPriorityImmediate RenewalPriority = "immediate"
	RenewalPriorityHigh      RenewalPriority = "high"
	RenewalPriorityMedium    RenewalPriority = "medium"
)

// PaymentHistoryBand grades a tenant's on-time payment record.
type PaymentHistoryBand string

const (
	PaymentHistoryExcellent PaymentHistoryBand = "excellent"
	PaymentHistoryGood      PaymentHistoryBand = "good"
	PaymentHistoryFair      PaymentHistoryBand = "fair"
	PaymentHistoryPoor      PaymentHistoryBand = "poor"
)

// PaymentRiskScore is the per-tenant output of the payment risk scorer.
// OutstandingBalance is in minor currency units (cents).
type PaymentRiskScore struct {
	TenantID           int64      `json:"tenant_id"`
	TenantName         string     `json:"tenant_name"`
	LeaseID            int64      `json:"lease_id"`
	UnitLabel          string     `json:"unit_label"`
	RiskScore          float64    `json:"risk_score"`
	RiskLevel          RiskLevel  `json:"risk_level"`
	TotalPayments      int        `json:"total_payments"`
	LatePayments       int        `json:"late_payments"`
	OnTimePercentage   float64    `json:"on_time_percentage"`
	AverageDaysLate    float64    `json:"average_days_late"`
	OutstandingBalance int64      `json:"outstanding_balance"`
	LastPaymentDate    *time.Time `json:"last_payment_date,omitempty"`
	NextPaymentDate    *time.Time `json:"next_payment_date,omitempty"`
	Recommendation     string     `json:"recommendation"`
}

// RiskReport is the org-level output of the payment risk scorer. Skipped
// counts active leases excluded because their tenant or unit could not be
// resolved, so silent data loss stays observable.
type RiskReport struct {
	Scores  []*PaymentRiskScore `json:"scores"`
	Skipped int                 `json:"skipped"`
}

// PortfolioMetrics holds the raw counts feeding the portfolio health score.
// Money fields are in minor currency units (cents).
type PortfolioMetrics struct {
	TotalProperties            int     `json:"total_properties"`
	TotalUnits                 int     `json:"total_units"`
	OccupiedUnits              int     `json:"occupied_units"`
	ScheduledLast30Days        int     `json:"scheduled_last_30_days"`
	PaidOnTimeLast30Days       int     `json:"paid_on_time_last_30_days"`
	LatePaymentsLast30Days     int     `json:"late_payments_last_30_days"`
	MonthlyIncome              int64   `json:"monthly_income"`
	MonthlyExpenses            int64   `json:"monthly_expenses"`
	OpenMaintenanceRequests    int     `json:"open_maintenance_requests"`
	AvgMaintenanceResponseDays float64 `json:"avg_maintenance_response_days"`
}

// PortfolioHealth is the output of the portfolio health scorer.
type PortfolioHealth struct {
	HealthScore             float64          `json:"health_score"`
	HealthLevel             HealthLevel      `json:"health_level"`
	OccupancyRate           float64          `json:"occupancy_rate"`
	CollectionRate          float64          `json:"collection_rate"`
	MaintenanceResponseRate float64          `json:"maintenance_response_rate"`
	ROIPercentage           float64          `json:"roi_percentage"`
	Recommendations         []string         `json:"recommendations"`
	Metrics                 PortfolioMetrics `json:"metrics"`
}

// TenantScore is the renewal ranker's sub-assessment of one tenant.
type TenantScore struct {
	PaymentHistory      PaymentHistoryBand `json:"payment_history"`
	LeaseDurationYears  int                `json:"lease_duration_years"`
	MaintenanceRequests int                `json:"maintenance_requests"`
}

// LeaseRenewalOpportunity is one ranked entry in the renewal pipeline.
// Rents are in minor currency units (cents).
type LeaseRenewalOpportunity struct {
	LeaseID            int64           `json:"lease_id"`
	TenantID           int64           `json:"tenant_id"`
	TenantName         string          `json:"tenant_name"`
	PropertyID         int64           `json:"property_id"`
	PropertyName       string          `json:"property_name"`
	UnitLabel          string          `json:"unit_label"`
	CurrentRent        int64           `json:"current_rent"`
	SuggestedRent      int64           `json:"suggested_rent"`
	EndDate            time.Time       `json:"end_date"`
	DaysUntilExpiry    int             `json:"days_until_expiry"`
	Priority           RenewalPriority `json:"priority"`
	RenewalProbability int             `json:"renewal_probability"`
	Recommendation     string          `json:"recommendation"`
	TenantScore        TenantScore     `json:"tenant_score"`
}

// RentSuggestion is the rent advisor's recommendation for a property.
// RecommendedRent is in minor currency units (cents).
type RentSuggestion struct {
	RecommendedRent      int64   `json:"recommended_rent"`
	AdjustmentPercentage float64 `json:"adjustment_percentage"`
}

// Dashboard composes the three scorer outputs for one organization.
type Dashboard struct {
	Health   *PortfolioHealth           `json:"health"`
	Risk     *RiskReport                `json:"risk"`
	Renewals []*LeaseRenewalOpportunity `json:"renewals"`
}
