// Package models defines the data structures for the portfolio analytics engine.
package models

import (
	"time"
)

// LeaseStatus represents the lifecycle status of a lease.
type LeaseStatus string

const (
	LeaseStatusActive     LeaseStatus = "active"
	LeaseStatusPending    LeaseStatus = "pending"
	LeaseStatusEnded      LeaseStatus = "ended"
	LeaseStatusTerminated LeaseStatus = "terminated"
)

// ValidLeaseStatuses returns all valid lease status values.
func ValidLeaseStatuses() []LeaseStatus {
	return []LeaseStatus{
		LeaseStatusActive,
		LeaseStatusPending,
		LeaseStatusEnded,
		LeaseStatusTerminated,
	}
}

// IsValid checks if the lease status is valid.
func (s LeaseStatus) IsValid() bool {
	for _, valid := range ValidLeaseStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Lease represents a rental agreement between a tenant and a unit.
// MonthlyRent is stored in minor currency units (cents).
type Lease struct {
	ID          int64       `json:"id" db:"id"`
	OrgID       int64       `json:"org_id" db:"org_id"`
	TenantID    int64       `json:"tenant_id" db:"tenant_id"`
	PropertyID  int64       `json:"property_id" db:"property_id"`
	UnitLabel   string      `json:"unit_label" db:"unit_label"`
	MonthlyRent int64       `json:"monthly_rent" db:"monthly_rent"`
	StartDate   time.Time   `json:"start_date" db:"start_date"`
	EndDate     time.Time   `json:"end_date" db:"end_date"`
	Status      LeaseStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// IsActiveOn reports whether the lease counts as active for scoring:
// status is active and today falls inside [start, end].
func (l *Lease) IsActiveOn(today time.Time) bool {
	if l.Status != LeaseStatusActive {
		return false
	}
	day := DateOnly(today)
	return !day.Before(DateOnly(l.StartDate)) && !day.After(DateOnly(l.EndDate))
}

// DateOnly truncates a timestamp to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole number of calendar days from a to b.
// Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
