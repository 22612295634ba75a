// Package analytics_test contains tests for the scoring engine.
package analytics_test

import (
	"time"

	"portfolio-analytics-engine/internal/models"
)

// day builds a UTC date at midnight for fixtures.
func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// paidEntry creates a settled schedule entry paid on the given date.
func paidEntry(leaseID int64, dueDate, paidDate time.Time, amount int64) *models.ScheduleEntry {
	paid := paidDate
	return &models.ScheduleEntry{
		LeaseID:   leaseID,
		DueDate:   dueDate,
		DueAmount: amount,
		IsPaid:    true,
		PaidDate:  &paid,
	}
}

// unpaidEntry creates an open schedule entry.
func unpaidEntry(leaseID int64, dueDate time.Time, amount int64) *models.ScheduleEntry {
	return &models.ScheduleEntry{
		LeaseID:   leaseID,
		DueDate:   dueDate,
		DueAmount: amount,
		IsPaid:    false,
	}
}

// mockLease creates an active lease with sensible defaults.
func mockLease(id, tenantID, propertyID int64, start, end time.Time) *models.Lease {
	return &models.Lease{
		ID:          id,
		OrgID:       1,
		TenantID:    tenantID,
		PropertyID:  propertyID,
		UnitLabel:   "A-101",
		MonthlyRent: 150000, // $1,500.00
		StartDate:   start,
		EndDate:     end,
		Status:      models.LeaseStatusActive,
	}
}

// mockTenant creates a tenant fixture.
func mockTenant(id int64, name string) *models.Tenant {
	return &models.Tenant{
		ID:    id,
		OrgID: 1,
		Name:  name,
		Email: "tenant@example.com",
	}
}

// mockProperty creates a property fixture.
func mockProperty(id int64, name string) *models.Property {
	return &models.Property{
		ID:    id,
		OrgID: 1,
		Name:  name,
	}
}
