// Package models defines the data structures for the portfolio analytics engine.
package models

import (
	"time"
)

// Property represents a building or complex owned by an organization.
type Property struct {
	ID        int64     `json:"id" db:"id"`
	OrgID     int64     `json:"org_id" db:"org_id"`
	Name      string    `json:"name" db:"name"`
	Address   string    `json:"address,omitempty" db:"address"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Tenant represents a renter associated with an organization.
type Tenant struct {
	ID        int64     `json:"id" db:"id"`
	OrgID     int64     `json:"org_id" db:"org_id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone,omitempty" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Expense represents an operational cost incurred by an organization.
// Amount is in minor currency units (cents).
type Expense struct {
	ID          int64     `json:"id" db:"id"`
	OrgID       int64     `json:"org_id" db:"org_id"`
	Amount      int64     `json:"amount" db:"amount"`
	Category    string    `json:"category,omitempty" db:"category"`
	ExpenseDate time.Time `json:"expense_date" db:"expense_date"`
}

// Snapshot is the full set of records for one organization at one point in
// time, as returned by the snapshot provider. The engine never mutates it.
type Snapshot struct {
	OrgID               int64                 `json:"org_id"`
	Leases              []*Lease              `json:"leases"`
	ScheduleEntries     []*ScheduleEntry      `json:"schedule_entries"`
	RentPayments        []*RentPayment        `json:"rent_payments"`
	MaintenanceRequests []*MaintenanceRequest `json:"maintenance_requests"`
	Expenses            []*Expense            `json:"expenses"`
	Properties          []*Property           `json:"properties"`
	Tenants             []*Tenant             `json:"tenants"`
}

// TenantByID returns the tenant with the given ID, or nil when absent.
func (s *Snapshot) TenantByID(id int64) *Tenant {
	for _, t := range s.Tenants {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// PropertyByID returns the property with the given ID, or nil when absent.
func (s *Snapshot) PropertyByID(id int64) *Property {
	for _, p := range s.Properties {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// EntriesForLease returns the schedule entries belonging to one lease,
// in snapshot order.
func (s *Snapshot) EntriesForLease(leaseID int64) []*ScheduleEntry {
	entries := make([]*ScheduleEntry, 0)
	for _, e := range s.ScheduleEntries {
		if e.LeaseID == leaseID {
			entries = append(entries, e)
		}
	}
	return entries
}

// MaintenanceCountForTenant returns how many maintenance requests a tenant
// has raised across the organization.
func (s *Snapshot) MaintenanceCountForTenant(tenantID int64) int {
	count := 0
	for _, m := range s.MaintenanceRequests {
		if m.TenantID != nil && *m.TenantID == tenantID {
			count++
		}
	}
	return count
}
