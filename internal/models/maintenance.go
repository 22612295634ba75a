// Package models defines the data structures for the portfolio analytics engine.
package models

import (
	"time"
)

// MaintenanceStatus represents the workflow status of a maintenance request.
type MaintenanceStatus string

const (
	MaintenanceStatusSubmitted    MaintenanceStatus = "submitted"
	MaintenanceStatusAcknowledged MaintenanceStatus = "acknowledged"
	MaintenanceStatusInProgress   MaintenanceStatus = "in_progress"
	MaintenanceStatusCompleted    MaintenanceStatus = "completed"
	MaintenanceStatusCancelled    MaintenanceStatus = "cancelled"
)

// ValidMaintenanceStatuses returns all valid maintenance status values.
func ValidMaintenanceStatuses() []MaintenanceStatus {
	return []MaintenanceStatus{
		MaintenanceStatusSubmitted,
		MaintenanceStatusAcknowledged,
		MaintenanceStatusInProgress,
		MaintenanceStatusCompleted,
		MaintenanceStatusCancelled,
	}
}

// IsValid checks if the maintenance status is valid.
func (s MaintenanceStatus) IsValid() bool {
	for _, valid := range ValidMaintenanceStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// IsOpen reports whether the request still needs work: any status other
// than completed or cancelled.
func (s MaintenanceStatus) IsOpen() bool {
	return s != MaintenanceStatusCompleted && s != MaintenanceStatusCancelled
}

// MaintenanceRequest represents a reported maintenance issue. TenantID is
// nil for issues raised by staff rather than a tenant. AssignedAt is nil
// until the request has been acknowledged and assigned.
type MaintenanceRequest struct {
	ID            int64             `json:"id" db:"id"`
	OrgID         int64             `json:"org_id" db:"org_id"`
	PropertyID    int64             `json:"property_id" db:"property_id"`
	TenantID      *int64            `json:"tenant_id,omitempty" db:"tenant_id"`
	Status        MaintenanceStatus `json:"status" db:"status"`
	RequestedDate time.Time         `json:"requested_date" db:"requested_date"`
	AssignedAt    *time.Time        `json:"assigned_at,omitempty" db:"assigned_at"`
}

// ResponseDays returns the days from request to assignment, or false when
// the request has never been assigned.
func (m *MaintenanceRequest) ResponseDays() (int, bool) {
	if m.AssignedAt == nil {
		return 0, false
	}
	days := DaysBetween(m.RequestedDate, *m.AssignedAt)
	if days < 0 {
		days = 0
	}
	return days, true
}
