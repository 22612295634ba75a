// Package models defines the data structures for the portfolio analytics engine.
package models

import (
	"errors"
	"strings"
)

// Common errors
var (
	ErrInvalidLeaseStatus       = errors.New("invalid lease status")
	ErrInvalidMaintenanceStatus = errors.New("invalid maintenance status")
	ErrInvalidLeaseID           = errors.New("lease_id must be a positive integer")
	ErrInvalidDueDate           = errors.New("due_date is required and must parse as a date")
	ErrNegativeAmount           = errors.New("amounts cannot be negative")
	ErrPaidWithoutDate          = errors.New("paid rows must carry a paid_date")
	ErrSnapshotNotFound         = errors.New("no records found for organization")
)

// NormalizeLeaseStatus converts various lease status spellings to the
// standard values.
func NormalizeLeaseStatus(status string) LeaseStatus {
	normalized := strings.ToLower(strings.TrimSpace(status))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")

	statusMap := map[string]LeaseStatus{
		"active":     LeaseStatusActive,
		"current":    LeaseStatusActive,
		"signed":     LeaseStatusActive,
		"pending":    LeaseStatusPending,
		"draft":      LeaseStatusPending,
		"upcoming":   LeaseStatusPending,
		"ended":      LeaseStatusEnded,
		"expired":    LeaseStatusEnded,
		"complete":   LeaseStatusEnded,
		"completed":  LeaseStatusEnded,
		"terminated": LeaseStatusTerminated,
		"cancelled":  LeaseStatusTerminated,
		"canceled":   LeaseStatusTerminated,
		"evicted":    LeaseStatusTerminated,
	}

	if mapped, ok := statusMap[normalized]; ok {
		return mapped
	}

	// Return as-is if no mapping found (will fail validation)
	return LeaseStatus(normalized)
}

// NormalizeMaintenanceStatus converts various maintenance status spellings
// to the standard values.
func NormalizeMaintenanceStatus(status string) MaintenanceStatus {
	normalized := strings.ToLower(strings.TrimSpace(status))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	normalized = strings.ReplaceAll(normalized, "-", "_")

	statusMap := map[string]MaintenanceStatus{
		"submitted":    MaintenanceStatusSubmitted,
		"new":          MaintenanceStatusSubmitted,
		"open":         MaintenanceStatusSubmitted,
		"reported":     MaintenanceStatusSubmitted,
		"acknowledged": MaintenanceStatusAcknowledged,
		"assigned":     MaintenanceStatusAcknowledged,
		"accepted":     MaintenanceStatusAcknowledged,
		"in_progress":  MaintenanceStatusInProgress,
		"inprogress":   MaintenanceStatusInProgress,
		"working":      MaintenanceStatusInProgress,
		"started":      MaintenanceStatusInProgress,
		"completed":    MaintenanceStatusCompleted,
		"complete":     MaintenanceStatusCompleted,
		"done":         MaintenanceStatusCompleted,
		"resolved":     MaintenanceStatusCompleted,
		"closed":       MaintenanceStatusCompleted,
		"cancelled":    MaintenanceStatusCancelled,
		"canceled":     MaintenanceStatusCancelled,
		"rejected":     MaintenanceStatusCancelled,
	}

	if mapped, ok := statusMap[normalized]; ok {
		return mapped
	}

	return MaintenanceStatus(normalized)
}

// ValidateScheduleEntryCreate validates a schedule row before import.
func ValidateScheduleEntryCreate(e *ScheduleEntryCreate) error {
	if e.LeaseID <= 0 {
		return ErrInvalidLeaseID
	}

	if e.DueDate.IsZero() {
		return ErrInvalidDueDate
	}

	if e.DueAmount < 0 {
		return ErrNegativeAmount
	}

	if e.PaidAmount != nil && *e.PaidAmount < 0 {
		return ErrNegativeAmount
	}

	if e.IsPaid && e.PaidDate == nil {
		return ErrPaidWithoutDate
	}

	return nil
}
