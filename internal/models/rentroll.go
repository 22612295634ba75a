// Package models defines the data structures for the portfolio analytics engine.
package models

import (
	"time"
)

// ScheduleEntryCreate represents the data needed to import one schedule row.
type ScheduleEntryCreate struct {
	LeaseID    int64      `json:"lease_id" validate:"required"`
	DueDate    time.Time  `json:"due_date" validate:"required"`
	DueAmount  int64      `json:"due_amount" validate:"gte=0"`
	IsPaid     bool       `json:"is_paid"`
	PaidDate   *time.Time `json:"paid_date,omitempty"`
	PaidAmount *int64     `json:"paid_amount,omitempty"`
	BatchID    string     `json:"batch_id,omitempty"`
}

// CSVScheduleRow represents a row from an uploaded rent-roll CSV file.
// Amounts are decimal strings in major units and converted to cents.
type CSVScheduleRow struct {
	LeaseID    string `csv:"lease_id"`
	DueDate    string `csv:"due_date"`
	DueAmount  string `csv:"due_amount"`
	IsPaid     string `csv:"is_paid"`
	PaidDate   string `csv:"paid_date"`
	PaidAmount string `csv:"paid_amount"`
}

// BulkInsertResult contains the results of a bulk insert operation.
type BulkInsertResult struct {
	InsertedCount int      `json:"inserted_count"`
	FailedCount   int      `json:"failed_count"`
	Errors        []string `json:"errors,omitempty"`
}
