// Package models defines the data structures for the portfolio analytics engine.
package models

import (
	"time"
)

// ScheduleEntry represents one expected payment obligation for a lease,
// independent of whether or when it was actually paid. Amounts are in
// minor currency units (cents). PaidAmount is cumulative.
type ScheduleEntry struct {
	ID         int64      `json:"id" db:"id"`
	LeaseID    int64      `json:"lease_id" db:"lease_id"`
	DueDate    time.Time  `json:"due_date" db:"due_date"`
	DueAmount  int64      `json:"due_amount" db:"due_amount"`
	IsPaid     bool       `json:"is_paid" db:"is_paid"`
	PaidDate   *time.Time `json:"paid_date,omitempty" db:"paid_date"`
	PaidAmount *int64     `json:"paid_amount,omitempty" db:"paid_amount"`
}

// DaysLate returns how many days after the due date the entry settled,
// never negative. Zero for unpaid entries and entries without a paid date.
func (e *ScheduleEntry) DaysLate() int {
	if !e.IsPaid || e.PaidDate == nil {
		return 0
	}
	days := DaysBetween(e.DueDate, *e.PaidDate)
	if days < 0 {
		return 0
	}
	return days
}

// IsLate reports whether a paid entry settled strictly after its due date.
// Same-day settlement is on time.
func (e *ScheduleEntry) IsLate() bool {
	return e.IsPaid && e.PaidDate != nil && DaysBetween(e.DueDate, *e.PaidDate) > 0
}

// OutstandingAmount returns the unpaid remainder of the entry in cents.
// Zero for settled entries.
func (e *ScheduleEntry) OutstandingAmount() int64 {
	if e.IsPaid {
		return 0
	}
	paid := int64(0)
	if e.PaidAmount != nil {
		paid = *e.PaidAmount
	}
	return e.DueAmount - paid
}

// PaymentStatus represents the processing status of a rent payment.
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// RentPayment is a historical payment fact for a lease. It is never matched
// against schedule entries by identity, only by lease and date range.
type RentPayment struct {
	ID          int64         `json:"id" db:"id"`
	LeaseID     int64         `json:"lease_id" db:"lease_id"`
	PaymentDate time.Time     `json:"payment_date" db:"payment_date"`
	Amount      int64         `json:"amount" db:"amount"`
	Status      PaymentStatus `json:"status" db:"status"`
}
