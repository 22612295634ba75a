package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"portfolio-analytics-engine/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLease_IsActiveOn(t *testing.T) {
	lease := &models.Lease{
		Status:    models.LeaseStatusActive,
		StartDate: date(2026, 1, 1),
		EndDate:   date(2026, 12, 31),
	}

	assert.True(t, lease.IsActiveOn(date(2026, 6, 15)))
	assert.True(t, lease.IsActiveOn(date(2026, 1, 1)), "Start date is inclusive")
	assert.True(t, lease.IsActiveOn(date(2026, 12, 31)), "End date is inclusive")
	assert.False(t, lease.IsActiveOn(date(2025, 12, 31)))
	assert.False(t, lease.IsActiveOn(date(2027, 1, 1)))
}

func TestLease_IsActiveOn_StatusGate(t *testing.T) {
	lease := &models.Lease{
		Status:    models.LeaseStatusPending,
		StartDate: date(2026, 1, 1),
		EndDate:   date(2026, 12, 31),
	}

	assert.False(t, lease.IsActiveOn(date(2026, 6, 15)), "Only active status counts regardless of dates")

	lease.Status = models.LeaseStatusTerminated
	assert.False(t, lease.IsActiveOn(date(2026, 6, 15)))
}

func TestLease_IsActiveOn_IgnoresTimeOfDay(t *testing.T) {
	lease := &models.Lease{
		Status:    models.LeaseStatusActive,
		StartDate: date(2026, 1, 1),
		EndDate:   date(2026, 12, 31),
	}

	lateEvening := time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC)
	assert.True(t, lease.IsActiveOn(lateEvening))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, models.DaysBetween(date(2026, 6, 15), date(2026, 6, 15)))
	assert.Equal(t, 1, models.DaysBetween(date(2026, 6, 15), date(2026, 6, 16)))
	assert.Equal(t, -1, models.DaysBetween(date(2026, 6, 16), date(2026, 6, 15)))
	assert.Equal(t, 31, models.DaysBetween(date(2026, 1, 1), date(2026, 2, 1)))

	// Time of day must not shift the calendar distance.
	a := time.Date(2026, 6, 15, 23, 0, 0, 0, time.UTC)
	b := time.Date(2026, 6, 16, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, models.DaysBetween(a, b))
}

func TestScheduleEntry_DaysLate(t *testing.T) {
	due := date(2026, 6, 1)
	paid := date(2026, 6, 4)

	entry := &models.ScheduleEntry{DueDate: due, IsPaid: true, PaidDate: &paid}
	assert.Equal(t, 3, entry.DaysLate())

	early := date(2026, 5, 28)
	entry = &models.ScheduleEntry{DueDate: due, IsPaid: true, PaidDate: &early}
	assert.Equal(t, 0, entry.DaysLate(), "Early settlement is never negative")

	entry = &models.ScheduleEntry{DueDate: due, IsPaid: false}
	assert.Equal(t, 0, entry.DaysLate(), "Unpaid entries have no lateness")
}

func TestScheduleEntry_IsLate(t *testing.T) {
	due := date(2026, 6, 1)
	sameDay := due
	nextDay := date(2026, 6, 2)

	assert.False(t, (&models.ScheduleEntry{DueDate: due, IsPaid: true, PaidDate: &sameDay}).IsLate(),
		"Same-day settlement is on time")
	assert.True(t, (&models.ScheduleEntry{DueDate: due, IsPaid: true, PaidDate: &nextDay}).IsLate())
	assert.False(t, (&models.ScheduleEntry{DueDate: due, IsPaid: false}).IsLate(),
		"Unpaid entries are not late")
}

func TestScheduleEntry_OutstandingAmount(t *testing.T) {
	entry := &models.ScheduleEntry{DueAmount: 150000, IsPaid: true}
	assert.Equal(t, int64(0), entry.OutstandingAmount(), "Settled entries owe nothing")

	entry = &models.ScheduleEntry{DueAmount: 150000, IsPaid: false}
	assert.Equal(t, int64(150000), entry.OutstandingAmount())

	partial := int64(50000)
	entry = &models.ScheduleEntry{DueAmount: 150000, IsPaid: false, PaidAmount: &partial}
	assert.Equal(t, int64(100000), entry.OutstandingAmount())
}

func TestMaintenanceStatus_IsOpen(t *testing.T) {
	assert.True(t, models.MaintenanceStatusSubmitted.IsOpen())
	assert.True(t, models.MaintenanceStatusAcknowledged.IsOpen())
	assert.True(t, models.MaintenanceStatusInProgress.IsOpen())
	assert.False(t, models.MaintenanceStatusCompleted.IsOpen())
	assert.False(t, models.MaintenanceStatusCancelled.IsOpen())
}

func TestMaintenanceRequest_ResponseDays(t *testing.T) {
	requested := date(2026, 6, 1)
	assigned := date(2026, 6, 4)

	request := &models.MaintenanceRequest{RequestedDate: requested, AssignedAt: &assigned}
	days, ok := request.ResponseDays()
	assert.True(t, ok)
	assert.Equal(t, 3, days)

	request = &models.MaintenanceRequest{RequestedDate: requested}
	_, ok = request.ResponseDays()
	assert.False(t, ok, "Never-assigned requests have no response time")
}

func TestNormalizeLeaseStatus(t *testing.T) {
	assert.Equal(t, models.LeaseStatusActive, models.NormalizeLeaseStatus("Active"))
	assert.Equal(t, models.LeaseStatusActive, models.NormalizeLeaseStatus("current"))
	assert.Equal(t, models.LeaseStatusEnded, models.NormalizeLeaseStatus("EXPIRED"))
	assert.Equal(t, models.LeaseStatusTerminated, models.NormalizeLeaseStatus("canceled"))
	assert.Equal(t, models.LeaseStatusPending, models.NormalizeLeaseStatus(" draft "))

	unknown := models.NormalizeLeaseStatus("gibberish")
	assert.False(t, unknown.IsValid())
}

func TestNormalizeMaintenanceStatus(t *testing.T) {
	assert.Equal(t, models.MaintenanceStatusSubmitted, models.NormalizeMaintenanceStatus("Open"))
	assert.Equal(t, models.MaintenanceStatusAcknowledged, models.NormalizeMaintenanceStatus("assigned"))
	assert.Equal(t, models.MaintenanceStatusInProgress, models.NormalizeMaintenanceStatus("In Progress"))
	assert.Equal(t, models.MaintenanceStatusCompleted, models.NormalizeMaintenanceStatus("resolved"))
	assert.Equal(t, models.MaintenanceStatusCancelled, models.NormalizeMaintenanceStatus("rejected"))
}

func TestValidateScheduleEntryCreate(t *testing.T) {
	paidDate := date(2026, 6, 1)
	valid := &models.ScheduleEntryCreate{
		LeaseID:   1,
		DueDate:   date(2026, 6, 1),
		DueAmount: 150000,
		IsPaid:    true,
		PaidDate:  &paidDate,
	}
	assert.NoError(t, models.ValidateScheduleEntryCreate(valid))

	badLease := *valid
	badLease.LeaseID = 0
	assert.ErrorIs(t, models.ValidateScheduleEntryCreate(&badLease), models.ErrInvalidLeaseID)

	noDate := *valid
	noDate.DueDate = time.Time{}
	assert.ErrorIs(t, models.ValidateScheduleEntryCreate(&noDate), models.ErrInvalidDueDate)

	negative := *valid
	negative.DueAmount = -1
	assert.ErrorIs(t, models.ValidateScheduleEntryCreate(&negative), models.ErrNegativeAmount)

	paidNoDate := *valid
	paidNoDate.PaidDate = nil
	assert.ErrorIs(t, models.ValidateScheduleEntryCreate(&paidNoDate), models.ErrPaidWithoutDate)
}

func TestSnapshot_Lookups(t *testing.T) {
	tenantID := int64(10)
	snapshot := &models.Snapshot{
		Tenants:    []*models.Tenant{{ID: 10, Name: "Asha Patel"}},
		Properties: []*models.Property{{ID: 100, Name: "Maple Court"}},
		ScheduleEntries: []*models.ScheduleEntry{
			{ID: 1, LeaseID: 1},
			{ID: 2, LeaseID: 2},
			{ID: 3, LeaseID: 1},
		},
		MaintenanceRequests: []*models.MaintenanceRequest{
			{ID: 1, TenantID: &tenantID},
			{ID: 2, TenantID: nil},
			{ID: 3, TenantID: &tenantID},
		},
	}

	assert.NotNil(t, snapshot.TenantByID(10))
	assert.Nil(t, snapshot.TenantByID(99))
	assert.NotNil(t, snapshot.PropertyByID(100))
	assert.Nil(t, snapshot.PropertyByID(99))
	assert.Len(t, snapshot.EntriesForLease(1), 2)
	assert.Empty(t, snapshot.EntriesForLease(3))
	assert.Equal(t, 2, snapshot.MaintenanceCountForTenant(10))
	assert.Equal(t, 0, snapshot.MaintenanceCountForTenant(11))
}
