package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-analytics-engine/internal/models"
	"portfolio-analytics-engine/internal/utils"
)

func TestCSVParser_ValidFile(t *testing.T) {
	csvContent := `lease_id,due_date,due_amount,is_paid,paid_date,paid_amount
1,2026-06-01,1500.00,true,2026-06-01,1500.00
2,2026-06-01,1250.50,false,,`

	parser := utils.NewCSVParser()
	entries, errors := parser.ParseScheduleEntries(csvContent, "batch-001")

	require.Empty(t, errors, "Expected no parse errors")
	require.Len(t, entries, 2, "Expected 2 entries")

	assert.Equal(t, int64(1), entries[0].LeaseID)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), entries[0].DueDate)
	assert.Equal(t, int64(150000), entries[0].DueAmount, "Amounts should be stored in cents")
	assert.True(t, entries[0].IsPaid)
	require.NotNil(t, entries[0].PaidDate)
	assert.Equal(t, "batch-001", entries[0].BatchID)

	assert.Equal(t, int64(125050), entries[1].DueAmount)
	assert.False(t, entries[1].IsPaid)
	assert.Nil(t, entries[1].PaidDate)
	assert.Nil(t, entries[1].PaidAmount)
}

func TestCSVParser_ColumnAliases(t *testing.T) {
	csvContent := `lease,schedule_date,rent_due,settled,date_paid,rent_received
1,2026-06-01,1500,paid,2026-06-03,1500`

	parser := utils.NewCSVParser()
	entries, errors := parser.ParseScheduleEntries(csvContent, "batch-123")

	require.Empty(t, errors, "Expected no parse errors")
	require.Len(t, entries, 1)

	assert.Equal(t, int64(1), entries[0].LeaseID)
	assert.True(t, entries[0].IsPaid)
	require.NotNil(t, entries[0].PaidDate)
	assert.Equal(t, time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC), *entries[0].PaidDate)
}

func TestCSVParser_MissingRequiredColumns(t *testing.T) {
	// Missing is_paid column
	csvContent := `lease_id,due_date,due_amount
1,2026-06-01,1500`

	parser := utils.NewCSVParser()
	entries, errors := parser.ParseScheduleEntries(csvContent, "batch-001")

	assert.Empty(t, entries, "Expected no valid entries")
	require.NotEmpty(t, errors, "Expected errors for missing columns")
	assert.ErrorIs(t, errors[0], utils.ErrMissingColumns)
}

func TestCSVParser_EmptyFile(t *testing.T) {
	parser := utils.NewCSVParser()
	entries, errors := parser.ParseScheduleEntries("", "batch-001")

	assert.Empty(t, entries)
	require.NotEmpty(t, errors)
	assert.ErrorIs(t, errors[0], utils.ErrEmptyCSV)
}

func TestCSVParser_CurrencySymbolsAndCommas(t *testing.T) {
	csvContent := `lease_id,due_date,due_amount,is_paid
1,2026-06-01,"$1,500.00",no`

	parser := utils.NewCSVParser()
	entries, errors := parser.ParseScheduleEntries(csvContent, "batch-001")

	require.Empty(t, errors)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(150000), entries[0].DueAmount)
}

func TestCSVParser_AlternateDateFormats(t *testing.T) {
	csvContent := `lease_id,due_date,due_amount,is_paid
1,2026/06/01,1500,false
2,06/15/2026,1500,false`

	parser := utils.NewCSVParser()
	entries, errors := parser.ParseScheduleEntries(csvContent, "batch-001")

	require.Empty(t, errors)
	require.Len(t, entries, 2)
	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), entries[0].DueDate)
	assert.Equal(t, time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC), entries[1].DueDate)
}

func TestCSVParser_BadRowsDoNotAbortGoodRows(t *testing.T) {
	csvContent := `lease_id,due_date,due_amount,is_paid
1,2026-06-01,1500,false
not-a-number,2026-06-01,1500,false
2,2026-07-01,1500,maybe
3,2026-08-01,1500,true`

	parser := utils.NewCSVParser()
	entries, errors := parser.ParseScheduleEntries(csvContent, "batch-001")

	// The last row is paid without a paid_date, caught by validation.
	assert.Len(t, errors, 3)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].LeaseID)
}

func TestCSVParser_PaidRowRequiresPaidDate(t *testing.T) {
	csvContent := `lease_id,due_date,due_amount,is_paid
1,2026-06-01,1500,true`

	parser := utils.NewCSVParser()
	entries, errors := parser.ParseScheduleEntries(csvContent, "batch-001")

	assert.Empty(t, entries)
	require.NotEmpty(t, errors)
	assert.ErrorIs(t, errors[len(errors)-1], models.ErrPaidWithoutDate)
}

func TestCSVParser_NegativeAmountRejected(t *testing.T) {
	csvContent := `lease_id,due_date,due_amount,is_paid
1,2026-06-01,-1500,false`

	parser := utils.NewCSVParser()
	entries, errors := parser.ParseScheduleEntries(csvContent, "batch-001")

	assert.Empty(t, entries)
	assert.NotEmpty(t, errors)
}

func TestValidateCSVStructure(t *testing.T) {
	valid := `lease_id,due_date,due_amount,is_paid
1,2026-06-01,1500,false`

	result, err := utils.ValidateCSVStructure(valid)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 1, result.RowCount)
	assert.Empty(t, result.MissingColumns)

	missing := `lease_id,due_date
1,2026-06-01`

	result, err = utils.ValidateCSVStructure(missing)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.MissingColumns, "due_amount")
	assert.Contains(t, result.MissingColumns, "is_paid")
}
