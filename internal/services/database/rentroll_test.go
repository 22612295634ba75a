package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-analytics-engine/internal/models"
)

// recordingTx satisfies pgx.Tx for exercising the savepoint-per-row insert
// loop. Begin hands back the same instance, so savepoint commits and
// rollbacks are recorded alongside the top-level transaction's.
type recordingTx struct {
	execCalls int
	failRows  map[int]error
	commits   int
	rollbacks int
}

func (f *recordingTx) Begin(ctx context.Context) (pgx.Tx, error) { return f, nil }

func (f *recordingTx) Commit(ctx context.Context) error {
	f.commits++
	return nil
}

func (f *recordingTx) Rollback(ctx context.Context) error {
	f.rollbacks++
	return nil
}

func (f *recordingTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	row := f.execCalls
	f.execCalls++
	if err, ok := f.failRows[row]; ok {
		return pgconn.CommandTag{}, err
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *recordingTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, errors.New("not supported")
}

func (f *recordingTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }

func (f *recordingTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (f *recordingTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, errors.New("not supported")
}

func (f *recordingTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not supported")
}

func (f *recordingTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }

func (f *recordingTx) Conn() *pgx.Conn { return nil }

func scheduleRow(leaseID int64, due time.Time) *models.ScheduleEntryCreate {
	return &models.ScheduleEntryCreate{
		LeaseID:   leaseID,
		DueDate:   due,
		DueAmount: 150000,
		BatchID:   "batch-1",
	}
}

func TestInsertScheduleRows_FailedRowDoesNotAbortBatch(t *testing.T) {
	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	entries := []*models.ScheduleEntryCreate{
		scheduleRow(1, due),
		scheduleRow(999, due), // violates the leases foreign key
		scheduleRow(2, due),
	}

	tx := &recordingTx{
		failRows: map[int]error{1: errors.New(`insert or update on table "payment_schedules" violates foreign key constraint`)},
	}
	result := &models.BulkInsertResult{Errors: []string{}}

	err := insertScheduleRows(context.Background(), tx, entries, result)
	require.NoError(t, err)

	assert.Equal(t, 2, result.InsertedCount)
	assert.Equal(t, 1, result.FailedCount)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "lease 999")
	assert.Contains(t, result.Errors[0], "foreign key")

	// The failed row's savepoint is rolled back; the two good rows commit
	// their savepoints and the loop keeps going past the failure.
	assert.Equal(t, 3, tx.execCalls)
	assert.Equal(t, 2, tx.commits)
	assert.Equal(t, 1, tx.rollbacks)
}

func TestInsertScheduleRows_AllRowsSucceed(t *testing.T) {
	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	entries := []*models.ScheduleEntryCreate{
		scheduleRow(1, due),
		scheduleRow(2, due),
	}

	tx := &recordingTx{}
	result := &models.BulkInsertResult{Errors: []string{}}

	err := insertScheduleRows(context.Background(), tx, entries, result)
	require.NoError(t, err)

	assert.Equal(t, 2, result.InsertedCount)
	assert.Equal(t, 0, result.FailedCount)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 0, tx.rollbacks)
}
