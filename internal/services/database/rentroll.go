// Package database provides database operations for the portfolio analytics engine.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"portfolio-analytics-engine/internal/models"
)

// RentRollRepository handles imported payment schedule rows.
type RentRollRepository struct {
	db *DB
}

// NewRentRollRepository creates a new rent-roll repository.
func NewRentRollRepository(db *DB) *RentRollRepository {
	return &RentRollRepository{db: db}
}

// BulkInsert inserts imported schedule rows. Per-row failures are collected
// in the result rather than aborting the batch; an existing row for the
// same lease and due date is updated in place.
func (r *RentRollRepository) BulkInsert(ctx context.Context, entries []*models.ScheduleEntryCreate) (*models.BulkInsertResult, error) {
	result := &models.BulkInsertResult{
		InsertedCount: 0,
		FailedCount:   0,
		Errors:        []string{},
	}

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		return insertScheduleRows(ctx, tx, entries, result)
	})

	if err != nil {
		return result, fmt.Errorf("bulk insert failed: %w", err)
	}

	return result, nil
}

// insertScheduleRows upserts each row under its own savepoint so a failed
// row can be rolled back without aborting the surrounding transaction.
func insertScheduleRows(ctx context.Context, tx pgx.Tx, entries []*models.ScheduleEntryCreate, result *models.BulkInsertResult) error {
	for _, entry := range entries {
		sp, err := tx.Begin(ctx)
		if err != nil {
			return err
		}

		_, execErr := sp.Exec(ctx, `
			INSERT INTO payment_schedules (lease_id, due_date, due_amount, is_paid, paid_date, paid_amount, batch_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
			ON CONFLICT (lease_id, due_date) DO UPDATE SET
				due_amount = EXCLUDED.due_amount,
				is_paid = EXCLUDED.is_paid,
				paid_date = EXCLUDED.paid_date,
				paid_amount = EXCLUDED.paid_amount,
				batch_id = EXCLUDED.batch_id,
				updated_at = EXCLUDED.updated_at`,
			entry.LeaseID,
			entry.DueDate,
			entry.DueAmount,
			entry.IsPaid,
			entry.PaidDate,
			entry.PaidAmount,
			entry.BatchID,
			time.Now().UTC(),
		)

		if execErr != nil {
			if rbErr := sp.Rollback(ctx); rbErr != nil {
				return rbErr
			}
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("lease %d due %s: %v", entry.LeaseID, entry.DueDate.Format("2006-01-02"), execErr))
			continue
		}

		if err := sp.Commit(ctx); err != nil {
			return err
		}
		result.InsertedCount++
	}
	return nil
}

// CountForBatch returns how many schedule rows carry the given batch ID.
func (r *RentRollRepository) CountForBatch(ctx context.Context, batchID string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM payment_schedules WHERE batch_id = $1`, batchID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count batch rows: %w", err)
	}
	return count, nil
}
