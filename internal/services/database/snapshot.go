// Package database provides database operations for the portfolio analytics engine.
package database

import (
	"context"
	"fmt"

	"portfolio-analytics-engine/internal/models"
)

// SnapshotRepository reads the full record set for one organization. It is
// the production implementation of the analytics snapshot provider.
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new snapshot repository.
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// GetOrgSnapshot loads every record collection scoped to one organization.
// Rows belonging to other organizations never appear in the result.
func (r *SnapshotRepository) GetOrgSnapshot(ctx context.Context, orgID int64) (*models.Snapshot, error) {
	snapshot := &models.Snapshot{OrgID: orgID}

	var err error
	if snapshot.Leases, err = r.getLeases(ctx, orgID); err != nil {
		return nil, err
	}
	if snapshot.ScheduleEntries, err = r.getScheduleEntries(ctx, orgID); err != nil {
		return nil, err
	}
	if snapshot.RentPayments, err = r.getRentPayments(ctx, orgID); err != nil {
		return nil, err
	}
	if snapshot.MaintenanceRequests, err = r.getMaintenanceRequests(ctx, orgID); err != nil {
		return nil, err
	}
	if snapshot.Expenses, err = r.getExpenses(ctx, orgID); err != nil {
		return nil, err
	}
	if snapshot.Properties, err = r.getProperties(ctx, orgID); err != nil {
		return nil, err
	}
	if snapshot.Tenants, err = r.getTenants(ctx, orgID); err != nil {
		return nil, err
	}

	return snapshot, nil
}

func (r *SnapshotRepository) getLeases(ctx context.Context, orgID int64) ([]*models.Lease, error) {
	query := `
		SELECT id, org_id, tenant_id, property_id, unit_label, monthly_rent, start_date, end_date, status, created_at, updated_at
		FROM leases
		WHERE org_id = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leases: %w", err)
	}
	defer rows.Close()

	var leases []*models.Lease
	for rows.Next() {
		var lease models.Lease
		var status string
		if err := rows.Scan(
			&lease.ID,
			&lease.OrgID,
			&lease.TenantID,
			&lease.PropertyID,
			&lease.UnitLabel,
			&lease.MonthlyRent,
			&lease.StartDate,
			&lease.EndDate,
			&status,
			&lease.CreatedAt,
			&lease.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lease: %w", err)
		}
		lease.Status = models.LeaseStatus(status)
		leases = append(leases, &lease)
	}

	return leases, rows.Err()
}

func (r *SnapshotRepository) getScheduleEntries(ctx context.Context, orgID int64) ([]*models.ScheduleEntry, error) {
	query := `
		SELECT s.id, s.lease_id, s.due_date, s.due_amount, s.is_paid, s.paid_date, s.paid_amount
		FROM payment_schedules s
		JOIN leases l ON l.id = s.lease_id
		WHERE l.org_id = $1
		ORDER BY s.lease_id, s.due_date`

	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment schedules: %w", err)
	}
	defer rows.Close()

	var entries []*models.ScheduleEntry
	for rows.Next() {
		var entry models.ScheduleEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.LeaseID,
			&entry.DueDate,
			&entry.DueAmount,
			&entry.IsPaid,
			&entry.PaidDate,
			&entry.PaidAmount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment schedule: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

func (r *SnapshotRepository) getRentPayments(ctx context.Context, orgID int64) ([]*models.RentPayment, error) {
	query := `
		SELECT p.id, p.lease_id, p.payment_date, p.amount, p.status
		FROM rent_payments p
		JOIN leases l ON l.id = p.lease_id
		WHERE l.org_id = $1
		ORDER BY p.payment_date`

	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rent payments: %w", err)
	}
	defer rows.Close()

	var payments []*models.RentPayment
	for rows.Next() {
		var payment models.RentPayment
		var status string
		if err := rows.Scan(
			&payment.ID,
			&payment.LeaseID,
			&payment.PaymentDate,
			&payment.Amount,
			&status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rent payment: %w", err)
		}
		payment.Status = models.PaymentStatus(status)
		payments = append(payments, &payment)
	}

	return payments, rows.Err()
}

func (r *SnapshotRepository) getMaintenanceRequests(ctx context.Context, orgID int64) ([]*models.MaintenanceRequest, error) {
	query := `
		SELECT id, org_id, property_id, tenant_id, status, requested_date, assigned_at
		FROM maintenance_requests
		WHERE org_id = $1
		ORDER BY requested_date`

	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query maintenance requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.MaintenanceRequest
	for rows.Next() {
		var request models.MaintenanceRequest
		var status string
		if err := rows.Scan(
			&request.ID,
			&request.OrgID,
			&request.PropertyID,
			&request.TenantID,
			&status,
			&request.RequestedDate,
			&request.AssignedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan maintenance request: %w", err)
		}
		request.Status = models.MaintenanceStatus(status)
		requests = append(requests, &request)
	}

	return requests, rows.Err()
}

func (r *SnapshotRepository) getExpenses(ctx context.Context, orgID int64) ([]*models.Expense, error) {
	query := `
		SELECT id, org_id, amount, category, expense_date
		FROM expenses
		WHERE org_id = $1
		ORDER BY expense_date`

	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		var expense models.Expense
		if err := rows.Scan(
			&expense.ID,
			&expense.OrgID,
			&expense.Amount,
			&expense.Category,
			&expense.ExpenseDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, &expense)
	}

	return expenses, rows.Err()
}

func (r *SnapshotRepository) getProperties(ctx context.Context, orgID int64) ([]*models.Property, error) {
	query := `
		SELECT id, org_id, name, address, created_at
		FROM properties
		WHERE org_id = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	var properties []*models.Property
	for rows.Next() {
		var property models.Property
		if err := rows.Scan(
			&property.ID,
			&property.OrgID,
			&property.Name,
			&property.Address,
			&property.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, &property)
	}

	return properties, rows.Err()
}

func (r *SnapshotRepository) getTenants(ctx context.Context, orgID int64) ([]*models.Tenant, error) {
	query := `
		SELECT id, org_id, name, email, phone, created_at
		FROM tenants
		WHERE org_id = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenants: %w", err)
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		var tenant models.Tenant
		if err := rows.Scan(
			&tenant.ID,
			&tenant.OrgID,
			&tenant.Name,
			&tenant.Email,
			&tenant.Phone,
			&tenant.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, &tenant)
	}

	return tenants, rows.Err()
}
