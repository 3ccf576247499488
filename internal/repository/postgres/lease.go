package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/repository"

	"github.com/lib/pq"
)

type leaseRepository struct {
	db *sql.DB
}

func NewLeaseRepository(db *sql.DB) repository.LeaseRepository {
	return &leaseRepository{db: db}
}

const leaseColumns = `id, property_id, start_date, end_date, actual_end_date, monthly_rent_cents, monthly_charges_cents, due_day, status, termination_reason, termination_date, notice_respected, created_on, updated_on`

func scanLease(row interface{ Scan(...interface{}) error }) (*domain.Lease, error) {
	l := &domain.Lease{}
	var endDate, actualEndDate, terminationDate sql.NullTime
	var terminationReason sql.NullString
	err := row.Scan(&l.ID, &l.PropertyID, &l.StartDate, &endDate, &actualEndDate, &l.MonthlyRentCents, &l.MonthlyChargesCents, &l.DueDay, &l.Status, &terminationReason, &terminationDate, &l.NoticeRespected, &l.CreatedOn, &l.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if endDate.Valid {
		l.EndDate = &endDate.Time
	}
	if actualEndDate.Valid {
		l.ActualEndDate = &actualEndDate.Time
	}
	if terminationDate.Valid {
		l.TerminationDate = &terminationDate.Time
	}
	l.TerminationReason = terminationReason.String
	return l, nil
}

func (r *leaseRepository) Create(ctx context.Context, l *domain.Lease) error {
	query := `INSERT INTO leases (property_id, start_date, end_date, monthly_rent_cents, monthly_charges_cents, due_day, status, notice_respected, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	var endDate interface{}
	if l.EndDate != nil {
		endDate = *l.EndDate
	}
	err := conn(ctx, r.db).QueryRowContext(ctx, query, l.PropertyID, l.StartDate, endDate, l.MonthlyRentCents, l.MonthlyChargesCents, l.DueDay, l.Status, l.NoticeRespected, time.Now(), time.Now()).Scan(&l.ID)
	if err != nil {
		return err
	}

	for _, tenantID := range l.TenantIDs {
		_, err := conn(ctx, r.db).ExecContext(ctx, `INSERT INTO lease_tenants (lease_id, tenant_id) VALUES ($1, $2)`, l.ID, tenantID)
		if err != nil {
			return fmt.Errorf("link tenant %d: %w", tenantID, err)
		}
	}
	return nil
}

func (r *leaseRepository) GetByID(ctx context.Context, id int32) (*domain.Lease, error) {
	query := `SELECT ` + leaseColumns + ` FROM leases WHERE id = $1`
	l, err := scanLease(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadTenantIDs(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *leaseRepository) GetActiveByProperty(ctx context.Context, propertyID int32) (*domain.Lease, error) {
	query := `SELECT ` + leaseColumns + ` FROM leases WHERE property_id = $1 AND status = $2`
	l, err := scanLease(conn(ctx, r.db).QueryRowContext(ctx, query, propertyID, domain.LeaseStatusActive))
	if err != nil {
		return nil, err
	}
	if err := r.loadTenantIDs(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *leaseRepository) ListActive(ctx context.Context) ([]domain.Lease, error) {
	query := `SELECT ` + leaseColumns + ` FROM leases WHERE status = $1 ORDER BY id`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, domain.LeaseStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leases []domain.Lease
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, err
		}
		leases = append(leases, *l)
	}
	return leases, rows.Err()
}

func (r *leaseRepository) List(ctx context.Context, propertyID int32, status string, page, pageSize int32) ([]domain.Lease, int32, error) {
	query := `SELECT ` + leaseColumns + ` FROM leases WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if propertyID != 0 {
		query += fmt.Sprintf(" AND property_id = $%d", argIdx)
		args = append(args, propertyID)
		argIdx++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := conn(ctx, r.db).QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY start_date DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var leases []domain.Lease
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, 0, err
		}
		leases = append(leases, *l)
	}
	return leases, count, rows.Err()
}

func (r *leaseRepository) Update(ctx context.Context, l *domain.Lease) error {
	query := `UPDATE leases SET end_date=$1, actual_end_date=$2, monthly_rent_cents=$3, monthly_charges_cents=$4, due_day=$5, status=$6, termination_reason=$7, termination_date=$8, notice_respected=$9, updated_on=$10 WHERE id=$11`
	var endDate, actualEndDate, terminationDate interface{}
	if l.EndDate != nil {
		endDate = *l.EndDate
	}
	if l.ActualEndDate != nil {
		actualEndDate = *l.ActualEndDate
	}
	if l.TerminationDate != nil {
		terminationDate = *l.TerminationDate
	}
	_, err := conn(ctx, r.db).ExecContext(ctx, query, endDate, actualEndDate, l.MonthlyRentCents, l.MonthlyChargesCents, l.DueDay, l.Status, l.TerminationReason, terminationDate, l.NoticeRespected, time.Now(), l.ID)
	return err
}

func (r *leaseRepository) Delete(ctx context.Context, id int32) error {
	if _, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM lease_tenants WHERE lease_id = $1`, id); err != nil {
		return err
	}
	if _, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM lease_history WHERE lease_id = $1`, id); err != nil {
		return err
	}
	_, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM leases WHERE id = $1`, id)
	return err
}

func (r *leaseRepository) loadTenantIDs(ctx context.Context, l *domain.Lease) error {
	rows, err := conn(ctx, r.db).QueryContext(ctx, `SELECT tenant_id FROM lease_tenants WHERE lease_id = $1 ORDER BY tenant_id`, l.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var ids pq.Int32Array
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return err
		}
		ids = append(ids, id)
	}
	l.TenantIDs = []int32(ids)
	return rows.Err()
}

func (r *leaseRepository) AppendHistory(ctx context.Context, entry *domain.LeaseHistoryEntry) error {
	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("marshal history metadata: %w", err)
	}
	query := `INSERT INTO lease_history (lease_id, action, description, metadata, created_on)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return conn(ctx, r.db).QueryRowContext(ctx, query, entry.LeaseID, entry.Action, entry.Description, metadata, time.Now()).Scan(&entry.ID)
}

func (r *leaseRepository) ListHistory(ctx context.Context, leaseID int32, page, pageSize int32) ([]domain.LeaseHistoryEntry, int32, error) {
	var count int32
	if err := conn(ctx, r.db).QueryRowContext(ctx, `SELECT count(*) FROM lease_history WHERE lease_id = $1`, leaseID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, lease_id, action, description, metadata, created_on
	          FROM lease_history WHERE lease_id = $1 ORDER BY created_on DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, leaseID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.LeaseHistoryEntry
	for rows.Next() {
		var e domain.LeaseHistoryEntry
		var metadata []byte
		if err := rows.Scan(&e.ID, &e.LeaseID, &e.Action, &e.Description, &metadata, &e.CreatedOn); err != nil {
			return nil, 0, err
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
				return nil, 0, fmt.Errorf("unmarshal history metadata: %w", err)
			}
		}
		entries = append(entries, e)
	}
	return entries, count, rows.Err()
}
