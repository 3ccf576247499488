package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/repository"
)

type rentRepository struct {
	db *sql.DB
}

func NewRentRepository(db *sql.DB) repository.RentRepository {
	return &rentRepository{db: db}
}

const rentColumns = `id, lease_id, month, year, amount_due_cents, amount_paid_cents, due_date, status, comment, created_on, updated_on`

func scanRent(row interface{ Scan(...interface{}) error }) (*domain.Rent, error) {
	r := &domain.Rent{}
	err := row.Scan(&r.ID, &r.LeaseID, &r.Month, &r.Year, &r.AmountDueCents, &r.AmountPaidCents, &r.DueDate, &r.Status, &r.Comment, &r.CreatedOn, &r.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (r *rentRepository) Create(ctx context.Context, rent *domain.Rent) error {
	query := `INSERT INTO rents (lease_id, month, year, amount_due_cents, amount_paid_cents, due_date, status, comment, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return conn(ctx, r.db).QueryRowContext(ctx, query, rent.LeaseID, rent.Month, rent.Year, rent.AmountDueCents, rent.AmountPaidCents, rent.DueDate, rent.Status, rent.Comment, time.Now(), time.Now()).Scan(&rent.ID)
}

func (r *rentRepository) GetByID(ctx context.Context, id int32) (*domain.Rent, error) {
	query := `SELECT ` + rentColumns + ` FROM rents WHERE id = $1`
	return scanRent(conn(ctx, r.db).QueryRowContext(ctx, query, id))
}

func (r *rentRepository) GetByPeriod(ctx context.Context, leaseID int32, month, year int) (*domain.Rent, error) {
	query := `SELECT ` + rentColumns + ` FROM rents WHERE lease_id = $1 AND month = $2 AND year = $3`
	return scanRent(conn(ctx, r.db).QueryRowContext(ctx, query, leaseID, month, year))
}

func (r *rentRepository) Update(ctx context.Context, rent *domain.Rent) error {
	query := `UPDATE rents SET amount_due_cents=$1, amount_paid_cents=$2, due_date=$3, status=$4, comment=$5, updated_on=$6 WHERE id=$7`
	_, err := conn(ctx, r.db).ExecContext(ctx, query, rent.AmountDueCents, rent.AmountPaidCents, rent.DueDate, rent.Status, rent.Comment, time.Now(), rent.ID)
	return err
}

func (r *rentRepository) Delete(ctx context.Context, id int32) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM rents WHERE id = $1`, id)
	return err
}

func (r *rentRepository) DeleteAfterPeriod(ctx context.Context, leaseID int32, year, month int) (int64, error) {
	query := `DELETE FROM rents WHERE lease_id = $1 AND (year > $2 OR (year = $2 AND month > $3))`
	result, err := conn(ctx, r.db).ExecContext(ctx, query, leaseID, year, month)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *rentRepository) ListByLease(ctx context.Context, leaseID int32, page, pageSize int32) ([]domain.Rent, int32, error) {
	var count int32
	if err := conn(ctx, r.db).QueryRowContext(ctx, `SELECT count(*) FROM rents WHERE lease_id = $1`, leaseID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + rentColumns + ` FROM rents WHERE lease_id = $1 ORDER BY year DESC, month DESC LIMIT $2 OFFSET $3`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, leaseID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rents []domain.Rent
	for rows.Next() {
		rent, err := scanRent(rows)
		if err != nil {
			return nil, 0, err
		}
		rents = append(rents, *rent)
	}
	return rents, count, rows.Err()
}

func (r *rentRepository) ListByStatus(ctx context.Context, status domain.RentStatus, page, pageSize int32) ([]domain.Rent, int32, error) {
	var count int32
	if err := conn(ctx, r.db).QueryRowContext(ctx, `SELECT count(*) FROM rents WHERE status = $1`, status).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + rentColumns + ` FROM rents WHERE status = $1 ORDER BY due_date ASC LIMIT $2 OFFSET $3`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, status, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rents []domain.Rent
	for rows.Next() {
		rent, err := scanRent(rows)
		if err != nil {
			return nil, 0, err
		}
		rents = append(rents, *rent)
	}
	return rents, count, rows.Err()
}

// MarkLate flips PENDING rents past their due date to LATE. Only untouched
// obligations move; PARTIAL and PAID rents keep their payment-derived status.
func (r *rentRepository) MarkLate(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE rents SET status = $1, updated_on = $2 WHERE status = $3 AND due_date < $2 AND amount_paid_cents = 0`
	result, err := conn(ctx, r.db).ExecContext(ctx, query, domain.RentStatusLate, now, domain.RentStatusPending)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
