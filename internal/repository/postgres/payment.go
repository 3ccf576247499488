package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (rent_id, amount_cents, paid_on, mode, payer, reference, comment, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	return conn(ctx, r.db).QueryRowContext(ctx, query, p.RentID, p.AmountCents, p.PaidOn, p.Mode, p.Payer, p.Reference, p.Comment, time.Now()).Scan(&p.ID)
}

func (r *paymentRepository) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	p := &domain.Payment{}
	query := `SELECT id, rent_id, amount_cents, paid_on, mode, payer, reference, comment, created_on FROM payments WHERE id = $1`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&p.ID, &p.RentID, &p.AmountCents, &p.PaidOn, &p.Mode, &p.Payer, &p.Reference, &p.Comment, &p.CreatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) Update(ctx context.Context, p *domain.Payment) error {
	query := `UPDATE payments SET amount_cents=$1, paid_on=$2, mode=$3, payer=$4, reference=$5, comment=$6 WHERE id=$7`
	_, err := conn(ctx, r.db).ExecContext(ctx, query, p.AmountCents, p.PaidOn, p.Mode, p.Payer, p.Reference, p.Comment, p.ID)
	return err
}

func (r *paymentRepository) Delete(ctx context.Context, id int32) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM payments WHERE id = $1`, id)
	return err
}

func (r *paymentRepository) ListByRent(ctx context.Context, rentID int32) ([]domain.Payment, error) {
	query := `SELECT id, rent_id, amount_cents, paid_on, mode, payer, reference, comment, created_on FROM payments WHERE rent_id = $1 ORDER BY paid_on ASC, id ASC`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, rentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.RentID, &p.AmountCents, &p.PaidOn, &p.Mode, &p.Payer, &p.Reference, &p.Comment, &p.CreatedOn); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) SumByRent(ctx context.Context, rentID int32) (int64, error) {
	var sum int64
	err := conn(ctx, r.db).QueryRowContext(ctx, `SELECT COALESCE(SUM(amount_cents), 0) FROM payments WHERE rent_id = $1`, rentID).Scan(&sum)
	return sum, err
}

func (r *paymentRepository) CountByRent(ctx context.Context, rentID int32) (int32, error) {
	var count int32
	err := conn(ctx, r.db).QueryRowContext(ctx, `SELECT count(*) FROM payments WHERE rent_id = $1`, rentID).Scan(&count)
	return count, err
}
