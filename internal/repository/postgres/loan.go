package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/repository"
)

type loanRepository struct {
	db *sql.DB
}

func NewLoanRepository(db *sql.DB) repository.LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, l *domain.Loan) error {
	query := `INSERT INTO loans (property_id, lender, principal_cents, annual_rate_basis_points, monthly_insurance_cents, start_date, term_months, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return conn(ctx, r.db).QueryRowContext(ctx, query, l.PropertyID, l.Lender, l.PrincipalCents, l.AnnualRateBasisPoints, l.MonthlyInsuranceCents, l.StartDate, l.TermMonths, time.Now(), time.Now()).Scan(&l.ID)
}

func (r *loanRepository) GetByID(ctx context.Context, id int32) (*domain.Loan, error) {
	l := &domain.Loan{}
	query := `SELECT id, property_id, lender, principal_cents, annual_rate_basis_points, monthly_insurance_cents, start_date, term_months, created_on, updated_on FROM loans WHERE id = $1`
	err := conn(ctx, r.db).QueryRowContext(ctx, query, id).Scan(&l.ID, &l.PropertyID, &l.Lender, &l.PrincipalCents, &l.AnnualRateBasisPoints, &l.MonthlyInsuranceCents, &l.StartDate, &l.TermMonths, &l.CreatedOn, &l.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return l, nil
}

func (r *loanRepository) ListByProperty(ctx context.Context, propertyID int32) ([]domain.Loan, error) {
	query := `SELECT id, property_id, lender, principal_cents, annual_rate_basis_points, monthly_insurance_cents, start_date, term_months, created_on, updated_on FROM loans WHERE property_id = $1 ORDER BY start_date DESC`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []domain.Loan
	for rows.Next() {
		var l domain.Loan
		if err := rows.Scan(&l.ID, &l.PropertyID, &l.Lender, &l.PrincipalCents, &l.AnnualRateBasisPoints, &l.MonthlyInsuranceCents, &l.StartDate, &l.TermMonths, &l.CreatedOn, &l.UpdatedOn); err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

func (r *loanRepository) Delete(ctx context.Context, id int32) error {
	_, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM loans WHERE id = $1`, id)
	return err
}
