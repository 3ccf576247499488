package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentfolio-backend/internal/domain"
)

func TestPaymentRepository_SumByRent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPaymentRepository(db)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount_cents\), 0\) FROM payments WHERE rent_id = \$1`).
		WithArgs(int32(10)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(75000))

	sum, err := repo.SumByRent(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(75000), sum)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_SumByRent_NoPayments(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPaymentRepository(db)

	// COALESCE keeps the sum at zero when no rows match.
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount_cents\), 0\) FROM payments WHERE rent_id = \$1`).
		WithArgs(int32(10)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))

	sum, err := repo.SumByRent(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), sum)
}

func TestPaymentRepository_CountByRent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPaymentRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM payments WHERE rent_id = \$1`).
		WithArgs(int32(10)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountByRent(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int32(2), count)
}

func TestPaymentRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPaymentRepository(db)

	payment := &domain.Payment{
		RentID:      10,
		AmountCents: 110000,
		PaidOn:      time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
		Mode:        domain.PaymentModeTransfer,
		Payer:       "Jane Doe",
		Reference:   "wire-123",
	}
	mock.ExpectQuery("INSERT INTO payments").
		WithArgs(payment.RentID, payment.AmountCents, payment.PaidOn, payment.Mode, payment.Payer, payment.Reference, payment.Comment, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	require.NoError(t, repo.Create(context.Background(), payment))
	assert.Equal(t, int32(5), payment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
