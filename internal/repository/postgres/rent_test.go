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

func TestRentRepository_GetByPeriod(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRentRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "lease_id", "month", "year", "amount_due_cents", "amount_paid_cents", "due_date", "status", "comment", "created_on", "updated_on"}).
		AddRow(10, 1, 2, 2024, 110000, 0, time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), "PENDING", "", now, now)
	mock.ExpectQuery("SELECT (.+) FROM rents WHERE lease_id = \\$1 AND month = \\$2 AND year = \\$3").
		WithArgs(int32(1), 2, 2024).
		WillReturnRows(rows)

	rent, err := repo.GetByPeriod(context.Background(), 1, 2, 2024)
	require.NoError(t, err)
	assert.Equal(t, int32(10), rent.ID)
	assert.Equal(t, int64(110000), rent.AmountDueCents)
	assert.Equal(t, domain.RentStatusPending, rent.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRentRepository(db)

	rent := &domain.Rent{
		LeaseID:        1,
		Month:          2,
		Year:           2024,
		AmountDueCents: 110000,
		DueDate:        time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
		Status:         domain.RentStatusPending,
	}
	mock.ExpectQuery("INSERT INTO rents").
		WithArgs(rent.LeaseID, rent.Month, rent.Year, rent.AmountDueCents, rent.AmountPaidCents, rent.DueDate, rent.Status, rent.Comment, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))

	require.NoError(t, repo.Create(context.Background(), rent))
	assert.Equal(t, int32(10), rent.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentRepository_DeleteAfterPeriod(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRentRepository(db)

	// Strictly-future periods only: year > ref, or same year with month > ref.
	mock.ExpectExec(`DELETE FROM rents WHERE lease_id = \$1 AND \(year > \$2 OR \(year = \$2 AND month > \$3\)\)`).
		WithArgs(int32(1), 2024, 1).
		WillReturnResult(sqlmock.NewResult(0, 2))

	deleted, err := repo.DeleteAfterPeriod(context.Background(), 1, 2024, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentRepository_MarkLate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRentRepository(db)
	now := time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE rents SET status = \\$1, updated_on = \\$2 WHERE status = \\$3 AND due_date < \\$2 AND amount_paid_cents = 0").
		WithArgs(domain.RentStatusLate, now, domain.RentStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 3))

	count, err := repo.MarkLate(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_WithinTx_CommitAndRollback(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db)
	ctx := context.Background()

	t.Run("commit on success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM rents").WithArgs(int32(1), 2024, 1).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.WithinTx(ctx, func(ctx context.Context) error {
			_, err := store.RentRepository.DeleteAfterPeriod(ctx, 1, 2024, 1)
			return err
		})
		assert.NoError(t, err)
	})

	t.Run("rollback on error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := store.WithinTx(ctx, func(ctx context.Context) error {
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
