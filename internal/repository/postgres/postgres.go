package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"rentfolio-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.PropertyRepository
	repository.TenantRepository
	repository.LeaseRepository
	repository.RentRepository
	repository.PaymentRepository
	repository.ReceiptRepository
	repository.ReminderRepository
	repository.LoanRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		PropertyRepository: NewPropertyRepository(db),
		TenantRepository:   NewTenantRepository(db),
		LeaseRepository:    NewLeaseRepository(db),
		RentRepository:     NewRentRepository(db),
		PaymentRepository:  NewPaymentRepository(db),
		ReceiptRepository:  NewReceiptRepository(db),
		ReminderRepository: NewReminderRepository(db),
		LoanRepository:     NewLoanRepository(db),
	}
}

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type txKey struct{}

// WithinTx implements repository.Transactor. The opened transaction travels
// in the context so every repository call made with that context executes on
// it; concurrent writers on the same rows serialize on row-level locks.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		// Already inside a transaction, join it.
		return fn(ctx)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// conn returns the transaction carried by ctx, or the pool.
func conn(ctx context.Context, db *sql.DB) DBTX {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}
