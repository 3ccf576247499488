package repository

import (
	"context"
	"time"

	"rentfolio-backend/internal/domain"
)

// Transactor runs fn inside a database transaction. The transaction travels
// in the context, so any repository call made with the inner context joins
// it. A returned error rolls everything back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	GetByID(ctx context.Context, id int32) (*domain.Property, error)
	Update(ctx context.Context, p *domain.Property) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Property, int32, error)
}

type TenantRepository interface {
	Create(ctx context.Context, t *domain.Tenant) error
	GetByID(ctx context.Context, id int32) (*domain.Tenant, error)
	GetByIDs(ctx context.Context, ids []int32) ([]domain.Tenant, error)
	Update(ctx context.Context, t *domain.Tenant) error
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Tenant, int32, error)
}

type LeaseRepository interface {
	Create(ctx context.Context, l *domain.Lease) error
	GetByID(ctx context.Context, id int32) (*domain.Lease, error)
	GetActiveByProperty(ctx context.Context, propertyID int32) (*domain.Lease, error)
	ListActive(ctx context.Context) ([]domain.Lease, error)
	List(ctx context.Context, propertyID int32, status string, page, pageSize int32) ([]domain.Lease, int32, error)
	Update(ctx context.Context, l *domain.Lease) error
	Delete(ctx context.Context, id int32) error

	// Append-only history log owned by the lease.
	AppendHistory(ctx context.Context, entry *domain.LeaseHistoryEntry) error
	ListHistory(ctx context.Context, leaseID int32, page, pageSize int32) ([]domain.LeaseHistoryEntry, int32, error)
}

type RentRepository interface {
	Create(ctx context.Context, r *domain.Rent) error
	GetByID(ctx context.Context, id int32) (*domain.Rent, error)
	GetByPeriod(ctx context.Context, leaseID int32, month, year int) (*domain.Rent, error)
	Update(ctx context.Context, r *domain.Rent) error
	Delete(ctx context.Context, id int32) error
	DeleteAfterPeriod(ctx context.Context, leaseID int32, year, month int) (int64, error)
	ListByLease(ctx context.Context, leaseID int32, page, pageSize int32) ([]domain.Rent, int32, error)
	ListByStatus(ctx context.Context, status domain.RentStatus, page, pageSize int32) ([]domain.Rent, int32, error)
	MarkLate(ctx context.Context, now time.Time) (int64, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int32) (*domain.Payment, error)
	Update(ctx context.Context, p *domain.Payment) error
	Delete(ctx context.Context, id int32) error
	ListByRent(ctx context.Context, rentID int32) ([]domain.Payment, error)
	SumByRent(ctx context.Context, rentID int32) (int64, error)
	CountByRent(ctx context.Context, rentID int32) (int32, error)
}

type ReceiptRepository interface {
	Create(ctx context.Context, r *domain.Receipt) error
	GetByID(ctx context.Context, id int32) (*domain.Receipt, error)
	GetByRent(ctx context.Context, rentID int32) (*domain.Receipt, error)
	UpdateDelivery(ctx context.Context, r *domain.Receipt) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Receipt, int32, error)
	ListPendingDelivery(ctx context.Context) ([]domain.Receipt, error)
}

type ReminderRepository interface {
	Create(ctx context.Context, r *domain.Reminder) error
	GetByID(ctx context.Context, id int32) (*domain.Reminder, error)
	Update(ctx context.Context, r *domain.Reminder) error
	ListByRent(ctx context.Context, rentID int32) ([]domain.Reminder, error)
	ListDue(ctx context.Context, now time.Time) ([]domain.Reminder, error)
}

type LoanRepository interface {
	Create(ctx context.Context, l *domain.Loan) error
	GetByID(ctx context.Context, id int32) (*domain.Loan, error)
	ListByProperty(ctx context.Context, propertyID int32) ([]domain.Loan, error)
	Delete(ctx context.Context, id int32) error
}
