package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/renderer"
)

// fakeTransactor runs the callback directly; unit tests assert on the
// repository calls, not on transaction plumbing.
type fakeTransactor struct{}

func (fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type MockPropertyRepo struct{ mock.Mock }

func (m *MockPropertyRepo) Create(ctx context.Context, p *domain.Property) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockPropertyRepo) GetByID(ctx context.Context, id int32) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) Update(ctx context.Context, p *domain.Property) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockPropertyRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockPropertyRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Property, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Property), args.Get(1).(int32), args.Error(2)
}

type MockTenantRepo struct{ mock.Mock }

func (m *MockTenantRepo) Create(ctx context.Context, t *domain.Tenant) error {
	return m.Called(ctx, t).Error(0)
}
func (m *MockTenantRepo) GetByID(ctx context.Context, id int32) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}
func (m *MockTenantRepo) GetByIDs(ctx context.Context, ids []int32) ([]domain.Tenant, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]domain.Tenant), args.Error(1)
}
func (m *MockTenantRepo) Update(ctx context.Context, t *domain.Tenant) error {
	return m.Called(ctx, t).Error(0)
}
func (m *MockTenantRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockTenantRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Tenant, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Tenant), args.Get(1).(int32), args.Error(2)
}

type MockLeaseRepo struct{ mock.Mock }

func (m *MockLeaseRepo) Create(ctx context.Context, l *domain.Lease) error {
	return m.Called(ctx, l).Error(0)
}
func (m *MockLeaseRepo) GetByID(ctx context.Context, id int32) (*domain.Lease, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lease), args.Error(1)
}
func (m *MockLeaseRepo) GetActiveByProperty(ctx context.Context, propertyID int32) (*domain.Lease, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lease), args.Error(1)
}
func (m *MockLeaseRepo) ListActive(ctx context.Context) ([]domain.Lease, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Lease), args.Error(1)
}
func (m *MockLeaseRepo) List(ctx context.Context, propertyID int32, status string, page, pageSize int32) ([]domain.Lease, int32, error) {
	args := m.Called(ctx, propertyID, status, page, pageSize)
	return args.Get(0).([]domain.Lease), args.Get(1).(int32), args.Error(2)
}
func (m *MockLeaseRepo) Update(ctx context.Context, l *domain.Lease) error {
	return m.Called(ctx, l).Error(0)
}
func (m *MockLeaseRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockLeaseRepo) AppendHistory(ctx context.Context, entry *domain.LeaseHistoryEntry) error {
	return m.Called(ctx, entry).Error(0)
}
func (m *MockLeaseRepo) ListHistory(ctx context.Context, leaseID int32, page, pageSize int32) ([]domain.LeaseHistoryEntry, int32, error) {
	args := m.Called(ctx, leaseID, page, pageSize)
	return args.Get(0).([]domain.LeaseHistoryEntry), args.Get(1).(int32), args.Error(2)
}

type MockRentRepo struct{ mock.Mock }

func (m *MockRentRepo) Create(ctx context.Context, r *domain.Rent) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockRentRepo) GetByID(ctx context.Context, id int32) (*domain.Rent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rent), args.Error(1)
}
func (m *MockRentRepo) GetByPeriod(ctx context.Context, leaseID int32, month, year int) (*domain.Rent, error) {
	args := m.Called(ctx, leaseID, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rent), args.Error(1)
}
func (m *MockRentRepo) Update(ctx context.Context, r *domain.Rent) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockRentRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockRentRepo) DeleteAfterPeriod(ctx context.Context, leaseID int32, year, month int) (int64, error) {
	args := m.Called(ctx, leaseID, year, month)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockRentRepo) ListByLease(ctx context.Context, leaseID int32, page, pageSize int32) ([]domain.Rent, int32, error) {
	args := m.Called(ctx, leaseID, page, pageSize)
	return args.Get(0).([]domain.Rent), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentRepo) ListByStatus(ctx context.Context, status domain.RentStatus, page, pageSize int32) ([]domain.Rent, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Rent), args.Get(1).(int32), args.Error(2)
}
func (m *MockRentRepo) MarkLate(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockPaymentRepo struct{ mock.Mock }

func (m *MockPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id int32) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) Update(ctx context.Context, p *domain.Payment) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockPaymentRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockPaymentRepo) ListByRent(ctx context.Context, rentID int32) ([]domain.Payment, error) {
	args := m.Called(ctx, rentID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) SumByRent(ctx context.Context, rentID int32) (int64, error) {
	args := m.Called(ctx, rentID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockPaymentRepo) CountByRent(ctx context.Context, rentID int32) (int32, error) {
	args := m.Called(ctx, rentID)
	return args.Get(0).(int32), args.Error(1)
}

type MockReceiptRepo struct{ mock.Mock }

func (m *MockReceiptRepo) Create(ctx context.Context, r *domain.Receipt) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockReceiptRepo) GetByID(ctx context.Context, id int32) (*domain.Receipt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}
func (m *MockReceiptRepo) GetByRent(ctx context.Context, rentID int32) (*domain.Receipt, error) {
	args := m.Called(ctx, rentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receipt), args.Error(1)
}
func (m *MockReceiptRepo) UpdateDelivery(ctx context.Context, r *domain.Receipt) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockReceiptRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Receipt, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Receipt), args.Get(1).(int32), args.Error(2)
}
func (m *MockReceiptRepo) ListPendingDelivery(ctx context.Context) ([]domain.Receipt, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Receipt), args.Error(1)
}

type MockReminderRepo struct{ mock.Mock }

func (m *MockReminderRepo) Create(ctx context.Context, r *domain.Reminder) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockReminderRepo) GetByID(ctx context.Context, id int32) (*domain.Reminder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reminder), args.Error(1)
}
func (m *MockReminderRepo) Update(ctx context.Context, r *domain.Reminder) error {
	return m.Called(ctx, r).Error(0)
}
func (m *MockReminderRepo) ListByRent(ctx context.Context, rentID int32) ([]domain.Reminder, error) {
	args := m.Called(ctx, rentID)
	return args.Get(0).([]domain.Reminder), args.Error(1)
}
func (m *MockReminderRepo) ListDue(ctx context.Context, now time.Time) ([]domain.Reminder, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Reminder), args.Error(1)
}

type MockEmailService struct{ mock.Mock }

func (m *MockEmailService) SendReceipt(ctx context.Context, recipients []string, periodLabel string, amountCents int64, attachmentPath string) error {
	return m.Called(ctx, recipients, periodLabel, amountCents, attachmentPath).Error(0)
}
func (m *MockEmailService) SendReminder(ctx context.Context, recipients []string, subject, body string) error {
	return m.Called(ctx, recipients, subject, body).Error(0)
}

type MockRenderer struct{ mock.Mock }

func (m *MockRenderer) RenderReceipt(data renderer.ReceiptData) (string, error) {
	args := m.Called(data)
	return args.String(0), args.Error(1)
}
