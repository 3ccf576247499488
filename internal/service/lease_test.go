package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentfolio-backend/internal/apperr"
	"rentfolio-backend/internal/domain"
)

// stubRentService records GenerateRange calls; the other methods are never
// reached from the lease service.
type stubRentService struct {
	RentService
	generateRangeCalls int
	lastFrom, lastTo   time.Time
}

func (s *stubRentService) GenerateRange(ctx context.Context, leaseID int32, from, to time.Time) ([]domain.Rent, error) {
	s.generateRangeCalls++
	s.lastFrom, s.lastTo = from, to
	return nil, nil
}

func futureLease() *domain.Lease {
	return &domain.Lease{
		PropertyID:          1,
		TenantIDs:           []int32{1, 2},
		StartDate:           time.Now().UTC().AddDate(0, 1, 0),
		MonthlyRentCents:    100000,
		MonthlyChargesCents: 10000,
		DueDay:              5,
	}
}

func TestLeaseService_CreateLease(t *testing.T) {
	leaseRepo := new(MockLeaseRepo)
	propertyRepo := new(MockPropertyRepo)
	tenantRepo := new(MockTenantRepo)
	rents := &stubRentService{}
	svc := NewLeaseService(leaseRepo, propertyRepo, tenantRepo, new(MockRentRepo), new(MockPaymentRepo), rents, fakeTransactor{})
	ctx := context.Background()

	lease := futureLease()
	propertyRepo.On("GetByID", ctx, int32(1)).Return(&domain.Property{ID: 1}, nil).Once()
	tenantRepo.On("GetByIDs", ctx, []int32{1, 2}).Return([]domain.Tenant{{ID: 1}, {ID: 2}}, nil).Once()
	leaseRepo.On("GetActiveByProperty", ctx, int32(1)).Return(nil, sql.ErrNoRows).Once()
	leaseRepo.On("Create", ctx, mock.MatchedBy(func(l *domain.Lease) bool {
		return l.Status == domain.LeaseStatusActive
	})).Return(nil).Once()
	leaseRepo.On("AppendHistory", ctx, mock.MatchedBy(func(e *domain.LeaseHistoryEntry) bool {
		return e.Action == domain.LeaseActionCreated
	})).Return(nil).Once()

	assert.NoError(t, svc.CreateLease(ctx, lease))
	// Lease starts in the future, no elapsed obligations to backfill.
	assert.Equal(t, 0, rents.generateRangeCalls)
	leaseRepo.AssertExpectations(t)
}

func TestLeaseService_CreateLease_BackfillsElapsedMonths(t *testing.T) {
	leaseRepo := new(MockLeaseRepo)
	propertyRepo := new(MockPropertyRepo)
	tenantRepo := new(MockTenantRepo)
	rents := &stubRentService{}
	svc := NewLeaseService(leaseRepo, propertyRepo, tenantRepo, new(MockRentRepo), new(MockPaymentRepo), rents, fakeTransactor{})
	ctx := context.Background()

	lease := futureLease()
	lease.StartDate = time.Now().UTC().AddDate(0, -3, 0)
	propertyRepo.On("GetByID", ctx, int32(1)).Return(&domain.Property{ID: 1}, nil).Once()
	tenantRepo.On("GetByIDs", ctx, []int32{1, 2}).Return([]domain.Tenant{{ID: 1}, {ID: 2}}, nil).Once()
	leaseRepo.On("GetActiveByProperty", ctx, int32(1)).Return(nil, sql.ErrNoRows).Once()
	leaseRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
	leaseRepo.On("AppendHistory", ctx, mock.Anything).Return(nil).Once()

	assert.NoError(t, svc.CreateLease(ctx, lease))
	assert.Equal(t, 1, rents.generateRangeCalls)
	assert.Equal(t, lease.StartDate, rents.lastFrom)
}

func TestLeaseService_CreateLease_SecondActiveRefused(t *testing.T) {
	leaseRepo := new(MockLeaseRepo)
	propertyRepo := new(MockPropertyRepo)
	tenantRepo := new(MockTenantRepo)
	svc := NewLeaseService(leaseRepo, propertyRepo, tenantRepo, new(MockRentRepo), new(MockPaymentRepo), &stubRentService{}, fakeTransactor{})
	ctx := context.Background()

	lease := futureLease()
	propertyRepo.On("GetByID", ctx, int32(1)).Return(&domain.Property{ID: 1}, nil).Once()
	tenantRepo.On("GetByIDs", ctx, []int32{1, 2}).Return([]domain.Tenant{{ID: 1}, {ID: 2}}, nil).Once()
	leaseRepo.On("GetActiveByProperty", ctx, int32(1)).Return(&domain.Lease{ID: 8, PropertyID: 1}, nil).Once()

	err := svc.CreateLease(ctx, lease)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	leaseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLeaseService_CreateLease_Validation(t *testing.T) {
	svc := NewLeaseService(new(MockLeaseRepo), new(MockPropertyRepo), new(MockTenantRepo), new(MockRentRepo), new(MockPaymentRepo), &stubRentService{}, fakeTransactor{})
	ctx := context.Background()

	lease := futureLease()
	lease.TenantIDs = nil
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(svc.CreateLease(ctx, lease)))

	lease = futureLease()
	lease.MonthlyRentCents = 0
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(svc.CreateLease(ctx, lease)))

	lease = futureLease()
	lease.DueDay = 32
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(svc.CreateLease(ctx, lease)))

	lease = futureLease()
	bad := lease.StartDate.AddDate(0, -1, 0)
	lease.EndDate = &bad
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(svc.CreateLease(ctx, lease)))
}

func TestLeaseService_DeleteLease_RefusedWithRents(t *testing.T) {
	leaseRepo := new(MockLeaseRepo)
	rentRepo := new(MockRentRepo)
	svc := NewLeaseService(leaseRepo, new(MockPropertyRepo), new(MockTenantRepo), rentRepo, new(MockPaymentRepo), &stubRentService{}, fakeTransactor{})
	ctx := context.Background()

	lease := activeLease(1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	leaseRepo.On("GetByID", ctx, int32(1)).Return(lease, nil).Once()
	rentRepo.On("ListByLease", ctx, int32(1), int32(1), int32(1)).Return([]domain.Rent{{ID: 1}}, int32(4), nil).Once()

	err := svc.DeleteLease(ctx, 1)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	leaseRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestLeaseService_SuspendAndReactivate(t *testing.T) {
	leaseRepo := new(MockLeaseRepo)
	svc := NewLeaseService(leaseRepo, new(MockPropertyRepo), new(MockTenantRepo), new(MockRentRepo), new(MockPaymentRepo), &stubRentService{}, fakeTransactor{})
	ctx := context.Background()

	lease := activeLease(1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	leaseRepo.On("GetByID", ctx, int32(1)).Return(lease, nil).Once()
	leaseRepo.On("Update", ctx, mock.MatchedBy(func(l *domain.Lease) bool {
		return l.Status == domain.LeaseStatusSuspended
	})).Return(nil).Once()
	leaseRepo.On("AppendHistory", ctx, mock.MatchedBy(func(e *domain.LeaseHistoryEntry) bool {
		return e.Action == domain.LeaseActionSuspended
	})).Return(nil).Once()

	suspended, err := svc.SuspendLease(ctx, 1, "unpaid rent dispute")
	assert.NoError(t, err)
	assert.Equal(t, domain.LeaseStatusSuspended, suspended.Status)

	leaseRepo.On("GetByID", ctx, int32(1)).Return(suspended, nil).Once()
	leaseRepo.On("Update", ctx, mock.MatchedBy(func(l *domain.Lease) bool {
		return l.Status == domain.LeaseStatusActive
	})).Return(nil).Once()
	leaseRepo.On("AppendHistory", ctx, mock.MatchedBy(func(e *domain.LeaseHistoryEntry) bool {
		return e.Action == domain.LeaseActionReactivated
	})).Return(nil).Once()

	reactivated, err := svc.ReactivateLease(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, domain.LeaseStatusActive, reactivated.Status)

	// Reactivating an already active lease is a conflict.
	leaseRepo.On("GetByID", ctx, int32(1)).Return(reactivated, nil).Once()
	_, err = svc.ReactivateLease(ctx, 1)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}
