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

func newPaymentService(paymentRepo *MockPaymentRepo, rentRepo *MockRentRepo, leaseRepo *MockLeaseRepo, receiptRepo *MockReceiptRepo) PaymentService {
	return NewPaymentService(paymentRepo, rentRepo, leaseRepo, receiptRepo, fakeTransactor{}, nil)
}

func pendingRent() *domain.Rent {
	return &domain.Rent{
		ID:             10,
		LeaseID:        1,
		Month:          2,
		Year:           2024,
		AmountDueCents: 110000,
		DueDate:        time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
		Status:         domain.RentStatusPending,
	}
}

func TestPaymentService_RecordPayment_FullPaymentCreatesReceipt(t *testing.T) {
	paymentRepo := new(MockPaymentRepo)
	rentRepo := new(MockRentRepo)
	leaseRepo := new(MockLeaseRepo)
	receiptRepo := new(MockReceiptRepo)
	svc := newPaymentService(paymentRepo, rentRepo, leaseRepo, receiptRepo)
	ctx := context.Background()

	rent := pendingRent()
	rentRepo.On("GetByID", ctx, int32(10)).Return(rent, nil).Once()
	paymentRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.RentID == int32(10) && p.AmountCents == int64(110000)
	})).Return(nil).Once()
	paymentRepo.On("SumByRent", ctx, int32(10)).Return(int64(110000), nil).Once()
	rentRepo.On("Update", ctx, mock.MatchedBy(func(r *domain.Rent) bool {
		return r.Status == domain.RentStatusPaid && r.AmountPaidCents == int64(110000)
	})).Return(nil).Once()
	receiptRepo.On("GetByRent", ctx, int32(10)).Return(nil, sql.ErrNoRows).Once()
	receiptRepo.On("Create", ctx, mock.MatchedBy(func(rc *domain.Receipt) bool {
		return rc.RentID == int32(10) && rc.AmountCents == int64(110000) && rc.DeliveryStatus == domain.ReceiptDeliveryPending
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Receipt).ID = 99
	}).Return(nil).Once()
	leaseRepo.On("AppendHistory", ctx, mock.MatchedBy(func(e *domain.LeaseHistoryEntry) bool {
		return e.Action == domain.LeaseActionPaymentMade
	})).Return(nil).Once()
	leaseRepo.On("AppendHistory", ctx, mock.MatchedBy(func(e *domain.LeaseHistoryEntry) bool {
		return e.Action == domain.LeaseActionReceiptIssued
	})).Return(nil).Once()

	payment, updated, err := svc.RecordPayment(ctx, 10, 110000, time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), domain.PaymentModeTransfer, "A. Tenant", "ref-1", "")
	assert.NoError(t, err)
	assert.NotNil(t, payment)
	assert.Equal(t, domain.RentStatusPaid, updated.Status)

	receiptRepo.AssertExpectations(t)
	leaseRepo.AssertExpectations(t)
}

func TestPaymentService_RecordPayment_ReceiptCreatedOnlyOnce(t *testing.T) {
	paymentRepo := new(MockPaymentRepo)
	rentRepo := new(MockRentRepo)
	leaseRepo := new(MockLeaseRepo)
	receiptRepo := new(MockReceiptRepo)
	svc := newPaymentService(paymentRepo, rentRepo, leaseRepo, receiptRepo)
	ctx := context.Background()

	rent := pendingRent()
	rent.AmountPaidCents = 110000
	rent.Status = domain.RentStatusPaid
	rentRepo.On("GetByID", ctx, int32(10)).Return(rent, nil).Once()
	paymentRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
	paymentRepo.On("SumByRent", ctx, int32(10)).Return(int64(120000), nil).Once()
	rentRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
	receiptRepo.On("GetByRent", ctx, int32(10)).Return(&domain.Receipt{ID: 99, RentID: 10}, nil).Once()
	// The payment itself is still recorded in the history; only the
	// receipt-issued entry is a one-time event.
	leaseRepo.On("AppendHistory", ctx, mock.MatchedBy(func(e *domain.LeaseHistoryEntry) bool {
		return e.Action == domain.LeaseActionPaymentMade
	})).Return(nil).Once()

	_, updated, err := svc.RecordPayment(ctx, 10, 10000, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), domain.PaymentModeCash, "A. Tenant", "", "")
	assert.NoError(t, err)
	assert.Equal(t, domain.RentStatusPaid, updated.Status)

	receiptRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	leaseRepo.AssertExpectations(t)
}

func TestPaymentService_RecordPayment_PartialPayment(t *testing.T) {
	paymentRepo := new(MockPaymentRepo)
	rentRepo := new(MockRentRepo)
	leaseRepo := new(MockLeaseRepo)
	receiptRepo := new(MockReceiptRepo)
	svc := newPaymentService(paymentRepo, rentRepo, leaseRepo, receiptRepo)
	ctx := context.Background()

	rent := pendingRent()
	rentRepo.On("GetByID", ctx, int32(10)).Return(rent, nil).Once()
	paymentRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
	// Every recorded payment leaves a history entry, paid in full or not.
	leaseRepo.On("AppendHistory", ctx, mock.MatchedBy(func(e *domain.LeaseHistoryEntry) bool {
		return e.Action == domain.LeaseActionPaymentMade && e.LeaseID == int32(1)
	})).Return(nil).Once()
	paymentRepo.On("SumByRent", ctx, int32(10)).Return(int64(40000), nil).Once()
	rentRepo.On("Update", ctx, mock.MatchedBy(func(r *domain.Rent) bool {
		return r.Status == domain.RentStatusPartial && r.AmountPaidCents == int64(40000)
	})).Return(nil).Once()

	_, updated, err := svc.RecordPayment(ctx, 10, 40000, time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), domain.PaymentModeCheck, "A. Tenant", "", "")
	assert.NoError(t, err)
	assert.Equal(t, domain.RentStatusPartial, updated.Status)
	receiptRepo.AssertNotCalled(t, "GetByRent", mock.Anything, mock.Anything)
	leaseRepo.AssertExpectations(t)
}

func TestPaymentService_RecordPayment_OverpaymentAccepted(t *testing.T) {
	paymentRepo := new(MockPaymentRepo)
	rentRepo := new(MockRentRepo)
	leaseRepo := new(MockLeaseRepo)
	receiptRepo := new(MockReceiptRepo)
	svc := newPaymentService(paymentRepo, rentRepo, leaseRepo, receiptRepo)
	ctx := context.Background()

	rent := pendingRent()
	rentRepo.On("GetByID", ctx, int32(10)).Return(rent, nil).Once()
	paymentRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
	paymentRepo.On("SumByRent", ctx, int32(10)).Return(int64(150000), nil).Once()
	rentRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
	receiptRepo.On("GetByRent", ctx, int32(10)).Return(nil, sql.ErrNoRows).Once()
	receiptRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
	leaseRepo.On("AppendHistory", ctx, mock.Anything).Return(nil).Twice()

	_, updated, err := svc.RecordPayment(ctx, 10, 150000, time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), domain.PaymentModeTransfer, "A. Tenant", "", "")
	assert.NoError(t, err)
	assert.Equal(t, domain.RentStatusPaid, updated.Status)
	assert.Greater(t, updated.AmountPaidCents, updated.AmountDueCents)
}

func TestPaymentService_RecordPayment_Validation(t *testing.T) {
	svc := newPaymentService(new(MockPaymentRepo), new(MockRentRepo), new(MockLeaseRepo), new(MockReceiptRepo))
	ctx := context.Background()
	paidOn := time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)

	_, _, err := svc.RecordPayment(ctx, 10, 0, paidOn, domain.PaymentModeCash, "A. Tenant", "", "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, _, err = svc.RecordPayment(ctx, 10, -500, paidOn, domain.PaymentModeCash, "A. Tenant", "", "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, _, err = svc.RecordPayment(ctx, 10, 1000, paidOn, domain.PaymentMode("BITCOIN"), "A. Tenant", "", "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, _, err = svc.RecordPayment(ctx, 10, 1000, time.Time{}, domain.PaymentModeCash, "A. Tenant", "", "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, _, err = svc.RecordPayment(ctx, 10, 1000, paidOn, domain.PaymentModeCash, "", "", "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestPaymentService_DeletePayment_RecomputesStatus(t *testing.T) {
	paymentRepo := new(MockPaymentRepo)
	rentRepo := new(MockRentRepo)
	svc := newPaymentService(paymentRepo, rentRepo, new(MockLeaseRepo), new(MockReceiptRepo))
	ctx := context.Background()

	rent := pendingRent()
	rent.AmountPaidCents = 110000
	rent.Status = domain.RentStatusPaid

	paymentRepo.On("GetByID", ctx, int32(3)).Return(&domain.Payment{ID: 3, RentID: 10, AmountCents: 110000}, nil).Once()
	paymentRepo.On("Delete", ctx, int32(3)).Return(nil).Once()
	rentRepo.On("GetByID", ctx, int32(10)).Return(rent, nil).Once()
	paymentRepo.On("SumByRent", ctx, int32(10)).Return(int64(0), nil).Once()
	// Due date is in the past, so removing the only payment flips it to LATE.
	rentRepo.On("Update", ctx, mock.MatchedBy(func(r *domain.Rent) bool {
		return r.Status == domain.RentStatusLate && r.AmountPaidCents == int64(0)
	})).Return(nil).Once()

	updated, err := svc.DeletePayment(ctx, 3)
	assert.NoError(t, err)
	assert.Equal(t, domain.RentStatusLate, updated.Status)
	paymentRepo.AssertExpectations(t)
	rentRepo.AssertExpectations(t)
}

func TestPaymentService_AmendPayment_TransitionToPaidIssuesReceipt(t *testing.T) {
	paymentRepo := new(MockPaymentRepo)
	rentRepo := new(MockRentRepo)
	leaseRepo := new(MockLeaseRepo)
	receiptRepo := new(MockReceiptRepo)
	svc := newPaymentService(paymentRepo, rentRepo, leaseRepo, receiptRepo)
	ctx := context.Background()

	rent := pendingRent()
	rent.AmountPaidCents = 100000
	rent.Status = domain.RentStatusPartial

	paymentRepo.On("GetByID", ctx, int32(3)).Return(&domain.Payment{ID: 3, RentID: 10, AmountCents: 100000, Mode: domain.PaymentModeTransfer}, nil).Once()
	paymentRepo.On("Update", ctx, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.AmountCents == int64(110000)
	})).Return(nil).Once()
	rentRepo.On("GetByID", ctx, int32(10)).Return(rent, nil).Once()
	paymentRepo.On("SumByRent", ctx, int32(10)).Return(int64(110000), nil).Once()
	rentRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
	receiptRepo.On("GetByRent", ctx, int32(10)).Return(nil, sql.ErrNoRows).Once()
	receiptRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
	leaseRepo.On("AppendHistory", ctx, mock.Anything).Return(nil).Once()

	amount := int64(110000)
	payment, updated, err := svc.AmendPayment(ctx, 3, &amount, nil, nil, nil, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(110000), payment.AmountCents)
	assert.Equal(t, domain.RentStatusPaid, updated.Status)
	receiptRepo.AssertExpectations(t)
}
