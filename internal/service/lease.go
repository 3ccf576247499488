package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentfolio-backend/internal/apperr"
	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/repository"
)

type leaseService struct {
	leaseRepo    repository.LeaseRepository
	propertyRepo repository.PropertyRepository
	tenantRepo   repository.TenantRepository
	rentRepo     repository.RentRepository
	paymentRepo  repository.PaymentRepository
	rents        RentService
	tx           repository.Transactor
}

func NewLeaseService(
	leaseRepo repository.LeaseRepository,
	propertyRepo repository.PropertyRepository,
	tenantRepo repository.TenantRepository,
	rentRepo repository.RentRepository,
	paymentRepo repository.PaymentRepository,
	rents RentService,
	tx repository.Transactor,
) LeaseService {
	return &leaseService{
		leaseRepo:    leaseRepo,
		propertyRepo: propertyRepo,
		tenantRepo:   tenantRepo,
		rentRepo:     rentRepo,
		paymentRepo:  paymentRepo,
		rents:        rents,
		tx:           tx,
	}
}

func (s *leaseService) validateLease(ctx context.Context, l *domain.Lease) error {
	if l.PropertyID == 0 {
		return apperr.Validationf("property id is required")
	}
	if len(l.TenantIDs) == 0 {
		return apperr.Validationf("at least one tenant is required")
	}
	if l.StartDate.IsZero() {
		return apperr.Validationf("start date is required")
	}
	if l.EndDate != nil && l.EndDate.Before(l.StartDate) {
		return apperr.Validationf("end date precedes start date")
	}
	if l.MonthlyRentCents <= 0 {
		return apperr.Validationf("monthly rent must be positive")
	}
	if l.MonthlyChargesCents < 0 {
		return apperr.Validationf("monthly charges cannot be negative")
	}
	if l.DueDay < 1 || l.DueDay > 31 {
		return apperr.Validationf("due day must be between 1 and 31")
	}

	if _, err := s.propertyRepo.GetByID(ctx, l.PropertyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFoundf("property %d not found", l.PropertyID)
		}
		return err
	}
	tenants, err := s.tenantRepo.GetByIDs(ctx, l.TenantIDs)
	if err != nil {
		return err
	}
	if len(tenants) != len(l.TenantIDs) {
		return apperr.Validationf("one or more tenants do not exist")
	}
	return nil
}

// CreateLease registers the lease and, in the same transaction, generates
// every obligation from the start month through the current month so a lease
// entered retroactively carries no gaps.
func (s *leaseService) CreateLease(ctx context.Context, l *domain.Lease) error {
	if err := s.validateLease(ctx, l); err != nil {
		return err
	}

	active, err := s.leaseRepo.GetActiveByProperty(ctx, l.PropertyID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if active != nil {
		return apperr.Conflictf("property %d already has an active lease (%d)", l.PropertyID, active.ID)
	}

	l.Status = domain.LeaseStatusActive
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.leaseRepo.Create(ctx, l); err != nil {
			return err
		}
		entry := &domain.LeaseHistoryEntry{
			LeaseID:     l.ID,
			Action:      domain.LeaseActionCreated,
			Description: fmt.Sprintf("Lease created for property %d, starting %s", l.PropertyID, l.StartDate.Format("2006-01-02")),
		}
		if err := s.leaseRepo.AppendHistory(ctx, entry); err != nil {
			return err
		}

		now := time.Now().UTC()
		if l.StartDate.After(now) {
			return nil
		}
		_, err := s.rents.GenerateRange(ctx, l.ID, l.StartDate, now)
		return err
	})
}

func (s *leaseService) GetLease(ctx context.Context, id int32) (*domain.Lease, error) {
	lease, err := s.leaseRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("lease %d not found", id)
	}
	return lease, err
}

func (s *leaseService) ListLeases(ctx context.Context, propertyID int32, status string, page, pageSize int32) ([]domain.Lease, int32, error) {
	return s.leaseRepo.List(ctx, propertyID, status, page, pageSize)
}

func (s *leaseService) UpdateLease(ctx context.Context, l *domain.Lease) error {
	existing, err := s.GetLease(ctx, l.ID)
	if err != nil {
		return err
	}
	if existing.Status == domain.LeaseStatusTerminated {
		return apperr.Conflictf("lease %d is terminated and cannot be updated", l.ID)
	}
	if err := s.validateLease(ctx, l); err != nil {
		return err
	}

	l.Status = existing.Status
	l.ActualEndDate = existing.ActualEndDate
	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.leaseRepo.Update(ctx, l); err != nil {
			return err
		}
		return s.leaseRepo.AppendHistory(ctx, &domain.LeaseHistoryEntry{
			LeaseID:     l.ID,
			Action:      domain.LeaseActionUpdated,
			Description: "Lease terms updated",
		})
	})
}

func (s *leaseService) SuspendLease(ctx context.Context, id int32, reason string) (*domain.Lease, error) {
	lease, err := s.GetLease(ctx, id)
	if err != nil {
		return nil, err
	}
	if lease.Status != domain.LeaseStatusActive {
		return nil, apperr.Conflictf("only an active lease can be suspended (status %s)", lease.Status)
	}
	lease.Status = domain.LeaseStatusSuspended
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.leaseRepo.Update(ctx, lease); err != nil {
			return err
		}
		return s.leaseRepo.AppendHistory(ctx, &domain.LeaseHistoryEntry{
			LeaseID:     id,
			Action:      domain.LeaseActionSuspended,
			Description: fmt.Sprintf("Lease suspended: %s", reason),
		})
	})
	return lease, err
}

func (s *leaseService) ReactivateLease(ctx context.Context, id int32) (*domain.Lease, error) {
	lease, err := s.GetLease(ctx, id)
	if err != nil {
		return nil, err
	}
	if lease.Status != domain.LeaseStatusSuspended {
		return nil, apperr.Conflictf("only a suspended lease can be reactivated (status %s)", lease.Status)
	}
	lease.Status = domain.LeaseStatusActive
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.leaseRepo.Update(ctx, lease); err != nil {
			return err
		}
		return s.leaseRepo.AppendHistory(ctx, &domain.LeaseHistoryEntry{
			LeaseID:     id,
			Action:      domain.LeaseActionReactivated,
			Description: "Lease reactivated",
		})
	})
	return lease, err
}

// DeleteLease removes a lease that never accrued anything. A lease with even
// one obligation is history, not data entry, and must be terminated instead.
func (s *leaseService) DeleteLease(ctx context.Context, id int32) error {
	if _, err := s.GetLease(ctx, id); err != nil {
		return err
	}
	_, total, err := s.rentRepo.ListByLease(ctx, id, 1, 1)
	if err != nil {
		return err
	}
	if total > 0 {
		return apperr.Conflictf("lease %d has rent obligations and cannot be deleted", id)
	}
	return s.leaseRepo.Delete(ctx, id)
}

func (s *leaseService) ListHistory(ctx context.Context, leaseID int32, page, pageSize int32) ([]domain.LeaseHistoryEntry, int32, error) {
	if _, err := s.GetLease(ctx, leaseID); err != nil {
		return nil, 0, err
	}
	return s.leaseRepo.ListHistory(ctx, leaseID, page, pageSize)
}
