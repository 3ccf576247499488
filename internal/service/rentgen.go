package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentfolio-backend/internal/apperr"
	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/logger"
	"rentfolio-backend/internal/repository"
	"rentfolio-backend/internal/utils"
)

type rentService struct {
	rentRepo    repository.RentRepository
	leaseRepo   repository.LeaseRepository
	paymentRepo repository.PaymentRepository
	tx          repository.Transactor
}

func NewRentService(
	rentRepo repository.RentRepository,
	leaseRepo repository.LeaseRepository,
	paymentRepo repository.PaymentRepository,
	tx repository.Transactor,
) RentService {
	return &rentService{
		rentRepo:    rentRepo,
		leaseRepo:   leaseRepo,
		paymentRepo: paymentRepo,
		tx:          tx,
	}
}

func (s *rentService) GenerateForPeriod(ctx context.Context, leaseID int32, month, year int, force bool) (*domain.Rent, bool, error) {
	if month < 1 || month > 12 {
		return nil, false, apperr.Validationf("month must be between 1 and 12")
	}
	if year < 1900 || year > 2200 {
		return nil, false, apperr.Validationf("invalid year: %d", year)
	}

	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, apperr.NotFoundf("lease %d not found", leaseID)
	}
	if err != nil {
		return nil, false, err
	}

	var rent *domain.Rent
	created := false
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		rent, created, err = s.generateForPeriodTx(ctx, lease, month, year, force)
		return err
	})
	return rent, created, err
}

// generateForPeriodTx holds the generation rules and must run inside a
// transaction so the obligation and the history entry commit together.
func (s *rentService) generateForPeriodTx(ctx context.Context, lease *domain.Lease, month, year int, force bool) (*domain.Rent, bool, error) {
	if lease.Status != domain.LeaseStatusActive {
		return nil, false, apperr.Conflictf("lease %d is not active (status %s)", lease.ID, lease.Status)
	}

	daysInMonth := utils.DaysInMonth(year, month)
	firstOfMonth := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	lastOfMonth := time.Date(year, time.Month(month), daysInMonth, 0, 0, 0, 0, time.UTC)

	if lease.StartDate.After(lastOfMonth) {
		return nil, false, apperr.Validationf("lease %d starts after %d-%02d", lease.ID, year, month)
	}
	if lease.EndDate != nil && lease.EndDate.Before(firstOfMonth) {
		return nil, false, apperr.Validationf("lease %d ends before %d-%02d", lease.ID, year, month)
	}

	existing, err := s.rentRepo.GetByPeriod(ctx, lease.ID, month, year)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}
	if existing != nil {
		if !force {
			return existing, false, nil
		}
		count, err := s.paymentRepo.CountByRent(ctx, existing.ID)
		if err != nil {
			return nil, false, err
		}
		if count > 0 {
			return nil, false, apperr.Conflictf("rent %d has payments and cannot be regenerated", existing.ID)
		}
		if err := s.rentRepo.Delete(ctx, existing.ID); err != nil {
			return nil, false, err
		}
	}

	now := time.Now().UTC()
	rent := buildRentForPeriod(lease, month, year, now)

	if err := s.rentRepo.Create(ctx, rent); err != nil {
		return nil, false, err
	}

	entry := &domain.LeaseHistoryEntry{
		LeaseID:     lease.ID,
		Action:      domain.LeaseActionRentGenerated,
		Description: fmt.Sprintf("Rent generated for %s, amount due %.2f", rent.Period(), float64(rent.AmountDueCents)/100),
		Metadata: map[string]string{
			"rent_id": fmt.Sprintf("%d", rent.ID),
			"period":  rent.Period(),
		},
	}
	if err := s.leaseRepo.AppendHistory(ctx, entry); err != nil {
		return nil, false, err
	}

	return rent, true, nil
}

// buildRentForPeriod computes the amount due, due date and initial status
// for one period. The first covered month of a lease that does not start on
// the 1st is prorated by occupied days; monthly charges are always billed in
// full. When the prorated month's due date would land on or before the start
// date, it rolls forward to the next month's due day.
func buildRentForPeriod(lease *domain.Lease, month, year int, now time.Time) *domain.Rent {
	daysInMonth := utils.DaysInMonth(year, month)

	amountDue := lease.MonthlyRentCents + lease.MonthlyChargesCents
	comment := ""
	prorated := false
	if year == lease.StartDate.Year() && time.Month(month) == lease.StartDate.Month() && lease.StartDate.Day() != 1 {
		prorated = true
		startDay := lease.StartDate.Day()
		amountDue = utils.ProrateFirstMonth(lease.MonthlyRentCents, startDay, daysInMonth) + lease.MonthlyChargesCents
		comment = fmt.Sprintf("Prorated rent from %s to %d-%02d-%02d (%d/%d days)",
			lease.StartDate.Format("2006-01-02"), year, month, daysInMonth, daysInMonth-startDay+1, daysInMonth)
	}

	dueDate := utils.DueDateFor(year, month, lease.DueDay)
	if prorated && !dueDate.After(lease.StartDate) {
		// The tenant cannot be billed before moving in; the prorated
		// first invoice shifts to the following month's due day.
		nextYear, nextMonth := utils.NextPeriod(year, month)
		dueDate = utils.DueDateFor(nextYear, nextMonth, lease.DueDay)
	}

	return &domain.Rent{
		LeaseID:        lease.ID,
		Month:          month,
		Year:           year,
		AmountDueCents: amountDue,
		DueDate:        dueDate,
		Status:         utils.DeriveRentStatus(amountDue, 0, dueDate, now),
		Comment:        comment,
	}
}

func (s *rentService) GenerateRange(ctx context.Context, leaseID int32, from, to time.Time) ([]domain.Rent, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("lease %d not found", leaseID)
	}
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, apperr.Validationf("range end precedes range start")
	}

	// The cursor starts at the later of the lease start and the requested
	// range, and stops at the earlier of the range end and the lease end.
	// Every month in between gets an obligation; elapsed months are never
	// skipped, so re-running after downtime cannot leave gaps.
	cursor := from
	if lease.StartDate.After(cursor) {
		cursor = lease.StartDate
	}
	end := to
	if lease.EndDate != nil && lease.EndDate.Before(end) {
		end = *lease.EndDate
	}

	var generated []domain.Rent
	year, month := cursor.Year(), int(cursor.Month())
	endYear, endMonth := end.Year(), int(end.Month())
	for !utils.PeriodAfter(year, month, endYear, endMonth) {
		var rent *domain.Rent
		var created bool
		err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
			var err error
			rent, created, err = s.generateForPeriodTx(ctx, lease, month, year, false)
			return err
		})
		if err != nil {
			return generated, err
		}
		if created {
			generated = append(generated, *rent)
		}
		year, month = utils.NextPeriod(year, month)
	}
	return generated, nil
}

func (s *rentService) GenerateCurrentMonthForAllActive(ctx context.Context) (int, error) {
	leases, err := s.leaseRepo.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())

	generated := 0
	for i := range leases {
		lease := leases[i]
		if lease.StartDate.After(time.Date(year, time.Month(month), utils.DaysInMonth(year, month), 0, 0, 0, 0, time.UTC)) {
			continue
		}
		if lease.EndDate != nil && lease.EndDate.Before(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)) {
			continue
		}
		var created bool
		err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
			var err error
			_, created, err = s.generateForPeriodTx(ctx, &lease, month, year, false)
			return err
		})
		if err != nil {
			logger.Error("Failed to generate monthly rent", "lease_id", lease.ID, "error", err)
			continue
		}
		if created {
			generated++
		}
	}
	return generated, nil
}

func (s *rentService) GetRent(ctx context.Context, id int32) (*domain.Rent, error) {
	rent, err := s.rentRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("rent %d not found", id)
	}
	return rent, err
}

func (s *rentService) ListRentsByLease(ctx context.Context, leaseID int32, page, pageSize int32) ([]domain.Rent, int32, error) {
	return s.rentRepo.ListByLease(ctx, leaseID, page, pageSize)
}

func (s *rentService) ListRentsByStatus(ctx context.Context, status domain.RentStatus, page, pageSize int32) ([]domain.Rent, int32, error) {
	return s.rentRepo.ListByStatus(ctx, status, page, pageSize)
}

func (s *rentService) UpdateRentComment(ctx context.Context, id int32, comment string) (*domain.Rent, error) {
	rent, err := s.GetRent(ctx, id)
	if err != nil {
		return nil, err
	}
	rent.Comment = comment
	if err := s.rentRepo.Update(ctx, rent); err != nil {
		return nil, err
	}
	return rent, nil
}

// DeleteRent removes an obligation. Only unpaid obligations falling after the
// lease's actual end date may be deleted; everything else is financial record.
func (s *rentService) DeleteRent(ctx context.Context, id int32) error {
	rent, err := s.GetRent(ctx, id)
	if err != nil {
		return err
	}
	count, err := s.paymentRepo.CountByRent(ctx, rent.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.Conflictf("rent %d has recorded payments", rent.ID)
	}

	lease, err := s.leaseRepo.GetByID(ctx, rent.LeaseID)
	if err != nil {
		return err
	}
	if lease.ActualEndDate == nil {
		return apperr.Conflictf("rent %d belongs to a lease that is not terminated", rent.ID)
	}
	if !utils.PeriodAfter(rent.Year, rent.Month, lease.ActualEndDate.Year(), int(lease.ActualEndDate.Month())) {
		return apperr.Conflictf("rent %d does not fall after the lease end date", rent.ID)
	}
	return s.rentRepo.Delete(ctx, id)
}
