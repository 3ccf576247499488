package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentfolio-backend/internal/apperr"
	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/utils"
)

// finalMonthAmount computes the amount owed for a termination month ending on
// endDate. The rent is prorated by occupied days unless the lease runs
// through the last day of the month; charges are billed in full either way.
// The second return is the prorated rent alone, nil for a full month.
func finalMonthAmount(lease *domain.Lease, endDate time.Time) (int64, *int64) {
	year, month, day := endDate.Year(), int(endDate.Month()), endDate.Day()
	daysInMonth := utils.DaysInMonth(year, month)
	if day >= daysInMonth {
		return lease.MonthlyRentCents + lease.MonthlyChargesCents, nil
	}
	prorated := utils.ProrateFinalMonth(lease.MonthlyRentCents, day, daysInMonth)
	return prorated + lease.MonthlyChargesCents, &prorated
}

func (s *leaseService) Terminate(ctx context.Context, leaseID int32, actualEndDate time.Time, reason string, requestDate *time.Time, noticeRespected *bool, comment string) (*TerminationResult, error) {
	lease, err := s.GetLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if lease.Status == domain.LeaseStatusTerminated || lease.ActualEndDate != nil {
		return nil, apperr.Conflictf("lease %d is already terminated", leaseID)
	}
	if actualEndDate.Before(lease.StartDate) {
		return nil, apperr.Validationf("end date precedes lease start date")
	}
	if requestDate != nil && actualEndDate.Before(*requestDate) {
		return nil, apperr.Validationf("end date precedes the termination request date")
	}

	reqDate := time.Now().UTC()
	if requestDate != nil {
		reqDate = *requestDate
	}
	notice := true
	if noticeRespected != nil {
		notice = *noticeRespected
	}

	finalAmount, prorated := finalMonthAmount(lease, actualEndDate)
	endYear, endMonth := actualEndDate.Year(), int(actualEndDate.Month())

	result := &TerminationResult{ProratedRentCents: prorated}
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// Overwrite the termination month's obligation, when one exists,
		// with the prorated amount. Paid totals are kept; the status is
		// re-derived so a rent already covered flips straight to PAID.
		rent, err := s.rentRepo.GetByPeriod(ctx, leaseID, endMonth, endYear)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if rent != nil {
			rent.AmountDueCents = finalAmount
			if prorated != nil {
				rent.Comment = fmt.Sprintf("Adjusted for lease termination on %s (%d/%d days)",
					actualEndDate.Format("2006-01-02"), actualEndDate.Day(), utils.DaysInMonth(endYear, endMonth))
			}
			rent.Status = utils.DeriveRentStatus(rent.AmountDueCents, rent.AmountPaidCents, rent.DueDate, time.Now().UTC())
			if err := s.rentRepo.Update(ctx, rent); err != nil {
				return err
			}
			result.AdjustedRentID = &rent.ID
		}

		deleted, err := s.rentRepo.DeleteAfterPeriod(ctx, leaseID, endYear, endMonth)
		if err != nil {
			return err
		}
		result.DeletedFutureRents = deleted

		end := actualEndDate
		lease.Status = domain.LeaseStatusTerminated
		lease.ActualEndDate = &end
		lease.TerminationReason = reason
		lease.TerminationDate = &reqDate
		lease.NoticeRespected = notice
		if err := s.leaseRepo.Update(ctx, lease); err != nil {
			return err
		}

		entry := &domain.LeaseHistoryEntry{
			LeaseID:     leaseID,
			Action:      domain.LeaseActionTerminated,
			Description: fmt.Sprintf("Lease terminated effective %s: %s", actualEndDate.Format("2006-01-02"), reason),
			Metadata: map[string]string{
				"end_date":             actualEndDate.Format("2006-01-02"),
				"deleted_future_rents": fmt.Sprintf("%d", deleted),
			},
		}
		if prorated != nil {
			entry.Metadata["prorated_rent_cents"] = fmt.Sprintf("%d", *prorated)
		}
		if comment != "" {
			entry.Metadata["comment"] = comment
		}
		return s.leaseRepo.AppendHistory(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	result.Lease = lease
	return result, nil
}

// PreviewTermination runs the termination arithmetic without touching
// anything, so the result always matches what Terminate would do.
func (s *leaseService) PreviewTermination(ctx context.Context, leaseID int32, proposedEndDate time.Time) (*TerminationPreview, error) {
	lease, err := s.GetLease(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if lease.Status == domain.LeaseStatusTerminated || lease.ActualEndDate != nil {
		return nil, apperr.Conflictf("lease %d is already terminated", leaseID)
	}
	if proposedEndDate.Before(lease.StartDate) {
		return nil, apperr.Validationf("end date precedes lease start date")
	}

	finalAmount, prorated := finalMonthAmount(lease, proposedEndDate)
	endYear, endMonth := proposedEndDate.Year(), int(proposedEndDate.Month())
	daysInMonth := utils.DaysInMonth(endYear, endMonth)

	rents, _, err := s.rentRepo.ListByLease(ctx, leaseID, 1, 10000)
	if err != nil {
		return nil, err
	}
	var futureDropped int32
	for i := range rents {
		if utils.PeriodAfter(rents[i].Year, rents[i].Month, endYear, endMonth) {
			futureDropped++
		}
	}

	return &TerminationPreview{
		EndDate:            proposedEndDate,
		DayOfMonth:         proposedEndDate.Day(),
		DaysInMonth:        daysInMonth,
		FullMonth:          prorated == nil,
		ProratedRentCents:  prorated,
		FinalAmountCents:   finalAmount,
		FutureRentsDropped: futureDropped,
	}, nil
}
