package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"rentfolio-backend/internal/apperr"
	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/repository"
	"rentfolio-backend/internal/utils"
)

type loanService struct {
	loanRepo     repository.LoanRepository
	propertyRepo repository.PropertyRepository
}

func NewLoanService(loanRepo repository.LoanRepository, propertyRepo repository.PropertyRepository) LoanService {
	return &loanService{loanRepo: loanRepo, propertyRepo: propertyRepo}
}

func (s *loanService) CreateLoan(ctx context.Context, l *domain.Loan) error {
	if l.PrincipalCents <= 0 {
		return apperr.Validationf("principal must be positive")
	}
	if l.AnnualRateBasisPoints < 0 {
		return apperr.Validationf("annual rate cannot be negative")
	}
	if l.TermMonths <= 0 {
		return apperr.Validationf("term must be at least one month")
	}
	if l.StartDate.IsZero() {
		return apperr.Validationf("start date is required")
	}
	if _, err := s.propertyRepo.GetByID(ctx, l.PropertyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFoundf("property %d not found", l.PropertyID)
		}
		return err
	}
	return s.loanRepo.Create(ctx, l)
}

func (s *loanService) GetLoan(ctx context.Context, id int32) (*domain.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("loan %d not found", id)
	}
	return loan, err
}

func (s *loanService) ListLoansByProperty(ctx context.Context, propertyID int32) ([]domain.Loan, error) {
	return s.loanRepo.ListByProperty(ctx, propertyID)
}

func (s *loanService) DeleteLoan(ctx context.Context, id int32) error {
	if _, err := s.GetLoan(ctx, id); err != nil {
		return err
	}
	return s.loanRepo.Delete(ctx, id)
}

func (s *loanService) Schedule(ctx context.Context, loanID int32) ([]domain.LoanInstallment, error) {
	loan, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return utils.AmortizationSchedule(loan), nil
}

// ExportSchedule renders the amortization schedule as an XLSX workbook and
// returns the file contents together with a suggested filename.
func (s *loanService) ExportSchedule(ctx context.Context, loanID int32) ([]byte, string, error) {
	loan, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return nil, "", err
	}
	schedule := utils.AmortizationSchedule(loan)

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Schedule"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"#", "Due date", "Payment", "Principal", "Interest", "Insurance", "Remaining principal"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, inst := range schedule {
		values := []interface{}{
			inst.Number,
			inst.DueDate.Format("2006-01-02"),
			float64(inst.PaymentCents) / 100,
			float64(inst.PrincipalCents) / 100,
			float64(inst.InterestCents) / 100,
			float64(inst.InsuranceCents) / 100,
			float64(inst.RemainingPrincipalCents) / 100,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("write schedule workbook: %w", err)
	}
	filename := fmt.Sprintf("loan-%d-schedule.xlsx", loan.ID)
	return buf.Bytes(), filename, nil
}
