package utils

import (
	"math"

	"rentfolio-backend/internal/domain"
)

// AnnuityPaymentCents returns the constant monthly payment (principal +
// interest, insurance excluded) for a loan of principalCents over termMonths
// at annualRateBasisPoints. A zero rate degrades to straight-line repayment.
func AnnuityPaymentCents(principalCents int64, annualRateBasisPoints, termMonths int) int64 {
	if termMonths <= 0 {
		return 0
	}
	if annualRateBasisPoints == 0 {
		return (principalCents + int64(termMonths) - 1) / int64(termMonths)
	}
	r := float64(annualRateBasisPoints) / 10000.0 / 12.0
	p := float64(principalCents)
	payment := p * r / (1 - math.Pow(1+r, -float64(termMonths)))
	return int64(math.Round(payment))
}

// AmortizationSchedule expands a loan into its constant-annuity installment
// schedule. Interest is computed on the remaining principal each month; the
// final installment absorbs rounding drift so the principal ends at zero.
func AmortizationSchedule(loan *domain.Loan) []domain.LoanInstallment {
	if loan.TermMonths <= 0 || loan.PrincipalCents <= 0 {
		return nil
	}

	payment := AnnuityPaymentCents(loan.PrincipalCents, loan.AnnualRateBasisPoints, loan.TermMonths)
	monthlyRate := float64(loan.AnnualRateBasisPoints) / 10000.0 / 12.0

	schedule := make([]domain.LoanInstallment, 0, loan.TermMonths)
	remaining := loan.PrincipalCents
	for n := 1; n <= loan.TermMonths; n++ {
		interest := int64(math.Round(float64(remaining) * monthlyRate))
		principal := payment - interest
		if n == loan.TermMonths || principal > remaining {
			// Final installment clears whatever is left.
			principal = remaining
		}
		remaining -= principal

		schedule = append(schedule, domain.LoanInstallment{
			Number:                  n,
			DueDate:                 loan.StartDate.AddDate(0, n, 0),
			PaymentCents:            principal + interest,
			PrincipalCents:          principal,
			InterestCents:           interest,
			InsuranceCents:          loan.MonthlyInsuranceCents,
			RemainingPrincipalCents: remaining,
		})
		if remaining == 0 && n < loan.TermMonths {
			break
		}
	}
	return schedule
}
