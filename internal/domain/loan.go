package domain

import "time"

// Loan is a mortgage attached to a property. The amortization schedule is
// derived from these terms on demand, it is not stored.
type Loan struct {
	ID                    int32     `json:"id"`
	PropertyID            int32     `json:"property_id"`
	Lender                string    `json:"lender"`
	PrincipalCents        int64     `json:"principal_cents"`
	AnnualRateBasisPoints int       `json:"annual_rate_basis_points"`
	MonthlyInsuranceCents int64     `json:"monthly_insurance_cents"`
	StartDate             time.Time `json:"start_date"`
	TermMonths            int       `json:"term_months"`
	CreatedOn             time.Time `json:"created_on"`
	UpdatedOn             time.Time `json:"updated_on"`
}

// LoanInstallment is one line of a constant-annuity amortization schedule.
type LoanInstallment struct {
	Number                  int       `json:"number"`
	DueDate                 time.Time `json:"due_date"`
	PaymentCents            int64     `json:"payment_cents"`
	PrincipalCents          int64     `json:"principal_cents"`
	InterestCents           int64     `json:"interest_cents"`
	InsuranceCents          int64     `json:"insurance_cents"`
	RemainingPrincipalCents int64     `json:"remaining_principal_cents"`
}
