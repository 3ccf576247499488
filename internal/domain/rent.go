package domain

import "time"

type RentStatus string

const (
	RentStatusPending RentStatus = "PENDING"
	RentStatusPartial RentStatus = "PARTIAL"
	RentStatusPaid    RentStatus = "PAID"
	RentStatusLate    RentStatus = "LATE"
)

// Rent is one month's billed amount under a lease.
// At most one row exists per (lease_id, month, year).
type Rent struct {
	ID              int32      `json:"id"`
	LeaseID         int32      `json:"lease_id"`
	Month           int        `json:"month"`
	Year            int        `json:"year"`
	AmountDueCents  int64      `json:"amount_due_cents"`
	AmountPaidCents int64      `json:"amount_paid_cents"`
	DueDate         time.Time  `json:"due_date"`
	Status          RentStatus `json:"status"`
	Comment         string     `json:"comment,omitempty"`
	CreatedOn       time.Time  `json:"created_on"`
	UpdatedOn       time.Time  `json:"updated_on"`
}

// Period returns the obligation's calendar period as "YYYY-MM".
func (r Rent) Period() string {
	return time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
