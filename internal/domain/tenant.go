package domain

import "time"

type Tenant struct {
	ID        int32     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// FullName returns the tenant's display name used in receipts and reminders.
func (t Tenant) FullName() string {
	return t.FirstName + " " + t.LastName
}
