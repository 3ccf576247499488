package domain

import "time"

type LeaseStatus string

const (
	LeaseStatusActive     LeaseStatus = "ACTIVE"
	LeaseStatusTerminated LeaseStatus = "TERMINATED"
	LeaseStatusExpired    LeaseStatus = "EXPIRED"
	LeaseStatusSuspended  LeaseStatus = "SUSPENDED"
)

type Lease struct {
	ID                  int32       `json:"id"`
	PropertyID          int32       `json:"property_id"`
	TenantIDs           []int32     `json:"tenant_ids"`
	StartDate           time.Time   `json:"start_date"`
	EndDate             *time.Time  `json:"end_date,omitempty"`
	ActualEndDate       *time.Time  `json:"actual_end_date,omitempty"`
	MonthlyRentCents    int64       `json:"monthly_rent_cents"`
	MonthlyChargesCents int64       `json:"monthly_charges_cents"`
	DueDay              int         `json:"due_day"`
	Status              LeaseStatus `json:"status"`
	TerminationReason   string      `json:"termination_reason,omitempty"`
	TerminationDate     *time.Time  `json:"termination_date,omitempty"`
	NoticeRespected     bool        `json:"notice_respected"`
	CreatedOn           time.Time   `json:"created_on"`
	UpdatedOn           time.Time   `json:"updated_on"`
}

// Lease history actions recorded in the append-only log.
const (
	LeaseActionCreated       = "LEASE_CREATED"
	LeaseActionUpdated       = "LEASE_UPDATED"
	LeaseActionSuspended     = "LEASE_SUSPENDED"
	LeaseActionReactivated   = "LEASE_REACTIVATED"
	LeaseActionTerminated    = "LEASE_TERMINATED"
	LeaseActionRentGenerated = "RENT_GENERATED"
	LeaseActionPaymentMade   = "PAYMENT_RECORDED"
	LeaseActionReceiptIssued = "RECEIPT_ISSUED"
)

type LeaseHistoryEntry struct {
	ID          int32             `json:"id"`
	LeaseID     int32             `json:"lease_id"`
	Action      string            `json:"action"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedOn   time.Time         `json:"created_on"`
}
