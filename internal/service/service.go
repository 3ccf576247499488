package service

import (
	"context"
	"time"

	"rentfolio-backend/internal/domain"
)

type PropertyService interface {
	CreateProperty(ctx context.Context, p *domain.Property) error
	GetProperty(ctx context.Context, id int32) (*domain.Property, error)
	UpdateProperty(ctx context.Context, p *domain.Property) error
	DeleteProperty(ctx context.Context, id int32) error
	ListProperties(ctx context.Context, page, pageSize int32) ([]domain.Property, int32, error)
}

type TenantService interface {
	CreateTenant(ctx context.Context, t *domain.Tenant) error
	GetTenant(ctx context.Context, id int32) (*domain.Tenant, error)
	UpdateTenant(ctx context.Context, t *domain.Tenant) error
	DeleteTenant(ctx context.Context, id int32) error
	ListTenants(ctx context.Context, page, pageSize int32) ([]domain.Tenant, int32, error)
}

// TerminationResult is returned by Terminate: the updated lease, the
// prorated final rent (nil when the lease ends on a month boundary) and the
// id of the adjusted rent obligation (nil when none existed for that month).
type TerminationResult struct {
	Lease              *domain.Lease `json:"lease"`
	ProratedRentCents  *int64        `json:"prorated_rent_cents"`
	AdjustedRentID     *int32        `json:"adjusted_rent_id"`
	DeletedFutureRents int64         `json:"deleted_future_rents"`
}

// TerminationPreview carries the same arithmetic as Terminate without any
// mutation, for UI confirmation screens.
type TerminationPreview struct {
	EndDate            time.Time `json:"end_date"`
	DayOfMonth         int       `json:"day_of_month"`
	DaysInMonth        int       `json:"days_in_month"`
	FullMonth          bool      `json:"full_month"`
	ProratedRentCents  *int64    `json:"prorated_rent_cents"`
	FinalAmountCents   int64     `json:"final_amount_cents"`
	FutureRentsDropped int32     `json:"future_rents_dropped"`
}

type LeaseService interface {
	CreateLease(ctx context.Context, l *domain.Lease) error
	GetLease(ctx context.Context, id int32) (*domain.Lease, error)
	ListLeases(ctx context.Context, propertyID int32, status string, page, pageSize int32) ([]domain.Lease, int32, error)
	UpdateLease(ctx context.Context, l *domain.Lease) error
	SuspendLease(ctx context.Context, id int32, reason string) (*domain.Lease, error)
	ReactivateLease(ctx context.Context, id int32) (*domain.Lease, error)
	DeleteLease(ctx context.Context, id int32) error
	ListHistory(ctx context.Context, leaseID int32, page, pageSize int32) ([]domain.LeaseHistoryEntry, int32, error)

	Terminate(ctx context.Context, leaseID int32, actualEndDate time.Time, reason string, requestDate *time.Time, noticeRespected *bool, comment string) (*TerminationResult, error)
	PreviewTermination(ctx context.Context, leaseID int32, proposedEndDate time.Time) (*TerminationPreview, error)
}

type RentService interface {
	// GenerateForPeriod creates the rent obligation for (lease, month, year).
	// The returned bool is false when an obligation already existed and was
	// left untouched (force not set).
	GenerateForPeriod(ctx context.Context, leaseID int32, month, year int, force bool) (*domain.Rent, bool, error)
	GenerateRange(ctx context.Context, leaseID int32, from, to time.Time) ([]domain.Rent, error)
	GenerateCurrentMonthForAllActive(ctx context.Context) (int, error)

	GetRent(ctx context.Context, id int32) (*domain.Rent, error)
	ListRentsByLease(ctx context.Context, leaseID int32, page, pageSize int32) ([]domain.Rent, int32, error)
	ListRentsByStatus(ctx context.Context, status domain.RentStatus, page, pageSize int32) ([]domain.Rent, int32, error)
	UpdateRentComment(ctx context.Context, id int32, comment string) (*domain.Rent, error)
	DeleteRent(ctx context.Context, id int32) error
}

type PaymentService interface {
	RecordPayment(ctx context.Context, rentID int32, amountCents int64, paidOn time.Time, mode domain.PaymentMode, payer, reference, comment string) (*domain.Payment, *domain.Rent, error)
	AmendPayment(ctx context.Context, paymentID int32, amountCents *int64, paidOn *time.Time, mode *domain.PaymentMode, payer, reference, comment *string) (*domain.Payment, *domain.Rent, error)
	DeletePayment(ctx context.Context, paymentID int32) (*domain.Rent, error)
	ListPayments(ctx context.Context, rentID int32) ([]domain.Payment, error)
}

type ReceiptService interface {
	GetReceipt(ctx context.Context, id int32) (*domain.Receipt, error)
	ListReceipts(ctx context.Context, page, pageSize int32) ([]domain.Receipt, int32, error)
	// Deliver renders the receipt document and emails it to the lease's
	// tenants, recording the outcome on the receipt row only.
	Deliver(ctx context.Context, receiptID int32) error
	SendPending(ctx context.Context) (int, error)
}

// ReceiptDeliverer is the slice of ReceiptService the payment ledger needs
// for post-commit delivery.
type ReceiptDeliverer interface {
	Deliver(ctx context.Context, receiptID int32) error
}

type ReminderService interface {
	CreateReminder(ctx context.Context, rentID int32, kind domain.ReminderType, recipients []string, subject, message string, scheduledOn time.Time) (*domain.Reminder, error)
	ListReminders(ctx context.Context, rentID int32) ([]domain.Reminder, error)
	SendDue(ctx context.Context) (int, error)
}

type LoanService interface {
	CreateLoan(ctx context.Context, l *domain.Loan) error
	GetLoan(ctx context.Context, id int32) (*domain.Loan, error)
	ListLoansByProperty(ctx context.Context, propertyID int32) ([]domain.Loan, error)
	DeleteLoan(ctx context.Context, id int32) error
	Schedule(ctx context.Context, loanID int32) ([]domain.LoanInstallment, error)
	// ExportSchedule returns the amortization schedule as an XLSX workbook.
	ExportSchedule(ctx context.Context, loanID int32) ([]byte, string, error)
}

type EmailService interface {
	SendReceipt(ctx context.Context, recipients []string, periodLabel string, amountCents int64, attachmentPath string) error
	SendReminder(ctx context.Context, recipients []string, subject, body string) error
}
