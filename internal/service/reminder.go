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
)

type reminderService struct {
	reminderRepo repository.ReminderRepository
	rentRepo     repository.RentRepository
	leaseRepo    repository.LeaseRepository
	tenantRepo   repository.TenantRepository
	email        EmailService
}

func NewReminderService(
	reminderRepo repository.ReminderRepository,
	rentRepo repository.RentRepository,
	leaseRepo repository.LeaseRepository,
	tenantRepo repository.TenantRepository,
	email EmailService,
) ReminderService {
	return &reminderService{
		reminderRepo: reminderRepo,
		rentRepo:     rentRepo,
		leaseRepo:    leaseRepo,
		tenantRepo:   tenantRepo,
		email:        email,
	}
}

// defaultSubject and defaultBody fill in boilerplate per reminder type so
// the caller only has to override the text when it matters.
func defaultSubject(kind domain.ReminderType, period string) string {
	switch kind {
	case domain.ReminderTypeLate:
		return fmt.Sprintf("Rent payment overdue for %s", period)
	case domain.ReminderTypeFollowUp:
		return fmt.Sprintf("Reminder: rent for %s still outstanding", period)
	case domain.ReminderTypeFormalNotice:
		return fmt.Sprintf("Formal notice: unpaid rent for %s", period)
	default:
		return fmt.Sprintf("Regarding your rent for %s", period)
	}
}

func defaultBody(kind domain.ReminderType, rent *domain.Rent) string {
	outstanding := float64(rent.AmountDueCents-rent.AmountPaidCents) / 100
	switch kind {
	case domain.ReminderTypeLate:
		return fmt.Sprintf("Our records show the rent for %s (%.2f outstanding, due %s) has not been received. Please arrange payment at your earliest convenience.",
			rent.Period(), outstanding, rent.DueDate.Format("2006-01-02"))
	case domain.ReminderTypeFollowUp:
		return fmt.Sprintf("This is a follow-up regarding the rent for %s. An amount of %.2f remains outstanding.",
			rent.Period(), outstanding)
	case domain.ReminderTypeFormalNotice:
		return fmt.Sprintf("Despite previous reminders, the rent for %s remains unpaid (%.2f outstanding). This message constitutes a formal notice to pay.",
			rent.Period(), outstanding)
	default:
		return fmt.Sprintf("This message concerns your rent for %s.", rent.Period())
	}
}

func (s *reminderService) CreateReminder(ctx context.Context, rentID int32, kind domain.ReminderType, recipients []string, subject, message string, scheduledOn time.Time) (*domain.Reminder, error) {
	if !domain.ValidReminderType(kind) {
		return nil, apperr.Validationf("invalid reminder type: %s", kind)
	}

	rent, err := s.rentRepo.GetByID(ctx, rentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("rent %d not found", rentID)
	}
	if err != nil {
		return nil, err
	}

	if len(recipients) == 0 {
		recipients, err = s.tenantEmails(ctx, rent.LeaseID)
		if err != nil {
			return nil, err
		}
	}
	if len(recipients) == 0 {
		return nil, apperr.Validationf("no recipients for reminder on rent %d", rentID)
	}
	if subject == "" {
		subject = defaultSubject(kind, rent.Period())
	}
	if message == "" {
		message = defaultBody(kind, rent)
	}
	if scheduledOn.IsZero() {
		scheduledOn = time.Now().UTC()
	}

	reminder := &domain.Reminder{
		RentID:      rentID,
		Type:        kind,
		Recipients:  recipients,
		Subject:     subject,
		Message:     message,
		ScheduledOn: scheduledOn,
	}
	if err := s.reminderRepo.Create(ctx, reminder); err != nil {
		return nil, err
	}
	return reminder, nil
}

func (s *reminderService) tenantEmails(ctx context.Context, leaseID int32) ([]string, error) {
	lease, err := s.leaseRepo.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	tenants, err := s.tenantRepo.GetByIDs(ctx, lease.TenantIDs)
	if err != nil {
		return nil, err
	}
	var emails []string
	for i := range tenants {
		if tenants[i].Email != "" {
			emails = append(emails, tenants[i].Email)
		}
	}
	return emails, nil
}

func (s *reminderService) ListReminders(ctx context.Context, rentID int32) ([]domain.Reminder, error) {
	return s.reminderRepo.ListByRent(ctx, rentID)
}

// SendDue dispatches every unsent reminder whose scheduled time has passed.
// Outcomes land on the reminder row; a failed send is retried on the next
// run because the sent flag stays false.
func (s *reminderService) SendDue(ctx context.Context) (int, error) {
	due, err := s.reminderRepo.ListDue(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range due {
		reminder := due[i]
		if err := s.email.SendReminder(ctx, reminder.Recipients, reminder.Subject, reminder.Message); err != nil {
			logger.Error("Reminder delivery failed", "reminder_id", reminder.ID, "error", err)
			reminder.DeliveryError = err.Error()
			if updateErr := s.reminderRepo.Update(ctx, &reminder); updateErr != nil {
				logger.Error("Failed to record reminder delivery failure", "reminder_id", reminder.ID, "error", updateErr)
			}
			continue
		}
		now := time.Now().UTC()
		reminder.Sent = true
		reminder.SentOn = &now
		reminder.DeliveryError = ""
		if err := s.reminderRepo.Update(ctx, &reminder); err != nil {
			logger.Error("Failed to mark reminder sent", "reminder_id", reminder.ID, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}
