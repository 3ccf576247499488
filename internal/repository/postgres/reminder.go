package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/repository"

	"github.com/lib/pq"
)

type reminderRepository struct {
	db *sql.DB
}

func NewReminderRepository(db *sql.DB) repository.ReminderRepository {
	return &reminderRepository{db: db}
}

const reminderColumns = `id, rent_id, type, recipients, subject, message, scheduled_on, sent_on, sent, delivery_error, created_on`

func scanReminder(row interface{ Scan(...interface{}) error }) (*domain.Reminder, error) {
	rm := &domain.Reminder{}
	var sentOn sql.NullTime
	var recipients pq.StringArray
	err := row.Scan(&rm.ID, &rm.RentID, &rm.Type, &recipients, &rm.Subject, &rm.Message, &rm.ScheduledOn, &sentOn, &rm.Sent, &rm.DeliveryError, &rm.CreatedOn)
	if err != nil {
		return nil, err
	}
	rm.Recipients = []string(recipients)
	if sentOn.Valid {
		rm.SentOn = &sentOn.Time
	}
	return rm, nil
}

func (r *reminderRepository) Create(ctx context.Context, rm *domain.Reminder) error {
	query := `INSERT INTO reminders (rent_id, type, recipients, subject, message, scheduled_on, sent, delivery_error, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return conn(ctx, r.db).QueryRowContext(ctx, query, rm.RentID, rm.Type, pq.Array(rm.Recipients), rm.Subject, rm.Message, rm.ScheduledOn, rm.Sent, rm.DeliveryError, time.Now()).Scan(&rm.ID)
}

func (r *reminderRepository) GetByID(ctx context.Context, id int32) (*domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE id = $1`
	return scanReminder(conn(ctx, r.db).QueryRowContext(ctx, query, id))
}

func (r *reminderRepository) Update(ctx context.Context, rm *domain.Reminder) error {
	query := `UPDATE reminders SET type=$1, recipients=$2, subject=$3, message=$4, scheduled_on=$5, sent_on=$6, sent=$7, delivery_error=$8 WHERE id=$9`
	var sentOn interface{}
	if rm.SentOn != nil {
		sentOn = *rm.SentOn
	}
	_, err := conn(ctx, r.db).ExecContext(ctx, query, rm.Type, pq.Array(rm.Recipients), rm.Subject, rm.Message, rm.ScheduledOn, sentOn, rm.Sent, rm.DeliveryError, rm.ID)
	return err
}

func (r *reminderRepository) ListByRent(ctx context.Context, rentID int32) ([]domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE rent_id = $1 ORDER BY scheduled_on DESC`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, rentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []domain.Reminder
	for rows.Next() {
		rm, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, *rm)
	}
	return reminders, rows.Err()
}

func (r *reminderRepository) ListDue(ctx context.Context, now time.Time) ([]domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE sent = false AND scheduled_on <= $1 ORDER BY scheduled_on ASC`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []domain.Reminder
	for rows.Next() {
		rm, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, *rm)
	}
	return reminders, rows.Err()
}
