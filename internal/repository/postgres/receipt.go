package postgres

import (
	"context"
	"database/sql"

	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/repository"
)

type receiptRepository struct {
	db *sql.DB
}

func NewReceiptRepository(db *sql.DB) repository.ReceiptRepository {
	return &receiptRepository{db: db}
}

const receiptColumns = `id, rent_id, period_label, amount_cents, file_key, generated_on, sent_on, delivery_status, delivery_error`

func scanReceipt(row interface{ Scan(...interface{}) error }) (*domain.Receipt, error) {
	rc := &domain.Receipt{}
	var sentOn sql.NullTime
	err := row.Scan(&rc.ID, &rc.RentID, &rc.PeriodLabel, &rc.AmountCents, &rc.FileKey, &rc.GeneratedOn, &sentOn, &rc.DeliveryStatus, &rc.DeliveryError)
	if err != nil {
		return nil, err
	}
	if sentOn.Valid {
		rc.SentOn = &sentOn.Time
	}
	return rc, nil
}

func (r *receiptRepository) Create(ctx context.Context, rc *domain.Receipt) error {
	query := `INSERT INTO receipts (rent_id, period_label, amount_cents, file_key, generated_on, delivery_status, delivery_error)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return conn(ctx, r.db).QueryRowContext(ctx, query, rc.RentID, rc.PeriodLabel, rc.AmountCents, rc.FileKey, rc.GeneratedOn, rc.DeliveryStatus, rc.DeliveryError).Scan(&rc.ID)
}

func (r *receiptRepository) GetByID(ctx context.Context, id int32) (*domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE id = $1`
	return scanReceipt(conn(ctx, r.db).QueryRowContext(ctx, query, id))
}

func (r *receiptRepository) GetByRent(ctx context.Context, rentID int32) (*domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE rent_id = $1`
	return scanReceipt(conn(ctx, r.db).QueryRowContext(ctx, query, rentID))
}

func (r *receiptRepository) UpdateDelivery(ctx context.Context, rc *domain.Receipt) error {
	query := `UPDATE receipts SET file_key=$1, sent_on=$2, delivery_status=$3, delivery_error=$4 WHERE id=$5`
	var sentOn interface{}
	if rc.SentOn != nil {
		sentOn = *rc.SentOn
	}
	_, err := conn(ctx, r.db).ExecContext(ctx, query, rc.FileKey, sentOn, rc.DeliveryStatus, rc.DeliveryError, rc.ID)
	return err
}

func (r *receiptRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Receipt, int32, error) {
	var count int32
	if err := conn(ctx, r.db).QueryRowContext(ctx, `SELECT count(*) FROM receipts`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + receiptColumns + ` FROM receipts ORDER BY generated_on DESC LIMIT $1 OFFSET $2`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var receipts []domain.Receipt
	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			return nil, 0, err
		}
		receipts = append(receipts, *rc)
	}
	return receipts, count, rows.Err()
}

func (r *receiptRepository) ListPendingDelivery(ctx context.Context) ([]domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE delivery_status = $1 ORDER BY generated_on ASC`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, domain.ReceiptDeliveryPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []domain.Receipt
	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, *rc)
	}
	return receipts, rows.Err()
}
