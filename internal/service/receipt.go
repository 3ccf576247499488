package service

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"time"

	"rentfolio-backend/internal/apperr"
	"rentfolio-backend/internal/domain"
	"rentfolio-backend/internal/logger"
	"rentfolio-backend/internal/renderer"
	"rentfolio-backend/internal/repository"
)

type receiptService struct {
	receiptRepo  repository.ReceiptRepository
	rentRepo     repository.RentRepository
	leaseRepo    repository.LeaseRepository
	propertyRepo repository.PropertyRepository
	tenantRepo   repository.TenantRepository
	renderer     renderer.DocumentRenderer
	email        EmailService
	outputDir    string
	landlordName string
}

func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	rentRepo repository.RentRepository,
	leaseRepo repository.LeaseRepository,
	propertyRepo repository.PropertyRepository,
	tenantRepo repository.TenantRepository,
	docRenderer renderer.DocumentRenderer,
	email EmailService,
	outputDir, landlordName string,
) ReceiptService {
	return &receiptService{
		receiptRepo:  receiptRepo,
		rentRepo:     rentRepo,
		leaseRepo:    leaseRepo,
		propertyRepo: propertyRepo,
		tenantRepo:   tenantRepo,
		renderer:     docRenderer,
		email:        email,
		outputDir:    outputDir,
		landlordName: landlordName,
	}
}

func (s *receiptService) GetReceipt(ctx context.Context, id int32) (*domain.Receipt, error) {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFoundf("receipt %d not found", id)
	}
	return receipt, err
}

func (s *receiptService) ListReceipts(ctx context.Context, page, pageSize int32) ([]domain.Receipt, int32, error) {
	return s.receiptRepo.List(ctx, page, pageSize)
}

// Deliver renders the receipt document and emails it to every tenant on the
// lease. Only the delivery bookkeeping on the receipt row is ever written;
// rents and payments are off limits here.
func (s *receiptService) Deliver(ctx context.Context, receiptID int32) error {
	receipt, err := s.GetReceipt(ctx, receiptID)
	if err != nil {
		return err
	}

	if err := s.deliver(ctx, receipt); err != nil {
		receipt.DeliveryStatus = domain.ReceiptDeliveryFailed
		receipt.DeliveryError = err.Error()
		if updateErr := s.receiptRepo.UpdateDelivery(ctx, receipt); updateErr != nil {
			logger.Error("Failed to record receipt delivery failure", "receipt_id", receipt.ID, "error", updateErr)
		}
		return err
	}

	now := time.Now().UTC()
	receipt.DeliveryStatus = domain.ReceiptDeliverySent
	receipt.SentOn = &now
	receipt.DeliveryError = ""
	return s.receiptRepo.UpdateDelivery(ctx, receipt)
}

func (s *receiptService) deliver(ctx context.Context, receipt *domain.Receipt) error {
	rent, err := s.rentRepo.GetByID(ctx, receipt.RentID)
	if err != nil {
		return err
	}
	lease, err := s.leaseRepo.GetByID(ctx, rent.LeaseID)
	if err != nil {
		return err
	}
	property, err := s.propertyRepo.GetByID(ctx, lease.PropertyID)
	if err != nil {
		return err
	}
	tenants, err := s.tenantRepo.GetByIDs(ctx, lease.TenantIDs)
	if err != nil {
		return err
	}

	var names, recipients []string
	for i := range tenants {
		names = append(names, tenants[i].FullName())
		if tenants[i].Email != "" {
			recipients = append(recipients, tenants[i].Email)
		}
	}
	if len(recipients) == 0 {
		return apperr.Validationf("no tenant on lease %d has an email address", lease.ID)
	}

	if receipt.FileKey == "" {
		key, err := s.renderer.RenderReceipt(renderer.ReceiptData{
			ReceiptID:    receipt.ID,
			PeriodLabel:  receipt.PeriodLabel,
			AmountCents:  receipt.AmountCents,
			PropertyName: property.Name,
			Address:      property.Address,
			TenantNames:  names,
			LandlordName: s.landlordName,
			GeneratedOn:  receipt.GeneratedOn,
		})
		if err != nil {
			return err
		}
		receipt.FileKey = key
	}

	attachment := filepath.Join(s.outputDir, receipt.FileKey)
	return s.email.SendReceipt(ctx, recipients, receipt.PeriodLabel, receipt.AmountCents, attachment)
}

// SendPending retries delivery for every receipt still marked PENDING. The
// nightly job calls this; per-receipt failures are logged and skipped so one
// bad address never stalls the batch.
func (s *receiptService) SendPending(ctx context.Context) (int, error) {
	pending, err := s.receiptRepo.ListPendingDelivery(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range pending {
		if err := s.Deliver(ctx, pending[i].ID); err != nil {
			logger.Error("Pending receipt delivery failed", "receipt_id", pending[i].ID, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}
