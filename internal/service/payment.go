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
	"rentfolio-backend/internal/utils"
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	rentRepo    repository.RentRepository
	leaseRepo   repository.LeaseRepository
	receiptRepo repository.ReceiptRepository
	tx          repository.Transactor
	deliverer   ReceiptDeliverer
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	rentRepo repository.RentRepository,
	leaseRepo repository.LeaseRepository,
	receiptRepo repository.ReceiptRepository,
	tx repository.Transactor,
	deliverer ReceiptDeliverer,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		rentRepo:    rentRepo,
		leaseRepo:   leaseRepo,
		receiptRepo: receiptRepo,
		tx:          tx,
		deliverer:   deliverer,
	}
}

func (s *paymentService) RecordPayment(ctx context.Context, rentID int32, amountCents int64, paidOn time.Time, mode domain.PaymentMode, payer, reference, comment string) (*domain.Payment, *domain.Rent, error) {
	if amountCents <= 0 {
		return nil, nil, apperr.Validationf("payment amount must be positive")
	}
	if !domain.ValidPaymentMode(mode) {
		return nil, nil, apperr.Validationf("invalid payment mode: %s", mode)
	}
	if paidOn.IsZero() {
		return nil, nil, apperr.Validationf("payment date is required")
	}
	if payer == "" {
		return nil, nil, apperr.Validationf("payer is required")
	}

	var payment *domain.Payment
	var rent *domain.Rent
	var newReceiptID int32
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		rent, err = s.rentRepo.GetByID(ctx, rentID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFoundf("rent %d not found", rentID)
		}
		if err != nil {
			return err
		}

		payment = &domain.Payment{
			RentID:      rentID,
			AmountCents: amountCents,
			PaidOn:      paidOn,
			Mode:        mode,
			Payer:       payer,
			Reference:   reference,
			Comment:     comment,
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		entry := &domain.LeaseHistoryEntry{
			LeaseID: rent.LeaseID,
			Action:  domain.LeaseActionPaymentMade,
			Description: fmt.Sprintf("Payment of %.2f (%s) by %s recorded for rent %s",
				float64(amountCents)/100, mode, payer, rent.Period()),
			Metadata: map[string]string{
				"rent_id":      fmt.Sprintf("%d", rent.ID),
				"payment_id":   fmt.Sprintf("%d", payment.ID),
				"amount_cents": fmt.Sprintf("%d", amountCents),
			},
		}
		if err := s.leaseRepo.AppendHistory(ctx, entry); err != nil {
			return err
		}

		newReceiptID, err = s.settleRent(ctx, rent)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	if rent.AmountPaidCents > rent.AmountDueCents {
		logger.Warn("Rent is overpaid",
			"rent_id", rent.ID,
			"amount_due_cents", rent.AmountDueCents,
			"amount_paid_cents", rent.AmountPaidCents)
	}
	s.deliverAsync(newReceiptID)
	return payment, rent, nil
}

func (s *paymentService) AmendPayment(ctx context.Context, paymentID int32, amountCents *int64, paidOn *time.Time, mode *domain.PaymentMode, payer, reference, comment *string) (*domain.Payment, *domain.Rent, error) {
	if amountCents != nil && *amountCents <= 0 {
		return nil, nil, apperr.Validationf("payment amount must be positive")
	}
	if mode != nil && !domain.ValidPaymentMode(*mode) {
		return nil, nil, apperr.Validationf("invalid payment mode: %s", *mode)
	}

	var payment *domain.Payment
	var rent *domain.Rent
	var newReceiptID int32
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		payment, err = s.paymentRepo.GetByID(ctx, paymentID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFoundf("payment %d not found", paymentID)
		}
		if err != nil {
			return err
		}

		if amountCents != nil {
			payment.AmountCents = *amountCents
		}
		if paidOn != nil {
			payment.PaidOn = *paidOn
		}
		if mode != nil {
			payment.Mode = *mode
		}
		if payer != nil {
			payment.Payer = *payer
		}
		if reference != nil {
			payment.Reference = *reference
		}
		if comment != nil {
			payment.Comment = *comment
		}
		if err := s.paymentRepo.Update(ctx, payment); err != nil {
			return err
		}

		rent, err = s.rentRepo.GetByID(ctx, payment.RentID)
		if err != nil {
			return err
		}
		newReceiptID, err = s.settleRent(ctx, rent)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	s.deliverAsync(newReceiptID)
	return payment, rent, nil
}

func (s *paymentService) DeletePayment(ctx context.Context, paymentID int32) (*domain.Rent, error) {
	var rent *domain.Rent
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		payment, err := s.paymentRepo.GetByID(ctx, paymentID)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFoundf("payment %d not found", paymentID)
		}
		if err != nil {
			return err
		}
		if err := s.paymentRepo.Delete(ctx, paymentID); err != nil {
			return err
		}

		rent, err = s.rentRepo.GetByID(ctx, payment.RentID)
		if err != nil {
			return err
		}
		_, err = s.settleRent(ctx, rent)
		return err
	})
	return rent, err
}

func (s *paymentService) ListPayments(ctx context.Context, rentID int32) ([]domain.Payment, error) {
	return s.paymentRepo.ListByRent(ctx, rentID)
}

// settleRent recomputes the rent's paid total from the ledger and derives its
// status. The first transition into PAID creates the receipt; the
// lookup-before-create guard keeps it a one-time event no matter how the
// ledger is later amended. Returns the id of a receipt created by this call,
// or zero.
func (s *paymentService) settleRent(ctx context.Context, rent *domain.Rent) (int32, error) {
	paid, err := s.paymentRepo.SumByRent(ctx, rent.ID)
	if err != nil {
		return 0, err
	}
	rent.AmountPaidCents = paid
	rent.Status = utils.DeriveRentStatus(rent.AmountDueCents, paid, rent.DueDate, time.Now().UTC())
	if err := s.rentRepo.Update(ctx, rent); err != nil {
		return 0, err
	}

	if rent.Status != domain.RentStatusPaid {
		return 0, nil
	}
	existing, err := s.receiptRepo.GetByRent(ctx, rent.ID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	if existing != nil {
		return 0, nil
	}

	receipt := &domain.Receipt{
		RentID:         rent.ID,
		PeriodLabel:    rent.Period(),
		AmountCents:    rent.AmountPaidCents,
		GeneratedOn:    time.Now().UTC(),
		DeliveryStatus: domain.ReceiptDeliveryPending,
	}
	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return 0, err
	}

	entry := &domain.LeaseHistoryEntry{
		LeaseID:     rent.LeaseID,
		Action:      domain.LeaseActionReceiptIssued,
		Description: fmt.Sprintf("Rent %s fully paid, receipt %d issued", rent.Period(), receipt.ID),
		Metadata: map[string]string{
			"rent_id":    fmt.Sprintf("%d", rent.ID),
			"receipt_id": fmt.Sprintf("%d", receipt.ID),
		},
	}
	if err := s.leaseRepo.AppendHistory(ctx, entry); err != nil {
		return 0, err
	}
	return receipt.ID, nil
}

// deliverAsync hands a freshly created receipt to the deliverer after the
// transaction has committed. Delivery failures never surface to the caller;
// they land on the receipt row and the pending-receipts job retries them.
func (s *paymentService) deliverAsync(receiptID int32) {
	if receiptID == 0 || s.deliverer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.deliverer.Deliver(ctx, receiptID); err != nil {
			logger.Error("Receipt delivery failed", "receipt_id", receiptID, "error", err)
		}
	}()
}
