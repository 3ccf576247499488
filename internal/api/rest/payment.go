package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"rentfolio-backend/internal/domain"
)

type recordPaymentRequest struct {
	AmountCents int64  `json:"amount_cents"`
	PaidOn      string `json:"paid_on"`
	Mode        string `json:"mode"`
	Payer       string `json:"payer,omitempty"`
	Reference   string `json:"reference,omitempty"`
	Comment     string `json:"comment,omitempty"`
}

type paymentResponse struct {
	Payment *domain.Payment `json:"payment"`
	Rent    *domain.Rent    `json:"rent"`
	Warning string          `json:"warning,omitempty"`
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	rentID, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid rent id")
		return
	}
	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	paidOn, err := time.Parse("2006-01-02", req.PaidOn)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid paid_on date, expected YYYY-MM-DD")
		return
	}

	payment, rent, err := h.payments.RecordPayment(r.Context(), rentID, req.AmountCents, paidOn, domain.PaymentMode(req.Mode), req.Payer, req.Reference, req.Comment)
	if err != nil {
		ServiceError(w, err)
		return
	}

	resp := paymentResponse{Payment: payment, Rent: rent}
	if rent.AmountPaidCents > rent.AmountDueCents {
		resp.Warning = "rent is overpaid"
	}
	Created(w, resp)
}

type amendPaymentRequest struct {
	AmountCents *int64  `json:"amount_cents,omitempty"`
	PaidOn      *string `json:"paid_on,omitempty"`
	Mode        *string `json:"mode,omitempty"`
	Payer       *string `json:"payer,omitempty"`
	Reference   *string `json:"reference,omitempty"`
	Comment     *string `json:"comment,omitempty"`
}

func (h *Handler) amendPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid payment id")
		return
	}
	var req amendPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var paidOn *time.Time
	if req.PaidOn != nil {
		d, err := time.Parse("2006-01-02", *req.PaidOn)
		if err != nil {
			Error(w, http.StatusBadRequest, "invalid paid_on date, expected YYYY-MM-DD")
			return
		}
		paidOn = &d
	}
	var mode *domain.PaymentMode
	if req.Mode != nil {
		m := domain.PaymentMode(*req.Mode)
		mode = &m
	}

	payment, rent, err := h.payments.AmendPayment(r.Context(), id, req.AmountCents, paidOn, mode, req.Payer, req.Reference, req.Comment)
	if err != nil {
		ServiceError(w, err)
		return
	}
	resp := paymentResponse{Payment: payment, Rent: rent}
	if rent.AmountPaidCents > rent.AmountDueCents {
		resp.Warning = "rent is overpaid"
	}
	Success(w, resp)
}

func (h *Handler) deletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid payment id")
		return
	}
	rent, err := h.payments.DeletePayment(r.Context(), id)
	if err != nil {
		ServiceError(w, err)
		return
	}
	SuccessMessage(w, rent, "payment deleted")
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	rentID, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid rent id")
		return
	}
	payments, err := h.payments.ListPayments(r.Context(), rentID)
	if err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, payments)
}
