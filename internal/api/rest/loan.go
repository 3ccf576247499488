package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"rentfolio-backend/internal/domain"
)

type createLoanRequest struct {
	PropertyID            int32  `json:"property_id"`
	Lender                string `json:"lender"`
	PrincipalCents        int64  `json:"principal_cents"`
	AnnualRateBasisPoints int    `json:"annual_rate_basis_points"`
	MonthlyInsuranceCents int64  `json:"monthly_insurance_cents"`
	StartDate             string `json:"start_date"`
	TermMonths            int    `json:"term_months"`
}

func (h *Handler) createLoan(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
		return
	}

	loan := &domain.Loan{
		PropertyID:            req.PropertyID,
		Lender:                req.Lender,
		PrincipalCents:        req.PrincipalCents,
		AnnualRateBasisPoints: req.AnnualRateBasisPoints,
		MonthlyInsuranceCents: req.MonthlyInsuranceCents,
		StartDate:             start,
		TermMonths:            req.TermMonths,
	}
	if err := h.loans.CreateLoan(r.Context(), loan); err != nil {
		ServiceError(w, err)
		return
	}
	Created(w, loan)
}

func (h *Handler) getLoan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid loan id")
		return
	}
	loan, err := h.loans.GetLoan(r.Context(), id)
	if err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, loan)
}

func (h *Handler) listLoansByProperty(w http.ResponseWriter, r *http.Request) {
	propertyID, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid property id")
		return
	}
	loans, err := h.loans.ListLoansByProperty(r.Context(), propertyID)
	if err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, loans)
}

func (h *Handler) deleteLoan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid loan id")
		return
	}
	if err := h.loans.DeleteLoan(r.Context(), id); err != nil {
		ServiceError(w, err)
		return
	}
	SuccessMessage(w, nil, "loan deleted")
}

func (h *Handler) loanSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid loan id")
		return
	}
	schedule, err := h.loans.Schedule(r.Context(), id)
	if err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, schedule)
}

// exportLoanSchedule streams the amortization schedule as an XLSX download.
func (h *Handler) exportLoanSchedule(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid loan id")
		return
	}
	content, filename, err := h.loans.ExportSchedule(r.Context(), id)
	if err != nil {
		ServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if _, err := w.Write(content); err != nil {
		return
	}
}
