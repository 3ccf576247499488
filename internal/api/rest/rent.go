package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"rentfolio-backend/internal/domain"
)

type generateRentRequest struct {
	Month int    `json:"month,omitempty"`
	Year  int    `json:"year,omitempty"`
	From  string `json:"from,omitempty"`
	To    string `json:"to,omitempty"`
	Force bool   `json:"force,omitempty"`
}

// generateRent handles both single-period and range generation for a lease.
// A from/to pair selects range mode; otherwise month/year generate one
// period, defaulting to the current month.
func (h *Handler) generateRent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid lease id")
		return
	}
	var req generateRentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.From != "" || req.To != "" {
		from, err := time.Parse("2006-01-02", req.From)
		if err != nil {
			Error(w, http.StatusBadRequest, "invalid from date, expected YYYY-MM-DD")
			return
		}
		to, err := time.Parse("2006-01-02", req.To)
		if err != nil {
			Error(w, http.StatusBadRequest, "invalid to date, expected YYYY-MM-DD")
			return
		}
		rents, err := h.rents.GenerateRange(r.Context(), id, from, to)
		if err != nil {
			ServiceError(w, err)
			return
		}
		SuccessMessage(w, rents, fmt.Sprintf("%d rent(s) generated", len(rents)))
		return
	}

	month, year := req.Month, req.Year
	if month == 0 && year == 0 {
		now := time.Now().UTC()
		month, year = int(now.Month()), now.Year()
	}
	rent, created, err := h.rents.GenerateForPeriod(r.Context(), id, month, year, req.Force)
	if err != nil {
		ServiceError(w, err)
		return
	}
	if !created {
		SuccessMessage(w, rent, "rent already exists for this period")
		return
	}
	Created(w, rent)
}

func (h *Handler) generateCurrentMonth(w http.ResponseWriter, r *http.Request) {
	count, err := h.rents.GenerateCurrentMonthForAllActive(r.Context())
	if err != nil {
		ServiceError(w, err)
		return
	}
	SuccessMessage(w, map[string]int{"generated": count}, "current month rents generated")
}

func (h *Handler) getRent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid rent id")
		return
	}
	rent, err := h.rents.GetRent(r.Context(), id)
	if err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, rent)
}

func (h *Handler) listRentsByLease(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid lease id")
		return
	}
	page, limit := pagination(r)
	rents, total, err := h.rents.ListRentsByLease(r.Context(), id, page, limit)
	if err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, NewPageData(rents, page, limit, total))
}

func (h *Handler) listRentsByStatus(w http.ResponseWriter, r *http.Request) {
	status := domain.RentStatus(r.URL.Query().Get("status"))
	if status == "" {
		Error(w, http.StatusBadRequest, "status query parameter is required")
		return
	}
	page, limit := pagination(r)
	rents, total, err := h.rents.ListRentsByStatus(r.Context(), status, page, limit)
	if err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, NewPageData(rents, page, limit, total))
}

func (h *Handler) updateRentComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid rent id")
		return
	}
	var req struct {
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rent, err := h.rents.UpdateRentComment(r.Context(), id, req.Comment)
	if err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, rent)
}

func (h *Handler) deleteRent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid rent id")
		return
	}
	if err := h.rents.DeleteRent(r.Context(), id); err != nil {
		ServiceError(w, err)
		return
	}
	SuccessMessage(w, nil, "rent deleted")
}
