package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"rentfolio-backend/internal/domain"
)

type leaseRequest struct {
	PropertyID          int32   `json:"property_id"`
	TenantIDs           []int32 `json:"tenant_ids"`
	StartDate           string  `json:"start_date"`
	EndDate             string  `json:"end_date,omitempty"`
	MonthlyRentCents    int64   `json:"monthly_rent_cents"`
	MonthlyChargesCents int64   `json:"monthly_charges_cents"`
	DueDay              int     `json:"due_day"`
}

func (req *leaseRequest) toDomain() (*domain.Lease, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, err
	}
	lease := &domain.Lease{
		PropertyID:          req.PropertyID,
		TenantIDs:           req.TenantIDs,
		StartDate:           start,
		MonthlyRentCents:    req.MonthlyRentCents,
		MonthlyChargesCents: req.MonthlyChargesCents,
		DueDay:              req.DueDay,
	}
	if req.EndDate != "" {
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return nil, err
		}
		lease.EndDate = &end
	}
	return lease, nil
}

func (h *Handler) createLease(w http.ResponseWriter, r *http.Request) {
	var req leaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	lease, err := req.toDomain()
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
		return
	}
	if err := h.leases.CreateLease(r.Context(), lease); err != nil {
		ServiceError(w, err)
		return
	}
	Created(w, lease)
}

func (h *Handler) getLease(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid lease id")
		return
	}
	lease, err := h.leases.GetLease(r.Context(), id)
	if err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, lease)
}

func (h *Handler) listLeases(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	var propertyID int32
	if v, err := strconv.ParseInt(r.URL.Query().Get("property_id"), 10, 32); err == nil {
		propertyID = int32(v)
	}
	status := r.URL.Query().Get("status")

	leases, total, err := h.leases.ListLeases(r.Context(), propertyID, status, page, limit)
	if err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, NewPageData(leases, page, limit, total))
}

func (h *Handler) updateLease(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid lease id")
		return
	}
	var req leaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	lease, err := req.toDomain()
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
		return
	}
	lease.ID = id
	if err := h.leases.UpdateLease(r.Context(), lease); err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, lease)
}

func (h *Handler) deleteLease(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid lease id")
		return
	}
	if err := h.leases.DeleteLease(r.Context(), id); err != nil {
		ServiceError(w, err)
		return
	}
	SuccessMessage(w, nil, "lease deleted")
}

func (h *Handler) suspendLease(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid lease id")
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	lease, err := h.leases.SuspendLease(r.Context(), id, req.Reason)
	if err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, lease)
}

func (h *Handler) reactivateLease(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid lease id")
		return
	}
	lease, err := h.leases.ReactivateLease(r.Context(), id)
	if err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, lease)
}

type terminateRequest struct {
	ActualEndDate   string `json:"actual_end_date"`
	Reason          string `json:"reason"`
	RequestDate     string `json:"request_date,omitempty"`
	NoticeRespected *bool  `json:"notice_respected,omitempty"`
	Comment         string `json:"comment,omitempty"`
}

func (h *Handler) terminateLease(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid lease id")
		return
	}
	var req terminateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	endDate, err := time.Parse("2006-01-02", req.ActualEndDate)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid actual_end_date, expected YYYY-MM-DD")
		return
	}
	var requestDate *time.Time
	if req.RequestDate != "" {
		d, err := time.Parse("2006-01-02", req.RequestDate)
		if err != nil {
			Error(w, http.StatusBadRequest, "invalid request_date, expected YYYY-MM-DD")
			return
		}
		requestDate = &d
	}

	result, err := h.leases.Terminate(r.Context(), id, endDate, req.Reason, requestDate, req.NoticeRespected, req.Comment)
	if err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, result)
}

func (h *Handler) previewTermination(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid lease id")
		return
	}
	var req struct {
		ProposedEndDate string `json:"proposed_end_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	endDate, err := time.Parse("2006-01-02", req.ProposedEndDate)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid proposed_end_date, expected YYYY-MM-DD")
		return
	}

	preview, err := h.leases.PreviewTermination(r.Context(), id, endDate)
	if err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, preview)
}

func (h *Handler) listLeaseHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid lease id")
		return
	}
	page, limit := pagination(r)
	entries, total, err := h.leases.ListHistory(r.Context(), id, page, limit)
	if err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, NewPageData(entries, page, limit, total))
}
