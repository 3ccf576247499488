package rest

import (
	"encoding/json"
	"net/http"

	"rentfolio-backend/internal/domain"
)

func (h *Handler) createTenant(w http.ResponseWriter, r *http.Request) {
	var tenant domain.Tenant
	if err := json.NewDecoder(r.Body).Decode(&tenant); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.tenants.CreateTenant(r.Context(), &tenant); err != nil {
		ServiceError(w, err)
		return
	}
	Created(w, tenant)
}

func (h *Handler) getTenant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid tenant id")
		return
	}
	tenant, err := h.tenants.GetTenant(r.Context(), id)
	if err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, tenant)
}

func (h *Handler) updateTenant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid tenant id")
		return
	}
	var tenant domain.Tenant
	if err := json.NewDecoder(r.Body).Decode(&tenant); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tenant.ID = id
	if err := h.tenants.UpdateTenant(r.Context(), &tenant); err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, tenant)
}

func (h *Handler) deleteTenant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid tenant id")
		return
	}
	if err := h.tenants.DeleteTenant(r.Context(), id); err != nil {
		ServiceError(w, err)
		return
	}
	SuccessMessage(w, nil, "tenant deleted")
}

func (h *Handler) listTenants(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	tenants, total, err := h.tenants.ListTenants(r.Context(), page, limit)
	if err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, NewPageData(tenants, page, limit, total))
}
