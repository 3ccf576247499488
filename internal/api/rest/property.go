package rest

import (
	"encoding/json"
	"net/http"

	"rentfolio-backend/internal/domain"
)

func (h *Handler) createProperty(w http.ResponseWriter, r *http.Request) {
	var property domain.Property
	if err := json.NewDecoder(r.Body).Decode(&property); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.properties.CreateProperty(r.Context(), &property); err != nil {
		ServiceError(w, err)
		return
	}
	Created(w, property)
}

func (h *Handler) getProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid property id")
		return
	}
	property, err := h.properties.GetProperty(r.Context(), id)
	if err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, property)
}

func (h *Handler) updateProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid property id")
		return
	}
	var property domain.Property
	if err := json.NewDecoder(r.Body).Decode(&property); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	property.ID = id
	if err := h.properties.UpdateProperty(r.Context(), &property); err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, property)
}

func (h *Handler) deleteProperty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid property id")
		return
	}
	if err := h.properties.DeleteProperty(r.Context(), id); err != nil {
		ServiceError(w, err)
		return
	}
	SuccessMessage(w, nil, "property deleted")
}

func (h *Handler) listProperties(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	properties, total, err := h.properties.ListProperties(r.Context(), page, limit)
	if err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, NewPageData(properties, page, limit, total))
}
