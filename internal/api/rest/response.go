package rest

import (
	"encoding/json"
	"net/http"

	"rentfolio-backend/internal/apperr"
	"rentfolio-backend/internal/logger"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// PageData is the envelope payload for paginated listings.
type PageData struct {
	Items interface{} `json:"items"`
	Page  int32       `json:"page"`
	Limit int32       `json:"limit"`
	Total int32       `json:"total"`
	Pages int32       `json:"pages"`
}

func NewPageData(items interface{}, page, limit, total int32) PageData {
	pages := int32(0)
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return PageData{Items: items, Page: page, Limit: limit, Total: total, Pages: pages}
}

func respond(w http.ResponseWriter, httpStatus int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("Failed to write response", "error", err)
	}
}

func Success(w http.ResponseWriter, data interface{}) {
	respond(w, http.StatusOK, APIResponse{Success: true, Data: data})
}

func SuccessMessage(w http.ResponseWriter, data interface{}, message string) {
	respond(w, http.StatusOK, APIResponse{Success: true, Data: data, Message: message})
}

func Created(w http.ResponseWriter, data interface{}) {
	respond(w, http.StatusCreated, APIResponse{Success: true, Data: data})
}

func Error(w http.ResponseWriter, httpStatus int, message string) {
	respond(w, httpStatus, APIResponse{Success: false, Error: message})
}

// ServiceError translates an error from the service layer into the matching
// HTTP status. Internal errors are logged here and reported generically.
func ServiceError(w http.ResponseWriter, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindConflict:
		Error(w, http.StatusBadRequest, err.Error())
	case apperr.KindNotFound:
		Error(w, http.StatusNotFound, err.Error())
	default:
		logger.Error("Request failed", "error", err)
		Error(w, http.StatusInternalServerError, "internal server error")
	}
}
