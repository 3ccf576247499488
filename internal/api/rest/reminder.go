package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"rentfolio-backend/internal/domain"
)

type createReminderRequest struct {
	Type        string   `json:"type"`
	Recipients  []string `json:"recipients,omitempty"`
	Subject     string   `json:"subject,omitempty"`
	Message     string   `json:"message,omitempty"`
	ScheduledOn string   `json:"scheduled_on,omitempty"`
}

func (h *Handler) createReminder(w http.ResponseWriter, r *http.Request) {
	rentID, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid rent id")
		return
	}
	var req createReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	var scheduledOn time.Time
	if req.ScheduledOn != "" {
		scheduledOn, err = time.Parse("2006-01-02", req.ScheduledOn)
		if err != nil {
			Error(w, http.StatusBadRequest, "invalid scheduled_on date, expected YYYY-MM-DD")
			return
		}
	}

	reminder, err := h.reminders.CreateReminder(r.Context(), rentID, domain.ReminderType(req.Type), req.Recipients, req.Subject, req.Message, scheduledOn)
	if err != nil {
		ServiceError(w, err)
		return
	}
	Created(w, reminder)
}

func (h *Handler) listReminders(w http.ResponseWriter, r *http.Request) {
	rentID, err := pathID(r)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid rent id")
		return
	}
	reminders, err := h.reminders.ListReminders(r.Context(), rentID)
	if err != nil {
		ServiceError(w, err)
		return
	}
	Success(w, reminders)
}
