package domain

import "time"

type ReminderType string

const (
	ReminderTypeLate         ReminderType = "LATE"
	ReminderTypeFollowUp     ReminderType = "FOLLOW_UP"
	ReminderTypeFormalNotice ReminderType = "FORMAL_NOTICE"
	ReminderTypeInfo         ReminderType = "INFO"
	ReminderTypeOther        ReminderType = "OTHER"
)

// ValidReminderType reports whether t is one of the accepted reminder types.
func ValidReminderType(t ReminderType) bool {
	switch t {
	case ReminderTypeLate, ReminderTypeFollowUp, ReminderTypeFormalNotice, ReminderTypeInfo, ReminderTypeOther:
		return true
	}
	return false
}

type Reminder struct {
	ID            int32        `json:"id"`
	RentID        int32        `json:"rent_id"`
	Type          ReminderType `json:"type"`
	Recipients    []string     `json:"recipients"`
	Subject       string       `json:"subject"`
	Message       string       `json:"message"`
	ScheduledOn   time.Time    `json:"scheduled_on"`
	SentOn        *time.Time   `json:"sent_on,omitempty"`
	Sent          bool         `json:"sent"`
	DeliveryError string       `json:"delivery_error,omitempty"`
	CreatedOn     time.Time    `json:"created_on"`
}
