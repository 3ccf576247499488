package domain

import "time"

type ReceiptDeliveryStatus string

const (
	ReceiptDeliveryPending ReceiptDeliveryStatus = "PENDING"
	ReceiptDeliverySent    ReceiptDeliveryStatus = "SENT"
	ReceiptDeliveryFailed  ReceiptDeliveryStatus = "FAILED"
)

// Receipt is the proof-of-payment document for a fully paid rent.
// One receipt exists per rent; delivery state is tracked on the row itself
// so a failing mail channel never touches the financial records.
type Receipt struct {
	ID             int32                 `json:"id"`
	RentID         int32                 `json:"rent_id"`
	PeriodLabel    string                `json:"period_label"`
	AmountCents    int64                 `json:"amount_cents"`
	FileKey        string                `json:"file_key,omitempty"`
	GeneratedOn    time.Time             `json:"generated_on"`
	SentOn         *time.Time            `json:"sent_on,omitempty"`
	DeliveryStatus ReceiptDeliveryStatus `json:"delivery_status"`
	DeliveryError  string                `json:"delivery_error,omitempty"`
}
