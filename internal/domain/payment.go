package domain

import "time"

type PaymentMode string

const (
	PaymentModeTransfer    PaymentMode = "TRANSFER"
	PaymentModeCheck       PaymentMode = "CHECK"
	PaymentModeCash        PaymentMode = "CASH"
	PaymentModeDirectDebit PaymentMode = "DIRECT_DEBIT"
	PaymentModeOther       PaymentMode = "OTHER"
)

// ValidPaymentMode reports whether m is one of the accepted payment modes.
func ValidPaymentMode(m PaymentMode) bool {
	switch m {
	case PaymentModeTransfer, PaymentModeCheck, PaymentModeCash, PaymentModeDirectDebit, PaymentModeOther:
		return true
	}
	return false
}

type Payment struct {
	ID          int32       `json:"id"`
	RentID      int32       `json:"rent_id"`
	AmountCents int64       `json:"amount_cents"`
	PaidOn      time.Time   `json:"paid_on"`
	Mode        PaymentMode `json:"mode"`
	Payer       string      `json:"payer"`
	Reference   string      `json:"reference,omitempty"`
	Comment     string      `json:"comment,omitempty"`
	CreatedOn   time.Time   `json:"created_on"`
}
