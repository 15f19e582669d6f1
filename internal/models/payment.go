package models

import "time"

// PaymentMethod selected on the payment step.
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentBank PaymentMethod = "bank"
	PaymentCash PaymentMethod = "cash"
)

// Payment is the payment-step payload, keyed by account id. Card numbers are
// truncated to the last four digits before they reach this struct.
type Payment struct {
	ID            string        `bson:"_id,omitempty" json:"id"`
	PaymentMethod PaymentMethod `bson:"payment_method" json:"payment_method"`
	CardLast4     string        `bson:"card_last4,omitempty" json:"card_last4,omitempty"`
	BankName      string        `bson:"bank_name,omitempty" json:"bank_name,omitempty"`
	AccountNumber string        `bson:"account_number,omitempty" json:"account_number,omitempty"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updated_at"`
}
