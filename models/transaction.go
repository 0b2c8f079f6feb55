package models

import "time"

const (
	TxnTypePayment = "payment"
	TxnTypeRefund  = "refund"

	TxnStatusCompleted = "completed"
	TxnStatusPending   = "pending"
	TxnStatusRefunded  = "refunded"

	ModeOnline   = "online"
	ModeInPerson = "in-person"
)

// Transaction is a ledger entry. Rows are appended and never deleted;
// status is the only field updated after creation.
type Transaction struct {
	TransactionID string    `json:"transaction_id" gorm:"primaryKey"`
	Type          string    `json:"type" gorm:"not null"`
	PatientID     string    `json:"patient_id" gorm:"not null;index"`
	DoctorID      string    `json:"doctor_id" gorm:"not null;index"`
	AppointmentID string    `json:"appointment_id" gorm:"index"`
	Amount        int64     `json:"amount" gorm:"not null"`
	Mode          string    `json:"mode"`
	Status        string    `json:"status" gorm:"not null"`
	PaymentMethod string    `json:"payment_method"`
	Reason        string    `json:"reason"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
