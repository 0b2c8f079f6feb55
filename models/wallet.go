package models

import "time"

// Wallet holds a patient's accumulated refund credit. The balance is only
// moved by refund reconciliation (credit) and wallet-funded payments (debit)
// and never goes negative.
type Wallet struct {
	PatientID string    `json:"patient_id" gorm:"primaryKey"`
	Balance   int64     `json:"balance" gorm:"not null;default:0"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
