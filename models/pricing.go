package models

import "time"

const (
	// Consultation fee bounds, inclusive, in the smallest currency unit.
	MinConsultationFee = 100
	MaxConsultationFee = 50000
)

// DoctorPricing stores a doctor's consultation fees. A doctor without a row
// has not set pricing yet; callers must treat the zero value as unset rather
// than a free consultation.
type DoctorPricing struct {
	DoctorID    string    `json:"doctor_id" gorm:"primaryKey"`
	OnlineFee   int64     `json:"online_fee"`
	InPersonFee int64     `json:"in_person_fee"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
