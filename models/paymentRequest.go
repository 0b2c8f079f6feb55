package models

import "time"

const (
	RequestStatusPending  = "pending"
	RequestStatusPaid     = "paid"
	RequestStatusDeclined = "declined"
)

// PaymentRequest is a doctor's ask for payment ahead of a follow-up or
// rescheduled appointment. The appointment fields are a scaffold used to
// create the real appointment once the patient pays. Status is terminal once
// paid or declined.
type PaymentRequest struct {
	RequestID             string    `json:"request_id" gorm:"primaryKey"`
	DoctorID              string    `json:"doctor_id" gorm:"not null;index"`
	PatientID             string    `json:"patient_id" gorm:"not null;index"`
	AppointmentType       string    `json:"appointment_type"`
	AppointmentDate       string    `json:"appointment_date"`
	AppointmentTime       string    `json:"appointment_time"`
	AppointmentMode       string    `json:"appointment_mode"`
	Amount                int64     `json:"amount" gorm:"not null"`
	Reason                string    `json:"reason"`
	RescheduleReason      string    `json:"reschedule_reason"`
	OriginalAppointmentID string    `json:"original_appointment_id"`
	AppointmentID         string    `json:"appointment_id"`
	Status                string    `json:"status" gorm:"not null;default:pending"`
	CreatedAt             time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt             time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Terminal reports whether the request has reached a final status.
func (r *PaymentRequest) Terminal() bool {
	return r.Status == RequestStatusPaid || r.Status == RequestStatusDeclined
}
