package models

import "time"

const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Appointment rows here exist only as the outcome of a paid payment request
// and the trigger of a refund; scheduling itself lives outside this service.
type Appointment struct {
	AppointmentID       string    `json:"appointment_id" gorm:"primaryKey"`
	PatientID           string    `json:"patient_id" gorm:"not null;index"`
	DoctorID            string    `json:"doctor_id" gorm:"not null;index"`
	AppointmentType     string    `json:"appointment_type"`
	AppointmentDate     string    `json:"appointment_date"`
	AppointmentTimeSlot string    `json:"appointment_time"`
	Mode                string    `json:"mode"`
	PaymentStatus       string    `json:"payment_status"`
	BookingStatus       string    `json:"booking_status"`
	CreatedAt           time.Time `json:"created_at" gorm:"autoCreateTime"`
}
