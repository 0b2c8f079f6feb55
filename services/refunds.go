package services

import (
	"errors"

	"care-pay/models"

	"gorm.io/gorm"
)

// RefundForCancelledAppointment converts a cancelled, previously paid
// appointment into a refund. It finds the originating completed payment for
// the appointment, flips it to refunded, appends a refund ledger entry with
// the same patient/doctor/appointment triple and amount, and credits the
// patient's wallet. All three effects commit or roll back together, so a
// refund can never appear in the ledger without its balance credit. The whole
// unit is serialized per appointment, so two concurrent cancellations cannot
// both observe the original as completed and refund it twice.
func RefundForCancelledAppointment(db *gorm.DB, appointmentID, reason string) (*models.Transaction, error) {
	mu := lockOwner("appointment:" + appointmentID)
	mu.Lock()
	defer mu.Unlock()

	var refund models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		return refundCancelledAppointment(tx, appointmentID, reason, &refund)
	})
	if err != nil {
		return nil, err
	}
	return &refund, nil
}

// refundCancelledAppointment applies the refund inside the caller's
// transaction. Callers must hold the appointment lock.
func refundCancelledAppointment(tx *gorm.DB, appointmentID, reason string, refund *models.Transaction) error {
	if reason == "" {
		return invalid("reason", "cancellation reason is required")
	}

	var original models.Transaction
	err := tx.Where("appointment_id = ? AND type = ? AND status = ?",
		appointmentID, models.TxnTypePayment, models.TxnStatusCompleted).
		Order("created_at asc").
		First(&original).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNoMatchingTransaction
	}
	if err != nil {
		return err
	}

	if err := MarkRefunded(tx, original.TransactionID, reason); err != nil {
		return err
	}

	*refund = models.Transaction{
		Type:          models.TxnTypeRefund,
		PatientID:     original.PatientID,
		DoctorID:      original.DoctorID,
		AppointmentID: original.AppointmentID,
		Amount:        original.Amount,
		Mode:          original.Mode,
		Status:        models.TxnStatusRefunded,
		PaymentMethod: original.PaymentMethod,
		Reason:        "Refund for cancelled appointment. Reason: " + reason,
	}
	if err := AppendTransaction(tx, refund); err != nil {
		return err
	}

	return creditWallet(tx, original.PatientID, original.Amount)
}

func creditWallet(tx *gorm.DB, patientID string, amount int64) error {
	var wallet models.Wallet
	err := tx.Where("patient_id = ?", patientID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Wallet doesn't exist, create a new one
		return tx.Create(&models.Wallet{PatientID: patientID, Balance: amount}).Error
	}
	if err != nil {
		return err
	}
	wallet.Balance += amount
	return tx.Save(&wallet).Error
}

// GetWalletBalance returns the patient's refund credit, zero when the patient
// has never received a refund.
func GetWalletBalance(db *gorm.DB, patientID string) (int64, error) {
	var wallet models.Wallet
	err := db.Where("patient_id = ?", patientID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

// CancelPaidAppointment cancels a confirmed appointment and, when it was
// paid, runs refund reconciliation. A non-empty doctorID restricts the cancel
// to that doctor's own appointments. Cancelling an appointment that was never
// paid just flips the booking status.
func CancelPaidAppointment(db *gorm.DB, appointmentID, doctorID, reason string) (*models.Transaction, error) {
	mu := lockOwner("appointment:" + appointmentID)
	mu.Lock()
	defer mu.Unlock()

	var refund *models.Transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		query := tx.Where("appointment_id = ?", appointmentID)
		if doctorID != "" {
			query = query.Where("doctor_id = ?", doctorID)
		}
		var appointment models.Appointment
		if err := query.First(&appointment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		switch appointment.BookingStatus {
		case models.BookingStatusCancelled:
			return ErrInvalidState
		case models.BookingStatusCompleted:
			return ErrInvalidState
		}

		if appointment.PaymentStatus == "paid" {
			var r models.Transaction
			if err := refundCancelledAppointment(tx, appointmentID, reason, &r); err != nil {
				return err
			}
			refund = &r
		}

		appointment.BookingStatus = models.BookingStatusCancelled
		return tx.Save(&appointment).Error
	})
	if err != nil {
		return nil, err
	}
	return refund, nil
}

// FindAppointment fetches one appointment scoped to its owner: a non-empty
// doctorID or patientID must match the corresponding party on the record.
func FindAppointment(db *gorm.DB, appointmentID, doctorID, patientID string) (models.Appointment, error) {
	query := db.Where("appointment_id = ?", appointmentID)
	if doctorID != "" {
		query = query.Where("doctor_id = ?", doctorID)
	}
	if patientID != "" {
		query = query.Where("patient_id = ?", patientID)
	}
	var appointment models.Appointment
	err := query.First(&appointment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return appointment, ErrNotFound
	}
	return appointment, err
}
