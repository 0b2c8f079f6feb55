package services

import (
	"errors"

	"care-pay/models"

	"gorm.io/gorm"
)

// SetPricing creates or updates a doctor's consultation fees. A doctor must
// hold at least one payee account before becoming priceable, and both fees
// must fall inside the allowed bounds; out-of-range fees are rejected, never
// clamped.
func SetPricing(db *gorm.DB, doctorID string, onlineFee, inPersonFee int64) error {
	if onlineFee < models.MinConsultationFee || onlineFee > models.MaxConsultationFee {
		return invalid("online_fee", "fee must be between 100 and 50000")
	}
	if inPersonFee < models.MinConsultationFee || inPersonFee > models.MaxConsultationFee {
		return invalid("in_person_fee", "fee must be between 100 and 50000")
	}

	return db.Transaction(func(tx *gorm.DB) error {
		count, err := countAccounts(tx, doctorID)
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNoPayeeAccount
		}

		var existing models.DoctorPricing
		err = tx.Where("doctor_id = ?", doctorID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.DoctorPricing{
				DoctorID:    doctorID,
				OnlineFee:   onlineFee,
				InPersonFee: inPersonFee,
			}).Error
		}
		if err != nil {
			return err
		}

		existing.OnlineFee = onlineFee
		existing.InPersonFee = inPersonFee
		return tx.Save(&existing).Error
	})
}

// GetPricing returns the doctor's fees. Doctors who have not saved pricing
// get a zero-valued record; (0, 0) means unset, not a free consultation.
func GetPricing(db *gorm.DB, doctorID string) (models.DoctorPricing, error) {
	var pricing models.DoctorPricing
	err := db.Where("doctor_id = ?", doctorID).First(&pricing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DoctorPricing{DoctorID: doctorID}, nil
	}
	return pricing, err
}
