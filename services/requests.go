package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"care-pay/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewRequestID returns an opaque payment request id.
func NewRequestID() string {
	random := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("REQ-%d-%s", time.Now().Unix(), random)
}

func newAppointmentID() string {
	return "APT-" + uuid.New().String()
}

// CreatePaymentRequest records a doctor's ask for payment ahead of a
// follow-up. The request starts pending and carries the scaffold the real
// appointment will be created from once the patient pays.
func CreatePaymentRequest(db *gorm.DB, request *models.PaymentRequest) error {
	if request.Amount <= 0 {
		return invalid("amount", "amount must be greater than zero")
	}
	if request.DoctorID == "" || request.PatientID == "" {
		return invalid("parties", "doctor and patient are required")
	}
	if request.Reason == "" {
		return invalid("reason", "please provide a reason for the payment request")
	}
	if request.AppointmentMode == "" {
		request.AppointmentMode = models.ModeOnline
	}
	request.RequestID = NewRequestID()
	request.Status = models.RequestStatusPending
	return db.Create(request).Error
}

// GetPaymentRequest fetches a single request by id.
func GetPaymentRequest(db *gorm.DB, requestID string) (models.PaymentRequest, error) {
	var request models.PaymentRequest
	err := db.Where("request_id = ?", requestID).First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return request, ErrNotFound
	}
	return request, err
}

// ListPaymentRequestsForPatient returns the patient's requests, newest first,
// optionally filtered by status.
func ListPaymentRequestsForPatient(db *gorm.DB, patientID, status string) ([]models.PaymentRequest, error) {
	query := db.Where("patient_id = ?", patientID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var requests []models.PaymentRequest
	err := query.Order("created_at desc").Find(&requests).Error
	return requests, err
}

// ListPaymentRequestsForDoctor returns the doctor's requests, newest first.
func ListPaymentRequestsForDoctor(db *gorm.DB, doctorID, status string) ([]models.PaymentRequest, error) {
	query := db.Where("doctor_id = ?", doctorID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var requests []models.PaymentRequest
	err := query.Order("created_at desc").Find(&requests).Error
	return requests, err
}

// DeclineRequest moves a pending request to declined. Declined is terminal;
// declining an already finalized request reports ErrAlreadyTerminal so a
// double submission is visible to the caller.
func DeclineRequest(db *gorm.DB, requestID string) error {
	mu := lockOwner("request:" + requestID)
	mu.Lock()
	defer mu.Unlock()

	return db.Transaction(func(tx *gorm.DB) error {
		var request models.PaymentRequest
		if err := tx.Where("request_id = ?", requestID).First(&request).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if request.Terminal() {
			return ErrAlreadyTerminal
		}
		request.Status = models.RequestStatusDeclined
		return tx.Save(&request).Error
	})
}

// PayResult is the outcome of paying a request: the ledger entry appended and
// the appointment synthesized from the request's scaffold.
type PayResult struct {
	Transaction models.Transaction `json:"transaction"`
	Appointment models.Appointment `json:"appointment"`
}

// PayRequest settles a pending request from one of the patient's payee
// accounts. Marking the request paid, creating the confirmed appointment and
// appending the completed ledger entry happen in one database transaction;
// a failure anywhere rolls the whole unit back.
func PayRequest(db *gorm.DB, requestID, payeeAccountID string) (*PayResult, error) {
	mu := lockOwner("request:" + requestID)
	mu.Lock()
	defer mu.Unlock()

	var result PayResult
	err := db.Transaction(func(tx *gorm.DB) error {
		request, err := loadPendingRequest(tx, requestID)
		if err != nil {
			return err
		}

		var account models.PayeeAccount
		err = tx.Where("account_id = ? AND owner_id = ?", payeeAccountID, request.PatientID).
			First(&account).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoPayeeAccount
		}
		if err != nil {
			return err
		}

		return settleRequest(tx, request, account.Label(), &result)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// PayRequestFromWallet settles a pending request from the patient's refund
// wallet. The debit joins the same transaction as the settlement, and the
// balance can never go negative.
func PayRequestFromWallet(db *gorm.DB, requestID string) (*PayResult, error) {
	mu := lockOwner("request:" + requestID)
	mu.Lock()
	defer mu.Unlock()

	var result PayResult
	err := db.Transaction(func(tx *gorm.DB) error {
		request, err := loadPendingRequest(tx, requestID)
		if err != nil {
			return err
		}

		var wallet models.Wallet
		err = tx.Where("patient_id = ?", request.PatientID).First(&wallet).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && wallet.Balance < request.Amount) {
			return ErrInsufficientBalance
		}
		if err != nil {
			return err
		}

		wallet.Balance -= request.Amount
		if err := tx.Save(&wallet).Error; err != nil {
			return err
		}

		return settleRequest(tx, request, "Wallet Balance", &result)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func loadPendingRequest(tx *gorm.DB, requestID string) (*models.PaymentRequest, error) {
	var request models.PaymentRequest
	if err := tx.Where("request_id = ?", requestID).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if request.Terminal() {
		return nil, ErrAlreadyTerminal
	}
	return &request, nil
}

// settleRequest applies the three effects of a pay as one unit inside the
// caller's transaction: confirmed appointment, completed ledger entry, and
// the paid status flip on the request.
func settleRequest(tx *gorm.DB, request *models.PaymentRequest, paymentMethod string, result *PayResult) error {
	appointment := models.Appointment{
		AppointmentID:       newAppointmentID(),
		PatientID:           request.PatientID,
		DoctorID:            request.DoctorID,
		AppointmentType:     request.AppointmentType,
		AppointmentDate:     request.AppointmentDate,
		AppointmentTimeSlot: request.AppointmentTime,
		Mode:                request.AppointmentMode,
		PaymentStatus:       "paid",
		BookingStatus:       models.BookingStatusConfirmed,
	}
	if err := tx.Create(&appointment).Error; err != nil {
		return err
	}

	txn := models.Transaction{
		Type:          models.TxnTypePayment,
		PatientID:     request.PatientID,
		DoctorID:      request.DoctorID,
		AppointmentID: appointment.AppointmentID,
		Amount:        request.Amount,
		Mode:          request.AppointmentMode,
		Status:        models.TxnStatusCompleted,
		PaymentMethod: paymentMethod,
		Reason:        request.Reason,
	}
	if err := AppendTransaction(tx, &txn); err != nil {
		return err
	}

	request.Status = models.RequestStatusPaid
	request.AppointmentID = appointment.AppointmentID
	if err := tx.Save(request).Error; err != nil {
		return err
	}

	result.Transaction = txn
	result.Appointment = appointment
	return nil
}
