package services

import (
	"strings"
	"sync"
	"testing"

	"care-pay/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// paidAppointment drives the normal pay flow and returns the settled result.
func paidAppointment(t *testing.T, db *gorm.DB, amount int64) *PayResult {
	t.Helper()

	account := validWalletAccount("pt-1", models.RolePatient)
	require.NoError(t, AddAccount(db, account))

	request := newFollowUpRequest("dr-1", "pt-1", amount)
	require.NoError(t, CreatePaymentRequest(db, request))

	result, err := PayRequest(db, request.RequestID, account.AccountID)
	require.NoError(t, err)
	return result
}

func TestRefundForCancelledAppointment(t *testing.T) {
	db := setupTestDB(t)

	paid := paidAppointment(t, db, 2500)
	appointmentID := paid.Appointment.AppointmentID

	refund, err := RefundForCancelledAppointment(db, appointmentID, "doctor unavailable")
	require.NoError(t, err)

	assert.Equal(t, models.TxnTypeRefund, refund.Type)
	assert.Equal(t, models.TxnStatusRefunded, refund.Status)
	assert.Equal(t, int64(2500), refund.Amount)
	assert.Equal(t, appointmentID, refund.AppointmentID)
	assert.Equal(t, "pt-1", refund.PatientID)
	assert.Equal(t, "dr-1", refund.DoctorID)
	assert.True(t, strings.HasPrefix(refund.TransactionID, "TXN-REFUND-"))
	assert.Contains(t, refund.Reason, "doctor unavailable")

	// the original payment flipped to refunded
	var original models.Transaction
	require.NoError(t, db.Where("transaction_id = ?", paid.Transaction.TransactionID).First(&original).Error)
	assert.Equal(t, models.TxnStatusRefunded, original.Status)

	// and the patient got the full amount back as wallet credit
	balance, err := GetWalletBalance(db, "pt-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2500), balance)
}

func TestRefundIsConsistent(t *testing.T) {
	db := setupTestDB(t)

	paid := paidAppointment(t, db, 2500)
	appointmentID := paid.Appointment.AppointmentID

	_, err := RefundForCancelledAppointment(db, appointmentID, "first")
	require.NoError(t, err)

	// a second attempt finds no completed payment left to refund
	_, err = RefundForCancelledAppointment(db, appointmentID, "second")
	assert.ErrorIs(t, err, ErrNoMatchingTransaction)

	// exactly one refund row per appointment, wallet credited exactly once
	var refundRows int64
	db.Model(&models.Transaction{}).
		Where("appointment_id = ? AND type = ?", appointmentID, models.TxnTypeRefund).
		Count(&refundRows)
	assert.Equal(t, int64(1), refundRows)

	balance, err := GetWalletBalance(db, "pt-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2500), balance)
}

func TestConcurrentCancelRefundsOnce(t *testing.T) {
	db := setupTestDB(t)

	paid := paidAppointment(t, db, 2500)
	appointmentID := paid.Appointment.AppointmentID

	// two tabs cancelling the same appointment at once: exactly one refund
	const attempts = 8
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := CancelPaidAppointment(db, appointmentID, "dr-1", "double submit")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded int
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrInvalidState)
		}
	}
	assert.Equal(t, 1, succeeded)

	var refundRows int64
	db.Model(&models.Transaction{}).
		Where("appointment_id = ? AND type = ?", appointmentID, models.TxnTypeRefund).
		Count(&refundRows)
	assert.Equal(t, int64(1), refundRows)

	balance, err := GetWalletBalance(db, "pt-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2500), balance)
}

func TestRefundRequiresReasonAndPayment(t *testing.T) {
	db := setupTestDB(t)

	_, err := RefundForCancelledAppointment(db, "apt-unknown", "whatever")
	assert.ErrorIs(t, err, ErrNoMatchingTransaction)

	paid := paidAppointment(t, db, 1500)
	_, err = RefundForCancelledAppointment(db, paid.Appointment.AppointmentID, "")
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "reason", validation.Field)
}

func TestCancelPaidAppointmentRefunds(t *testing.T) {
	db := setupTestDB(t)

	paid := paidAppointment(t, db, 2500)
	appointmentID := paid.Appointment.AppointmentID

	refund, err := CancelPaidAppointment(db, appointmentID, "dr-1", "patient request")
	require.NoError(t, err)
	require.NotNil(t, refund)
	assert.Equal(t, int64(2500), refund.Amount)

	var appointment models.Appointment
	require.NoError(t, db.Where("appointment_id = ?", appointmentID).First(&appointment).Error)
	assert.Equal(t, models.BookingStatusCancelled, appointment.BookingStatus)

	// cancelled is terminal for the booking too
	_, err = CancelPaidAppointment(db, appointmentID, "dr-1", "again")
	assert.ErrorIs(t, err, ErrInvalidState)

	balance, err := GetWalletBalance(db, "pt-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2500), balance)
}

func TestCancelScopedToOwningDoctor(t *testing.T) {
	db := setupTestDB(t)

	paid := paidAppointment(t, db, 2500)
	appointmentID := paid.Appointment.AppointmentID

	// another doctor cannot cancel, so no refund is triggered either
	_, err := CancelPaidAppointment(db, appointmentID, "dr-other", "not mine")
	assert.ErrorIs(t, err, ErrNotFound)

	var appointment models.Appointment
	require.NoError(t, db.Where("appointment_id = ?", appointmentID).First(&appointment).Error)
	assert.Equal(t, models.BookingStatusConfirmed, appointment.BookingStatus)

	balance, err := GetWalletBalance(db, "pt-1")
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestCancelUnpaidAppointment(t *testing.T) {
	db := setupTestDB(t)

	appointment := models.Appointment{
		AppointmentID: "APT-unpaid",
		DoctorID:      "dr-1",
		PatientID:     "pt-1",
		BookingStatus: models.BookingStatusConfirmed,
		PaymentStatus: "unpaid",
	}
	require.NoError(t, db.Create(&appointment).Error)

	refund, err := CancelPaidAppointment(db, "APT-unpaid", "dr-1", "changed plans")
	require.NoError(t, err)
	assert.Nil(t, refund)

	var stored models.Appointment
	require.NoError(t, db.Where("appointment_id = ?", "APT-unpaid").First(&stored).Error)
	assert.Equal(t, models.BookingStatusCancelled, stored.BookingStatus)

	balance, err := GetWalletBalance(db, "pt-1")
	require.NoError(t, err)
	assert.Zero(t, balance)

	_, err = CancelPaidAppointment(db, "APT-missing", "dr-1", "reason")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelCompletedAppointment(t *testing.T) {
	db := setupTestDB(t)

	appointment := models.Appointment{
		AppointmentID: "APT-done",
		DoctorID:      "dr-1",
		PatientID:     "pt-1",
		BookingStatus: models.BookingStatusCompleted,
		PaymentStatus: "paid",
	}
	require.NoError(t, db.Create(&appointment).Error)

	_, err := CancelPaidAppointment(db, "APT-done", "dr-1", "too late")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestFindAppointmentScopedToOwner(t *testing.T) {
	db := setupTestDB(t)

	paid := paidAppointment(t, db, 1500)
	appointmentID := paid.Appointment.AppointmentID

	found, err := FindAppointment(db, appointmentID, "dr-1", "")
	require.NoError(t, err)
	assert.Equal(t, appointmentID, found.AppointmentID)

	found, err = FindAppointment(db, appointmentID, "", "pt-1")
	require.NoError(t, err)
	assert.Equal(t, appointmentID, found.AppointmentID)

	_, err = FindAppointment(db, appointmentID, "dr-other", "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = FindAppointment(db, appointmentID, "", "pt-other")
	assert.ErrorIs(t, err, ErrNotFound)
}
