package services

import (
	"testing"

	"care-pay/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFollowUpRequest(doctorID, patientID string, amount int64) *models.PaymentRequest {
	return &models.PaymentRequest{
		DoctorID:        doctorID,
		PatientID:       patientID,
		AppointmentType: "Follow-up",
		AppointmentDate: "2026-09-15",
		AppointmentTime: "10:00",
		AppointmentMode: models.ModeOnline,
		Amount:          amount,
		Reason:          "Review of lab results",
	}
}

func TestCreatePaymentRequestValidation(t *testing.T) {
	db := setupTestDB(t)

	request := newFollowUpRequest("dr-1", "pt-1", 0)
	err := CreatePaymentRequest(db, request)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "amount", validation.Field)

	request = newFollowUpRequest("dr-1", "pt-1", 1500)
	request.Reason = ""
	err = CreatePaymentRequest(db, request)
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "reason", validation.Field)

	request = newFollowUpRequest("dr-1", "pt-1", 1500)
	require.NoError(t, CreatePaymentRequest(db, request))
	assert.Equal(t, models.RequestStatusPending, request.Status)
	assert.NotEmpty(t, request.RequestID)
}

func TestPayRequestSettlesAtomically(t *testing.T) {
	db := setupTestDB(t)

	account := validWalletAccount("pt-1", models.RolePatient)
	require.NoError(t, AddAccount(db, account))

	request := newFollowUpRequest("dr-1", "pt-1", 1500)
	require.NoError(t, CreatePaymentRequest(db, request))

	result, err := PayRequest(db, request.RequestID, account.AccountID)
	require.NoError(t, err)

	assert.Equal(t, int64(1500), result.Transaction.Amount)
	assert.Equal(t, models.TxnStatusCompleted, result.Transaction.Status)
	assert.Equal(t, models.TxnTypePayment, result.Transaction.Type)
	assert.Equal(t, result.Appointment.AppointmentID, result.Transaction.AppointmentID)
	assert.Equal(t, "JazzCash (03001234567)", result.Transaction.PaymentMethod)

	assert.Equal(t, models.BookingStatusConfirmed, result.Appointment.BookingStatus)
	assert.Equal(t, "paid", result.Appointment.PaymentStatus)
	assert.Equal(t, "2026-09-15", result.Appointment.AppointmentDate)

	paid, err := GetPaymentRequest(db, request.RequestID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPaid, paid.Status)
	assert.Equal(t, result.Appointment.AppointmentID, paid.AppointmentID)

	// exactly one ledger entry and one appointment came out of the pay
	txns, err := ListTransactionsForDoctor(db, "dr-1")
	require.NoError(t, err)
	assert.Len(t, txns, 1)

	// a second pay reports the terminal state instead of settling twice
	_, err = PayRequest(db, request.RequestID, account.AccountID)
	assert.ErrorIs(t, err, ErrAlreadyTerminal)

	txns, _ = ListTransactionsForDoctor(db, "dr-1")
	assert.Len(t, txns, 1)
}

func TestPayRequestWithoutAccount(t *testing.T) {
	db := setupTestDB(t)

	request := newFollowUpRequest("dr-1", "pt-1", 1500)
	require.NoError(t, CreatePaymentRequest(db, request))

	_, err := PayRequest(db, request.RequestID, "no-such-account")
	assert.ErrorIs(t, err, ErrNoPayeeAccount)

	// another patient's account does not count
	other := validWalletAccount("pt-2", models.RolePatient)
	require.NoError(t, AddAccount(db, other))
	_, err = PayRequest(db, request.RequestID, other.AccountID)
	assert.ErrorIs(t, err, ErrNoPayeeAccount)

	// the failed pay left the request pending
	pending, err := GetPaymentRequest(db, request.RequestID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, pending.Status)
}

func TestPayUnknownRequest(t *testing.T) {
	db := setupTestDB(t)
	_, err := PayRequest(db, "REQ-missing", "acc")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeclineIsTerminal(t *testing.T) {
	db := setupTestDB(t)

	account := validWalletAccount("pt-1", models.RolePatient)
	require.NoError(t, AddAccount(db, account))

	request := newFollowUpRequest("dr-1", "pt-1", 1500)
	require.NoError(t, CreatePaymentRequest(db, request))

	require.NoError(t, DeclineRequest(db, request.RequestID))

	declined, err := GetPaymentRequest(db, request.RequestID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusDeclined, declined.Status)

	assert.ErrorIs(t, DeclineRequest(db, request.RequestID), ErrAlreadyTerminal)
	_, err = PayRequest(db, request.RequestID, account.AccountID)
	assert.ErrorIs(t, err, ErrAlreadyTerminal)

	// status never changed after reaching a terminal state
	still, _ := GetPaymentRequest(db, request.RequestID)
	assert.Equal(t, models.RequestStatusDeclined, still.Status)

	assert.ErrorIs(t, DeclineRequest(db, "REQ-missing"), ErrNotFound)
}

func TestPayRequestFromWallet(t *testing.T) {
	db := setupTestDB(t)

	request := newFollowUpRequest("dr-1", "pt-1", 1500)
	require.NoError(t, CreatePaymentRequest(db, request))

	// no wallet at all
	_, err := PayRequestFromWallet(db, request.RequestID)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	// not enough credit
	require.NoError(t, db.Create(&models.Wallet{PatientID: "pt-1", Balance: 1000}).Error)
	_, err = PayRequestFromWallet(db, request.RequestID)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	balance, err := GetWalletBalance(db, "pt-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balance)

	// enough credit settles and debits exactly the amount
	require.NoError(t, db.Model(&models.Wallet{}).Where("patient_id = ?", "pt-1").Update("balance", 2000).Error)
	result, err := PayRequestFromWallet(db, request.RequestID)
	require.NoError(t, err)
	assert.Equal(t, "Wallet Balance", result.Transaction.PaymentMethod)

	balance, err = GetWalletBalance(db, "pt-1")
	require.NoError(t, err)
	assert.Equal(t, int64(500), balance)
}

func TestListPaymentRequestsFilters(t *testing.T) {
	db := setupTestDB(t)

	first := newFollowUpRequest("dr-1", "pt-1", 1500)
	require.NoError(t, CreatePaymentRequest(db, first))
	second := newFollowUpRequest("dr-1", "pt-1", 2500)
	require.NoError(t, CreatePaymentRequest(db, second))
	require.NoError(t, DeclineRequest(db, second.RequestID))

	pending, err := ListPaymentRequestsForPatient(db, "pt-1", models.RequestStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, first.RequestID, pending[0].RequestID)

	all, err := ListPaymentRequestsForDoctor(db, "dr-1", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
