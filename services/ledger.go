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

// NewTransactionID returns an opaque ledger id. Refund entries carry a
// distinct prefix so they are recognizable in exports and support tickets.
func NewTransactionID(refund bool) string {
	random := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	if refund {
		return fmt.Sprintf("TXN-REFUND-%d-%s", time.Now().Unix(), random)
	}
	return fmt.Sprintf("TXN-%d-%s", time.Now().Unix(), random)
}

// AppendTransaction adds an entry to the ledger. Entries are append-only;
// nothing here ever deletes a row.
func AppendTransaction(db *gorm.DB, txn *models.Transaction) error {
	if txn.Amount <= 0 {
		return invalid("amount", "amount must be greater than zero")
	}
	if txn.PatientID == "" || txn.DoctorID == "" {
		return invalid("parties", "patient and doctor are required")
	}
	switch txn.Status {
	case models.TxnStatusCompleted, models.TxnStatusPending, models.TxnStatusRefunded:
	default:
		return invalid("status", "unknown transaction status")
	}
	if txn.Type == "" {
		txn.Type = models.TxnTypePayment
	}
	if txn.Type == models.TxnTypeRefund {
		if txn.Reason == "" {
			return invalid("reason", "refund transactions require a reason")
		}
		if txn.AppointmentID == "" {
			return invalid("appointment_id", "refund transactions must reference the original appointment")
		}
	}
	if txn.TransactionID == "" {
		txn.TransactionID = NewTransactionID(txn.Type == models.TxnTypeRefund)
	}
	return db.Create(txn).Error
}

// ListTransactionsForDoctor returns the doctor's ledger entries, newest first.
func ListTransactionsForDoctor(db *gorm.DB, doctorID string) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := db.Where("doctor_id = ?", doctorID).
		Order("created_at desc").
		Find(&txns).Error
	return txns, err
}

// ListTransactionsForPatient returns the patient's ledger entries, newest first.
func ListTransactionsForPatient(db *gorm.DB, patientID string) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := db.Where("patient_id = ?", patientID).
		Order("created_at desc").
		Find(&txns).Error
	return txns, err
}

// ListAllTransactions returns the full ledger, newest first.
func ListAllTransactions(db *gorm.DB) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := db.Order("created_at desc").Find(&txns).Error
	return txns, err
}

// MarkRefunded flips a completed transaction to refunded. Any other starting
// status is an illegal transition.
func MarkRefunded(db *gorm.DB, transactionID, reason string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var txn models.Transaction
		if err := tx.Where("transaction_id = ?", transactionID).First(&txn).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if txn.Status != models.TxnStatusCompleted {
			return ErrInvalidState
		}
		txn.Status = models.TxnStatusRefunded
		if reason != "" {
			txn.Reason = reason
		}
		return tx.Save(&txn).Error
	})
}

// MarkCompleted flips a pending transaction to completed, the only other
// legal status transition in the ledger.
func MarkCompleted(db *gorm.DB, transactionID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var txn models.Transaction
		if err := tx.Where("transaction_id = ?", transactionID).First(&txn).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if txn.Status != models.TxnStatusPending {
			return ErrInvalidState
		}
		txn.Status = models.TxnStatusCompleted
		return tx.Save(&txn).Error
	})
}

// EarningsSummary is a derived view over ledger entries. It is recomputed on
// every read; no total is ever cached as mutable state.
type EarningsSummary struct {
	TotalEarnings int64 `json:"total_earnings"`
	MonthEarnings int64 `json:"month_earnings"`
	PendingAmount int64 `json:"pending_amount"`
	TotalRefunded int64 `json:"total_refunded"`
	PaymentCount  int   `json:"payment_count"`
	RefundCount   int   `json:"refund_count"`
}

// Summarize folds a list of ledger entries into totals. Gross earnings count
// completed payments only; refund entries accumulate separately and already
// exclude their flipped originals from the gross figure.
func Summarize(txns []models.Transaction, now time.Time) EarningsSummary {
	var summary EarningsSummary
	for _, txn := range txns {
		switch {
		case txn.Type == models.TxnTypeRefund:
			summary.TotalRefunded += txn.Amount
			summary.RefundCount++
		case txn.Status == models.TxnStatusCompleted:
			summary.TotalEarnings += txn.Amount
			summary.PaymentCount++
			if txn.CreatedAt.Year() == now.Year() && txn.CreatedAt.Month() == now.Month() {
				summary.MonthEarnings += txn.Amount
			}
		case txn.Status == models.TxnStatusPending:
			summary.PendingAmount += txn.Amount
		}
	}
	return summary
}

// MonthlyTotals folds completed payments into per-month sums keyed by
// "2006-01", for dashboard charts.
func MonthlyTotals(txns []models.Transaction) map[string]int64 {
	totals := make(map[string]int64)
	for _, txn := range txns {
		if txn.Type != models.TxnTypePayment || txn.Status != models.TxnStatusCompleted {
			continue
		}
		totals[txn.CreatedAt.Format("2006-01")] += txn.Amount
	}
	return totals
}
