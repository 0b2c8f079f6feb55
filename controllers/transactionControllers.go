package controllers

import (
	"net/http"
	"time"

	"care-pay/configuration"
	"care-pay/services"

	"github.com/gin-gonic/gin"
)

// GetDoctorTransactions returns the doctor's ledger entries with earnings
// totals folded from the same listing, so the dashboard can never drift from
// the ledger.
func GetDoctorTransactions(c *gin.Context) {
	txns, err := services.ListTransactionsForDoctor(configuration.DB, c.GetString("doctorID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":       "Success",
		"transactions": txns,
		"summary":      services.Summarize(txns, time.Now()),
		"monthly":      services.MonthlyTotals(txns),
	})
}

// GetPatientTransactions returns the patient's ledger entries plus their
// wallet balance and spend summary.
func GetPatientTransactions(c *gin.Context) {
	patientID := c.GetString("patientID")

	txns, err := services.ListTransactionsForPatient(configuration.DB, patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	balance, err := services.GetWalletBalance(configuration.DB, patientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wallet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":         "Success",
		"transactions":   txns,
		"summary":        services.Summarize(txns, time.Now()),
		"wallet_balance": balance,
	})
}

// GetWallet returns the patient's refund credit.
func GetWallet(c *gin.Context) {
	balance, err := services.GetWalletBalance(configuration.DB, c.GetString("patientID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wallet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"Status":        "Success",
		"Wallet Amount": balance,
	})
}

// GetAllTransactions returns the full ledger for the admin view.
func GetAllTransactions(c *gin.Context) {
	txns, err := services.ListAllTransactions(configuration.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"Status": "Success", "transactions": txns})
}

// GetPlatformRevenue folds the full ledger into platform totals. Totals are
// recomputed on every call rather than cached.
func GetPlatformRevenue(c *gin.Context) {
	txns, err := services.ListAllTransactions(configuration.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"message": "Revenue details fetched successfully",
		"revenue": services.Summarize(txns, time.Now()),
		"monthly": services.MonthlyTotals(txns),
	})
}
