package controllers

import (
	"net/http"

	"care-pay/configuration"
	"care-pay/models"
	"care-pay/services"

	"github.com/gin-gonic/gin"
)

type payeeAccountInput struct {
	Kind          string `json:"kind" binding:"required"`
	BankName      string `json:"bank_name"`
	AccountTitle  string `json:"account_title"`
	AccountNumber string `json:"account_number"`
	IBAN          string `json:"iban"`
	ProviderName  string `json:"provider_name"`
	PhoneNumber   string `json:"phone_number"`
	IsDefault     bool   `json:"is_default"`
}

func addAccountFor(c *gin.Context, ownerID, ownerRole string) {
	var input payeeAccountInput
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	account := models.PayeeAccount{
		OwnerID:       ownerID,
		OwnerRole:     ownerRole,
		Kind:          input.Kind,
		BankName:      input.BankName,
		AccountTitle:  input.AccountTitle,
		AccountNumber: input.AccountNumber,
		IBAN:          input.IBAN,
		ProviderName:  input.ProviderName,
		PhoneNumber:   input.PhoneNumber,
		IsDefault:     input.IsDefault,
	}

	if err := services.AddAccount(configuration.DB, &account); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"message": "Payment account added",
		"account": account,
	})
}

// AddDoctorAccount registers a bank account or mobile wallet for the doctor.
func AddDoctorAccount(c *gin.Context) {
	addAccountFor(c, c.GetString("doctorID"), models.RoleDoctor)
}

// AddPatientAccount registers a payment method for the patient.
func AddPatientAccount(c *gin.Context) {
	addAccountFor(c, c.GetString("patientID"), models.RolePatient)
}

func listAccountsFor(c *gin.Context, ownerID string) {
	accounts, err := services.ListAccounts(configuration.DB, ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment accounts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"Status":   "Success",
		"accounts": accounts,
	})
}

func ListDoctorAccounts(c *gin.Context) {
	listAccountsFor(c, c.GetString("doctorID"))
}

func ListPatientAccounts(c *gin.Context) {
	listAccountsFor(c, c.GetString("patientID"))
}

func removeAccountFor(c *gin.Context, ownerID string) {
	if err := services.RemoveAccount(configuration.DB, c.Param("id"), ownerID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"message": "Payment account removed",
	})
}

func RemoveDoctorAccount(c *gin.Context) {
	removeAccountFor(c, c.GetString("doctorID"))
}

func RemovePatientAccount(c *gin.Context) {
	removeAccountFor(c, c.GetString("patientID"))
}
