package controllers

import (
	"fmt"
	"log"
	"net/http"

	"care-pay/configuration"
	"care-pay/models"
	"care-pay/services"
	"care-pay/sse"

	"github.com/gin-gonic/gin"
)

// CancelAppointment is a handler function for cancelling an appointment.
// Cancelling a paid appointment runs refund reconciliation: the original
// ledger entry flips to refunded, a refund entry is appended and the
// patient's wallet is credited, all in one unit.
func CancelAppointment(c *gin.Context) {
	var input struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cancellation reason is required"})
		return
	}

	appointmentID := c.Param("id")
	refund, err := services.CancelPaidAppointment(configuration.DB, appointmentID, c.GetString("doctorID"), input.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if refund == nil {
		c.JSON(http.StatusOK, gin.H{
			"message": "Appointment cancelled. No payment was on record, nothing to refund",
		})
		return
	}

	go notifyRefundIssued(refund)

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Appointment cancelled. Refund amount: %d", refund.Amount),
		"refund":  refund,
	})
}

func notifyRefundIssued(refund *models.Transaction) {
	sse.Events.Broadcast(fmt.Sprintf("refund_issued:%s", refund.TransactionID))

	var patient models.Patient
	if err := configuration.DB.Where("patient_id = ?", refund.PatientID).First(&patient).Error; err != nil {
		log.Println("Failed to fetch patient for refund notification:", err)
		return
	}
	msg := fmt.Sprintf("Your appointment was cancelled and Rs. %d has been credited to your wallet. %s",
		refund.Amount, refund.Reason)
	if err := SendRefundEmail(msg, patient.Email); err != nil {
		log.Println(&services.PartialFailureError{Step: "refund email", Err: err})
	}
}

// GetAppointment returns one appointment created by a paid request. The
// lookup is scoped to the caller, so a doctor or patient can only read their
// own appointments.
func GetAppointment(c *gin.Context) {
	appointment, err := services.FindAppointment(configuration.DB,
		c.Param("id"), c.GetString("doctorID"), c.GetString("patientID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"Status": "Success", "appointment": appointment})
}
