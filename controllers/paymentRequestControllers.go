package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"care-pay/configuration"
	"care-pay/models"
	"care-pay/services"
	"care-pay/sse"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type createRequestInput struct {
	PatientID             string `json:"patient_id" validate:"required"`
	AppointmentType       string `json:"appointment_type" validate:"required"`
	AppointmentDate       string `json:"appointment_date"`
	AppointmentTime       string `json:"appointment_time"`
	AppointmentMode       string `json:"appointment_mode"`
	Amount                int64  `json:"amount" validate:"required,gt=0"`
	Reason                string `json:"reason" validate:"required"`
	RescheduleReason      string `json:"reschedule_reason"`
	OriginalAppointmentID string `json:"original_appointment_id"`
}

// CreatePaymentRequest lets a doctor bill a patient for a follow-up. The
// appointment itself is only created once the patient pays.
func CreatePaymentRequest(c *gin.Context) {
	var input createRequestInput
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if err := validate.Struct(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request := models.PaymentRequest{
		DoctorID:              c.GetString("doctorID"),
		PatientID:             input.PatientID,
		AppointmentType:       input.AppointmentType,
		AppointmentDate:       input.AppointmentDate,
		AppointmentTime:       input.AppointmentTime,
		AppointmentMode:       input.AppointmentMode,
		Amount:                input.Amount,
		Reason:                input.Reason,
		RescheduleReason:      input.RescheduleReason,
		OriginalAppointmentID: input.OriginalAppointmentID,
	}

	if err := services.CreatePaymentRequest(configuration.DB, &request); err != nil {
		respondServiceError(c, err)
		return
	}

	go notifyPaymentRequestCreated(request)

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"message": "Payment request sent to patient",
		"request": request,
	})
}

// ListPatientPaymentRequests returns the requests addressed to the patient,
// optionally filtered by status.
func ListPatientPaymentRequests(c *gin.Context) {
	requests, err := services.ListPaymentRequestsForPatient(
		configuration.DB, c.GetString("patientID"), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"Status": "Success", "requests": requests})
}

// ListDoctorPaymentRequests returns the requests the doctor has issued.
func ListDoctorPaymentRequests(c *gin.Context) {
	requests, err := services.ListPaymentRequestsForDoctor(
		configuration.DB, c.GetString("doctorID"), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"Status": "Success", "requests": requests})
}

// DeclinePaymentRequest records the patient's refusal. Declined is terminal.
func DeclinePaymentRequest(c *gin.Context) {
	requestID := c.Param("id")
	if err := services.DeclineRequest(configuration.DB, requestID); err != nil {
		respondServiceError(c, err)
		return
	}

	sse.Events.Broadcast(fmt.Sprintf("payment_request_declined:%s", requestID))

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"message": "Payment request declined",
	})
}

type payOutcome struct {
	TransactionID string `json:"transaction_id"`
	AppointmentID string `json:"appointment_id"`
}

// PayPaymentRequest settles a pending request from one of the patient's
// payment accounts, or from the refund wallet. The request flip, appointment
// creation and ledger append are one atomic unit in the service layer; this
// handler only adds the post-commit side effects (receipt mail, event push,
// idempotency record).
func PayPaymentRequest(c *gin.Context) {
	var input struct {
		PayeeAccountID string `json:"payee_account_id"`
		UseWallet      bool   `json:"use_wallet"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	requestID := c.Param("id")

	var result *services.PayResult
	var err error
	if input.UseWallet {
		result, err = services.PayRequestFromWallet(configuration.DB, requestID)
	} else {
		result, err = services.PayRequest(configuration.DB, requestID, input.PayeeAccountID)
	}

	if errors.Is(err, services.ErrAlreadyTerminal) {
		// A retried pay still gets the conflict, plus the original outcome
		// when we have it, so a second browser tab can show the receipt.
		response := gin.H{"error": err.Error()}
		if cached, cacheErr := configuration.GetRedis("pay-outcome:" + requestID); cacheErr == nil {
			var outcome payOutcome
			if json.Unmarshal([]byte(cached), &outcome) == nil {
				response["outcome"] = outcome
			}
		}
		c.JSON(http.StatusConflict, response)
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	recordPayOutcome(requestID, result)
	go notifyPaymentReceived(result)

	c.JSON(http.StatusOK, gin.H{
		"Status":      "Success",
		"message":     "Payment successful",
		"transaction": result.Transaction,
		"appointment": result.Appointment,
	})
}

func recordPayOutcome(requestID string, result *services.PayResult) {
	outcome, err := json.Marshal(payOutcome{
		TransactionID: result.Transaction.TransactionID,
		AppointmentID: result.Appointment.AppointmentID,
	})
	if err != nil {
		return
	}
	if _, err := configuration.SetRedisNX("pay-outcome:"+requestID, outcome, 24*time.Hour); err != nil {
		log.Println("Failed to record pay outcome:", err)
	}
}

func notifyPaymentRequestCreated(request models.PaymentRequest) {
	sse.Events.Broadcast(fmt.Sprintf("payment_request_created:%s", request.RequestID))

	var patient models.Patient
	if err := configuration.DB.Where("patient_id = ?", request.PatientID).First(&patient).Error; err != nil {
		log.Println("Failed to fetch patient for notification:", err)
		return
	}
	msg := fmt.Sprintf("Your doctor has requested a payment of Rs. %d for %s. Reason: %s",
		request.Amount, request.AppointmentType, request.Reason)
	if err := SendPaymentRequestEmail(msg, patient.Email); err != nil {
		log.Println(&services.PartialFailureError{Step: "payment request email", Err: err})
	}
}

func notifyPaymentReceived(result *services.PayResult) {
	sse.Events.Broadcast(fmt.Sprintf("payment_received:%s", result.Transaction.TransactionID))

	var patient models.Patient
	if err := configuration.DB.Where("patient_id = ?", result.Transaction.PatientID).First(&patient).Error; err != nil {
		log.Println("Failed to fetch patient for receipt:", err)
		return
	}

	receipt, err := GenerateReceiptPDF(result.Transaction, result.Appointment)
	if err != nil {
		log.Println(&services.PartialFailureError{Step: "receipt pdf", Err: err})
		return
	}
	msg := fmt.Sprintf("Payment of Rs. %d received. Your appointment %s is confirmed.",
		result.Transaction.Amount, result.Appointment.AppointmentID)
	if err := SendReceiptEmail(msg, patient.Email, "receipt.pdf", receipt); err != nil {
		log.Println(&services.PartialFailureError{Step: "receipt email", Err: err})
	}
}
