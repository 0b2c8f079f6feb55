package controllers

import (
	"net/http"

	"care-pay/configuration"
	"care-pay/services"

	"github.com/gin-gonic/gin"
)

// SetPricing saves the doctor's consultation fees. Fails when the doctor has
// no payee account yet or a fee is out of bounds.
func SetPricing(c *gin.Context) {
	var input struct {
		OnlineFee   int64 `json:"online_fee" binding:"required"`
		InPersonFee int64 `json:"in_person_fee" binding:"required"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	doctorID := c.GetString("doctorID")
	if err := services.SetPricing(configuration.DB, doctorID, input.OnlineFee, input.InPersonFee); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"message": "Consultation fees saved",
	})
}

// GetPricing returns a doctor's fees. Zero fees mean the doctor has not set
// pricing yet, not a free consultation.
func GetPricing(c *gin.Context) {
	doctorID := c.Param("doctor_id")
	if doctorID == "" {
		doctorID = c.GetString("doctorID")
	}

	pricing, err := services.GetPricing(configuration.DB, doctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pricing"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"pricing": pricing,
	})
}
