package controllers

import (
	"net/http"
	"strings"

	"care-pay/authentication"
	"care-pay/configuration"
	"care-pay/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Function to handle patient signup
func PatientSignup(c *gin.Context) {
	var patient models.Patient
	if err := c.BindJSON(&patient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Struct(patient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existingPatient models.Patient
	if err := configuration.DB.Where("email = ?", patient.Email).First(&existingPatient).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Patient already exists"})
		return
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "database error"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(patient.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	patient.Password = string(hashedPassword)
	patient.PatientID = "pt-" + uuid.New().String()[:8]

	if err := configuration.DB.Create(&patient).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create patient"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":     "Success",
		"message":    "Signup successful",
		"patient_id": patient.PatientID,
	})
}

// PatientLogin handles the patient login process
func PatientLogin(c *gin.Context) {
	var loginReq struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.BindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existingPatient models.Patient
	if err := configuration.DB.Where("email = ?", loginReq.Email).First(&existingPatient).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(existingPatient.Password), []byte(loginReq.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := authentication.GeneratePatientToken(existingPatient.PatientID, loginReq.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"message": "Login successful",
		"token":   token,
	})
}

// Function to handle doctor signup
func DoctorSignup(c *gin.Context) {
	var doctor models.Doctor
	if err := c.BindJSON(&doctor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existingDoctor models.Doctor
	if err := configuration.DB.Where("email = ?", doctor.Email).First(&existingDoctor).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": "Doctor already exists"})
		return
	} else if err != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "database error"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(doctor.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	doctor.Password = string(hashedPassword)
	doctor.DoctorID = "dr-" + uuid.New().String()[:8]

	if err := configuration.DB.Create(&doctor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create doctor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":    "Success",
		"message":   "Signup successful",
		"doctor_id": doctor.DoctorID,
	})
}

// DoctorLogin handles the doctor login process
func DoctorLogin(c *gin.Context) {
	var loginReq struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.BindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doctor, err := authentication.GetDoctorByEmail(loginReq.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(doctor.Password), []byte(loginReq.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := authentication.GenerateDoctorToken(doctor.Email, doctor.DoctorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"message": "Login successful",
		"token":   token,
	})
}

// AdminLogin handles the admin login process
func AdminLogin(c *gin.Context) {
	var loginReq struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.BindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var admin models.Admin
	if err := configuration.DB.Where("username = ?", loginReq.Username).First(&admin).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(loginReq.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := authentication.GenerateAdminToken(admin.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"Status":  "Success",
		"message": "Login successful",
		"token":   token,
	})
}

// Logout blacklists the caller's token until it expires.
func Logout(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing the authorization header"})
		return
	}
	authHeader := strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer"))
	if err := authentication.RevokeToken(authHeader); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"Status": "Success", "message": "Logged out"})
}
