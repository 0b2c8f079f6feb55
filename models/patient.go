package models

import "github.com/golang-jwt/jwt/v5"

type Patient struct {
	PatientID string `json:"patient_id" gorm:"primaryKey"`
	Name      string `json:"name"`
	Phone     string `json:"phone" validate:"required"`
	Email     string `json:"email" gorm:"unique"`
	Password  string `json:"password"`
}

type PatientClaims struct {
	PatientID string `json:"patient_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}
