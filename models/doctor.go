package models

import "github.com/golang-jwt/jwt/v5"

type Doctor struct {
	DoctorID       string `json:"doctor_id" gorm:"primaryKey"`
	Name           string `json:"name" gorm:"not null"`
	Specialization string `json:"specialization"`
	Email          string `json:"email" gorm:"unique"`
	Password       string `json:"password" gorm:"not null"`
	Phone          string `json:"phone"`
}

type DoctorClaims struct {
	DoctorID    string `json:"doctor_id"`
	DoctorEmail string `json:"email"`
	jwt.RegisteredClaims
}
