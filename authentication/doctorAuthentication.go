package authentication

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"care-pay/configuration"
	"care-pay/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func doctorKey() []byte {
	if secret := os.Getenv("DOCTOR_JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("doctorKey")
}

// Generating token
func GenerateDoctorToken(doctorEmail, doctorID string) (string, error) {
	claims := &models.DoctorClaims{
		DoctorID:    doctorID,
		DoctorEmail: doctorEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(doctorKey())
}

// verify Doctor Token
func DoctorAuthentication(tokenString string) (string, string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.DoctorClaims{}, func(token *jwt.Token) (interface{}, error) {
		return doctorKey(), nil
	})
	if err != nil {
		return "", "", err
	}

	if claims, ok := token.Claims.(*models.DoctorClaims); ok && token.Valid {
		return claims.DoctorEmail, claims.DoctorID, nil
	}
	return "", "", errors.New("invalid token")
}

// Doctor Auth middleware
func DoctorAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")

		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing the authorization header"})
			return
		}

		authHeader := strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer"))
		if IsTokenRevoked(authHeader) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token has been revoked"})
			return
		}

		email, id, err := DoctorAuthentication(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set("email", email)
		c.Set("doctorID", id)
		c.Next()
	}
}

// retrieves Doctor information from the database
func GetDoctorByEmail(email string) (*models.Doctor, error) {
	var doctor models.Doctor
	if err := configuration.DB.Where("email = ?", email).First(&doctor).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}
