package authentication

import (
	"errors"
	"os"
	"strings"
	"time"

	"care-pay/configuration"
	"care-pay/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func patientKey() []byte {
	if secret := os.Getenv("PATIENT_JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("patientKey")
}

// Generating jwt token for patient
func GeneratePatientToken(patientID, email string) (string, error) {
	claims := &models.PatientClaims{
		PatientID: patientID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(patientKey())
}

func AuthenticatePatient(signedStringToken string) (string, error) {
	var patientClaims models.PatientClaims
	token, err := jwt.ParseWithClaims(signedStringToken, &patientClaims, func(token *jwt.Token) (interface{}, error) {
		return patientKey(), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("token is not valid")
	}

	claims, ok := token.Claims.(*models.PatientClaims)
	if !ok {
		return "", errors.New("couldn't parse claims")
	}
	return claims.PatientID, nil
}

func PatientAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "User Authorization is missing"})
			return
		}

		authHeader := strings.Replace(tokenString, "Bearer ", "", 1)
		if IsTokenRevoked(authHeader) {
			c.AbortWithStatusJSON(401, gin.H{"error": "token has been revoked"})
			return
		}
		patientID, err := AuthenticatePatient(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": err.Error()})
			return
		}
		c.Set("patientID", patientID)
		c.Next()
	}
}

// RevokeToken blacklists a token until it would have expired anyway.
func RevokeToken(token string) error {
	return configuration.SetRedis("blacklist:"+token, "revoked", time.Hour*24)
}

// IsTokenRevoked reports whether a token was blacklisted by logout.
func IsTokenRevoked(token string) bool {
	_, err := configuration.GetRedis("blacklist:" + token)
	return err == nil
}
