package authentication

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"care-pay/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func adminKey() []byte {
	if secret := os.Getenv("ADMIN_JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("adminKey")
}

func GenerateAdminToken(username string) (string, error) {
	claims := &models.AdminClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(adminKey())
}

// verify Admin Token
func AdminAuthentication(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		return adminKey(), nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*models.AdminClaims); ok && token.Valid {
		return claims.Username, nil
	}
	return "", errors.New("invalid token")
}

//Admin Auth middleware

func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")

		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing the authorization header"})
			return
		}

		authHeader := strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer"))

		username, err := AdminAuthentication(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set("username", username)
		c.Next()
	}
}
