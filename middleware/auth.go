package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/Hassanfedawy/dr.mano/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func parseToken(tokenString string) (userID, role string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid token claims")
	}
	userID, _ = claims["user_id"].(string)
	role, _ = claims["role"].(string)
	if userID == "" {
		return "", "", errors.New("invalid token claims")
	}
	return userID, role, nil
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func authenticate(c *gin.Context, tokenString string) {
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		c.Abort()
		return
	}

	userID, role, err := parseToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		c.Abort()
		return
	}

	c.Set("user_id", userID)
	c.Set("role", role)
	c.Next()
}

// ValidateToken rejects requests without a valid session token.
func ValidateToken(c *gin.Context) {
	authenticate(c, bearerToken(c))
}

// ValidateTokenQuery also accepts the token from the "token" query parameter.
// Browser WebSocket clients cannot set an Authorization header on the
// handshake, so the admin order feed passes the token in the URL.
func ValidateTokenQuery(c *gin.Context) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		tokenString = c.Query("token")
	}
	authenticate(c, tokenString)
}

// OptionalToken attaches the caller identity when a valid token is present
// but lets anonymous guests through. Used on cart and order routes.
func OptionalToken(c *gin.Context) {
	tokenString := bearerToken(c)
	if tokenString == "" {
		c.Next()
		return
	}

	userID, role, err := parseToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		c.Abort()
		return
	}

	c.Set("user_id", userID)
	c.Set("role", role)
	c.Next()
}

// RequireAdmin must run after ValidateToken.
func RequireAdmin(c *gin.Context) {
	if role, _ := c.Get("role"); role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin privilege required"})
		c.Abort()
		return
	}
	c.Next()
}
