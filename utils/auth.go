// utils/auth.go
package utils

import (
	"errors"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/SuparBat/CampusConnect/middleware"
)

// HashPassword hashes a plaintext password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash compares a plaintext password against a bcrypt hash
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GetAccountIDFromToken extracts the authenticated account ID from the
// JWT claims the middleware stored on the context.
func GetAccountIDFromToken(c echo.Context) (primitive.ObjectID, error) {
	user, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return primitive.ObjectID{}, errors.New("no token found")
	}

	claims, ok := user.Claims.(*middleware.JwtCustomClaims)
	if !ok {
		return primitive.ObjectID{}, errors.New("invalid claims type")
	}

	return primitive.ObjectIDFromHex(claims.AccountID)
}
