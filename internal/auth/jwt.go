package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/andrelima-dev/meuestoque/internal/models"
)

var jwtSecret = []byte("dev-only-secret")

// SetSecret overrides the signing secret. Called once at startup with the
// configured value.
func SetSecret(secret string) {
	jwtSecret = []byte(secret)
}

var ErrInvalidToken = errors.New("invalid token")

func GenerateToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(15 * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseToken(tokenStr string) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return jwtSecret, nil
	})
}

// TokenClaims parses the Authorization header value ("Bearer <token>") and
// returns the token with its claims.
func TokenClaims(authorization string) (*jwt.Token, jwt.MapClaims, error) {
	tokenStr := strings.TrimPrefix(authorization, "Bearer ")
	if tokenStr == authorization {
		return nil, nil, ErrInvalidToken
	}
	token, err := ParseToken(tokenStr)
	if err != nil || !token.Valid {
		return nil, nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil, ErrInvalidToken
	}
	return token, claims, nil
}

// UserIDFromClaims extracts the subject as an int user id.
func UserIDFromClaims(claims jwt.MapClaims) (int, bool) {
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, false
	}
	return int(sub), true
}
