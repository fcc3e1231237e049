package auth

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenLifetime = 24 * time.Hour

// IssueToken signs an HS256 session token carrying the opaque identity the
// cart and order layers key on, plus a role ("user" or "guest").
func IssueToken(identity, role string) (string, error) {
	claims := jwt.MapClaims{
		"identity": identity,
		"role":     role,
		"exp":      time.Now().Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
