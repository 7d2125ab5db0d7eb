package auth

import (
	"errors"
	"time"

	"findthem_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims are the self-contained session claims embedded in the JWT.
// Validity is determined entirely by signature and expiry; there is no
// server-side session store and thus no revocation before expiry.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string          `json:"id"`
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
}

// GenerateToken issues a signed session token for the account.
func GenerateToken(userID, username string, role models.UserRole, secret []byte, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		UserID:   userID,
		Username: username,
		Role:     role,
	})

	return token.SignedString(secret)
}

// ParseToken validates a session token and returns its claims. It fails
// closed: missing, malformed, expired or badly signed tokens all come back
// as ErrInvalidToken.
func ParseToken(tokenStr string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
