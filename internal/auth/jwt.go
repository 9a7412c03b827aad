// Package auth issues and verifies the opaque session tokens the API hands
// out after identity resolution. Tokens are HS256 JWTs binding the internal
// user id to the external identity reference, with a fixed expiry.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/printee/printee/internal/common"
)

// Claims carries the registered claims plus the identity pair the rest of
// the API trusts without re-checking the external identity provider.
type Claims struct {
	jwt.RegisteredClaims
	UserID     int64  `json:"uid"`
	ExternalID string `json:"ext"`
}

// GenerateToken signs a session token for the given identity pair.
func GenerateToken(userID int64, externalID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID:     userID,
		ExternalID: externalID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry of a session token and
// returns its claims. Expired or malformed tokens yield ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
