// Package auth implements the token signer and password hasher used by the
// session service: HS256 JWTs for access and refresh tokens (signed with
// distinct secrets) and bcrypt password hashing.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/profilehub/profilehub/internal/common"
)

// Claims carries the identity encoded in an access token.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"userId"`
	Email  string `json:"email,omitempty"`
}

// GenerateAccessToken issues a signed access token for the given user.
// Validity is purely a function of signature and expiry; no store lookup
// is ever made to check it.
func GenerateAccessToken(userID int64, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		UserID: userID,
		Email:  email,
	})

	return token.SignedString(secretKey)
}

// GenerateRefreshToken issues a signed refresh token carrying the subject
// and a random jti. The returned string is stored verbatim by the refresh
// token repository; the signature is what makes it unguessable, the jti is
// what makes every issuance distinct.
func GenerateRefreshToken(userID int64, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
	})

	return token.SignedString(secretKey)
}

// ParseAccessToken verifies signature and expiry and returns the claims.
// Expired tokens yield common.ErrTokenExpired; any other verification
// failure yields common.ErrInvalidToken.
func ParseAccessToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
