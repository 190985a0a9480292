// Package auth mints and verifies the signed credentials handed to members.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/corpchat/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the standard claims plus the member the credential belongs to.
// The ID claim is random, so two credentials minted in the same second differ.
type Claims struct {
	jwt.RegisteredClaims
	MemberID int64 `json:"mid"`
}

func GenerateToken(memberID int64, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		MemberID: memberID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetMemberIDFromToken verifies the signature and expiry of tokenString.
// Expired credentials yield common.ErrTokenExpired, anything else that fails
// verification common.ErrInvalidToken.
func GetMemberIDFromToken(tokenString string, secretKey []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, common.ErrTokenExpired
		}
		return 0, common.ErrInvalidToken
	}

	if !token.Valid || claims.MemberID == 0 {
		return 0, common.ErrInvalidToken
	}

	return claims.MemberID, nil
}
