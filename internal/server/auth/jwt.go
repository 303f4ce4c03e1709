// Package auth verifies the HS256 access tokens minted by the identity
// provider and turns them into an identity.AccessControl.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vaultkeeper/internal/common"
	"github.com/dmitrijs2005/vaultkeeper/internal/server/identity"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the registered claims plus the acting user and role.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role,omitempty"`
}

// GenerateToken signs a token for ac. The server never issues tokens itself;
// this is used by tooling and tests that stand in for the identity provider.
func GenerateToken(ac identity.AccessControl, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: ac.UserID,
		Role:   ac.Role,
	})

	return token.SignedString(secretKey)
}

// ParseToken validates tokenString and returns the principal it names.
// Every failure wraps common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (identity.AccessControl, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return identity.AccessControl{}, fmt.Errorf("%w: expired", common.ErrInvalidToken)
		}
		return identity.AccessControl{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid {
		return identity.AccessControl{}, common.ErrInvalidToken
	}
	// uuid.Parse also takes braced, urn and bare-hex forms; the rest of the
	// system compares ids in canonical form.
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return identity.AccessControl{}, fmt.Errorf("%w: bad user id", common.ErrInvalidToken)
	}

	role := claims.Role
	if role == "" {
		role = identity.RoleUser
	}
	return identity.AccessControl{UserID: userID.String(), Role: role}, nil
}
