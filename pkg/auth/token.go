package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ezbase/ezbase/pkg/domain"
)

// Claims is the signed claim set issued at login and account creation.
// Subject fields are copied from the account; tokens are never persisted.
type Claims struct {
	jwt.RegisteredClaims
	UserID        string `json:"user_id,omitempty"`
	Email         string `json:"email,omitempty"`
	Name          string `json:"name,omitempty"`
	Role          string `json:"role,omitempty"`
	Authenticated bool   `json:"authenticated"`
}

// SignToken produces a signed HS256 claim set over the account's subject
// fields. The account must already be sanitized; a token must never embed a
// password hash.
func SignToken(account domain.Document, role string, secret []byte, ttl time.Duration) (string, error) {
	email, _ := account["email"].(string)
	name, _ := account["name"].(string)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
		UserID:        account.ID(),
		Email:         email,
		Name:          name,
		Role:          role,
		Authenticated: true,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("%w: failed to sign token: %v", domain.ErrInternal, err)
	}
	return signed, nil
}

// VerifyToken checks the signature and expiry before trusting any claims
func VerifyToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token: %v", domain.ErrAuth, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", domain.ErrAuth)
	}
	return claims, nil
}

// signToken issues a token for the given sanitized account with the
// service's secret and TTL
func (s *Service) signToken(account domain.Document, role string) (string, error) {
	return SignToken(account, role, s.secret, s.tokenTTL)
}
