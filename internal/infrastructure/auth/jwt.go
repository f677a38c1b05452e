// Package auth issues and verifies the bearer tokens guarding admin routes
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/domain"
)

// Claims is the token payload issued to planner users
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
}

// Caller converts the claims into the domain caller
func (c *Claims) Caller() *domain.Caller {
	return &domain.Caller{UserID: c.UserID, Email: c.Email, Role: c.Role}
}

// GenerateToken signs claims with HS256, stamping issued-at and expiry from now
func GenerateToken(secret []byte, claims *Claims, expiry time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("auth: empty signing secret")
	}

	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(expiry))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses a token string and returns its claims.
// Only HS256 is accepted. When issuer is non-empty it must match.
func ValidateToken(secret []byte, tokenStr string, issuer string) (*Claims, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: token verification not configured", domain.ErrUnauthorized)
	}

	options := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		options = append(options, jwt.WithIssuer(issuer))
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v (only HS256 allowed)", t.Header["alg"])
		}
		return secret, nil
	}, options...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: token has no user_id", domain.ErrUnauthorized)
	}
	return claims, nil
}
