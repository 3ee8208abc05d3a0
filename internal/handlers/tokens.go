// internal/handlers/tokens.go
package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ammerola/stockdesk/internal/core/domain"
	"github.com/ammerola/stockdesk/internal/handlers/middleware"
)

// claims is the JWT payload
type claims struct {
	Name  string      `json:"nombre"`
	Email string      `json:"email"`
	Role  domain.Role `json:"rol"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 session tokens
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ middleware.Verifier = (*Tokens)(nil)

// NewTokens creates a token issuer. A zero ttl means 24 hours.
func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for user
func (t *Tokens) Issue(user domain.User) (string, error) {
	now := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	})

	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns the user it was issued to
func (t *Tokens) Verify(raw string) (domain.User, error) {
	c := &claims{}
	token, err := jwt.ParseWithClaims(raw, c, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return domain.User{}, errors.New("invalid token")
	}

	return domain.User{
		ID:    domain.ID(c.Subject),
		Name:  c.Name,
		Email: c.Email,
		Role:  c.Role,
	}, nil
}
