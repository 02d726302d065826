// Package auth issues and verifies the bearer tokens that identify journal users.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims carries the journal user; Subject holds the user UUID
type Claims struct {
	Email string `json:"email,omitempty"`

	jwt.RegisteredClaims
}

// UserID parses the subject claim
func (c Claims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}
	return id, nil
}

// JWT signs and verifies HS256 tokens
type JWT struct {
	Secret   []byte
	TokenTTL time.Duration
	Issuer   string
}

// NewJWT creates a JWT with the given secret, lifetime and issuer
func NewJWT(secret string, ttl time.Duration, issuer string) JWT {
	return JWT{Secret: []byte(secret), TokenTTL: ttl, Issuer: issuer}
}

// IssueForUser signs a token whose subject is userID
func (j JWT) IssueForUser(userID uuid.UUID, email string) (string, time.Time, error) {
	return j.Sign(Claims{
		Email:            email,
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()},
	})
}

// Sign fills in missing time claims and the issuer, then signs with HS256
func (j JWT) Sign(claims Claims) (token string, expiresAt time.Time, err error) {
	now := time.Now().UTC()
	if claims.IssuedAt == nil {
		claims.IssuedAt = jwt.NewNumericDate(now)
	}
	if claims.NotBefore == nil {
		claims.NotBefore = jwt.NewNumericDate(now.Add(-5 * time.Second))
	}
	if claims.ExpiresAt == nil {
		expiresAt = now.Add(j.TokenTTL)
		claims.ExpiresAt = jwt.NewNumericDate(expiresAt)
	} else {
		expiresAt = claims.ExpiresAt.Time
	}
	if claims.Issuer == "" {
		claims.Issuer = j.Issuer
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(j.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return s, expiresAt, nil
}

// Verify checks signature, algorithm and time claims
func (j JWT) Verify(token string) (Claims, error) {
	if token == "" {
		return Claims{}, ErrMissingToken
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return j.Secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	c, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	return *c, nil
}

// Authenticate verifies token and returns the user it was issued for
func (j JWT) Authenticate(token string) (uuid.UUID, error) {
	claims, err := j.Verify(token)
	if err != nil {
		return uuid.Nil, err
	}
	return claims.UserID()
}

// BearerToken extracts the token from an Authorization value.
// Both "Bearer <token>" and a bare token are accepted.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) >= 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
