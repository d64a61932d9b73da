package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bondledger/prizebond-api/internal/core/domain"
)

// sessionClaims is the signed payload of the auth_token cookie.
type sessionClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies HS256 session tokens.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// SessionOption customises a SessionManager.
type SessionOption func(*SessionManager)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) SessionOption {
	return func(m *SessionManager) { m.now = now }
}

func NewSessionManager(secret string, opts ...SessionOption) (*SessionManager, error) {
	if secret == "" {
		return nil, errors.New("session: signing secret is empty")
	}
	m := &SessionManager{secret: []byte(secret), ttl: domain.SessionTTL, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// TTL is the lifetime of every token this manager issues.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a token for user valid for exactly TTL from now.
func (m *SessionManager) Issue(user *domain.User) (*domain.Session, error) {
	// NumericDate has second precision; truncating keeps exp = iat + ttl exact.
	issued := m.now().UTC().Truncate(time.Second)
	expires := issued.Add(m.ttl)

	claims := sessionClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, err
	}

	return &domain.Session{
		Token: signed,
		Claim: domain.SessionClaim{
			UserID:    user.ID,
			Email:     user.Email,
			Name:      user.Name,
			IssuedAt:  issued,
			ExpiresAt: expires,
		},
	}, nil
}

// Verify returns the claim encoded in token, or nil if the token is
// malformed, signed with another key or algorithm, or expired.
func (m *SessionManager) Verify(token string) *domain.SessionClaim {
	if token == "" {
		return nil
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid || claims.UserID == "" {
		return nil
	}

	out := &domain.SessionClaim{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Name:      claims.Name,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time.UTC()
	}
	return out
}
