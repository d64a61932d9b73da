package ports

import (
	"context"

	"github.com/bondledger/prizebond-api/internal/core/domain"
)

// AuthService registers users and exchanges credentials for sessions.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.Session, error)
}

// SessionIssuer mints signed session tokens.
type SessionIssuer interface {
	Issue(user *domain.User) (*domain.Session, error)
}

// SessionVerifier turns a token back into a claim. A nil claim means
// unauthenticated; implementations never return errors or panic.
type SessionVerifier interface {
	Verify(token string) *domain.SessionClaim
}
