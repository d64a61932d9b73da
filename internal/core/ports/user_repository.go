package ports

import (
	"context"

	"github.com/bondledger/prizebond-api/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	// FindByEmail matches the email exactly. Returns domain.ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create persists a new user. Returns domain.ErrUserExists on a duplicate email.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
