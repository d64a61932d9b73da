package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bondledger/prizebond-api/internal/core/domain"
	"github.com/bondledger/prizebond-api/internal/core/ports"
)

// dummyHash is compared against when the email is unknown so that both
// failure paths spend the same bcrypt work.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("prizebond-dummy-password"), bcrypt.DefaultCost)

// AuthService implements registration and login.
type AuthService struct {
	repo     ports.UserRepository
	sessions ports.SessionIssuer
	cost     int
	log      zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, sessions ports.SessionIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, sessions: sessions, cost: bcrypt.DefaultCost, log: log}
}

// Register creates a user. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" || email == "" || password == "" {
		return nil, domain.NewValidationError("name, email and password are required")
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("register: hash: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login verifies credentials and issues a session. An unknown email and a
// wrong password both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("login: lookup: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Debug().Str("user_id", user.ID).Msg("password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	session, err := s.sessions.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("login: issue session: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return session, nil
}
