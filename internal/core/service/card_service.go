package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bondledger/prizebond-api/internal/core/domain"
	"github.com/bondledger/prizebond-api/internal/core/ports"
)

// CardService implements ports.CardService. Every call is scoped by the
// caller's owner id; the repository is trusted to filter on it.
type CardService struct {
	repo   ports.CardRepository
	idem   ports.IdempotencyStore
	logger zerolog.Logger
	now    func() time.Time
}

func NewCardService(repo ports.CardRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *CardService {
	if idem == nil {
		idem = noopIdempotency{}
	}
	return &CardService{repo: repo, idem: idem, logger: logger, now: time.Now}
}

// ListCards returns the owner's cards together with totals across all of them.
func (s *CardService) ListCards(ctx context.Context, ownerID string) ([]*domain.Card, ports.Totals, error) {
	if ownerID == "" {
		return nil, ports.Totals{}, domain.ErrUnauthorized
	}

	cards, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, ports.Totals{}, fmt.Errorf("list cards: %w", err)
	}

	var totals ports.Totals
	for _, c := range cards {
		totals.TotalBond += c.TotalBond()
		totals.TotalWin += c.TotalWin()
	}
	return cards, totals, nil
}

func (s *CardService) GetCard(ctx context.Context, ownerID, cardID string) (*domain.Card, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.FindByID(ctx, ownerID, cardID)
}

// CreateCard creates an empty card. If an idempotency key is provided and
// already seen for this owner, the earlier card is returned instead.
func (s *CardService) CreateCard(ctx context.Context, input ports.CreateCardInput) (*ports.CreateCardResult, error) {
	if input.OwnerID == "" {
		return nil, domain.ErrUnauthorized
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.NewValidationError("card name is required")
	}

	if input.IdempotencyKey != "" {
		if existing := s.replay(ctx, input.OwnerID, input.IdempotencyKey); existing != nil {
			return &ports.CreateCardResult{Card: existing, AlreadyExisted: true}, nil
		}
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.Card{
		OwnerID:    input.OwnerID,
		Name:       name,
		PrizeBonds: []domain.PrizeBond{},
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", input.OwnerID).Msg("failed to create card")
		return nil, fmt.Errorf("create card: %w", err)
	}

	if input.IdempotencyKey != "" {
		if err := s.idem.Remember(ctx, input.OwnerID, input.IdempotencyKey, created.ID); err != nil {
			s.logger.Warn().Err(err).Str("card_id", created.ID).Msg("failed to store idempotency key")
		}
	}

	s.logger.Info().Str("card_id", created.ID).Str("owner_id", input.OwnerID).Msg("card created")
	return &ports.CreateCardResult{Card: created}, nil
}

// replay resolves a previously stored idempotency key. Store failures and
// stale keys fall through to a normal create.
func (s *CardService) replay(ctx context.Context, ownerID, key string) *domain.Card {
	cardID, err := s.idem.Lookup(ctx, ownerID, key)
	if err != nil {
		s.logger.Warn().Err(err).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if cardID == "" {
		return nil
	}
	card, err := s.repo.FindByID(ctx, ownerID, cardID)
	if err != nil {
		return nil
	}
	s.logger.Info().Str("idempotency_key", key).Str("card_id", card.ID).Msg("idempotent replay")
	return card
}

func (s *CardService) RenameCard(ctx context.Context, ownerID, cardID, name string) (*domain.Card, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	return s.repo.Rename(ctx, ownerID, cardID, name)
}

func (s *CardService) DeleteCard(ctx context.Context, ownerID, cardID string) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}
	if err := s.repo.Delete(ctx, ownerID, cardID); err != nil {
		return err
	}
	s.logger.Info().Str("card_id", cardID).Msg("card deleted")
	return nil
}

type noopIdempotency struct{}

func (noopIdempotency) Lookup(context.Context, string, string) (string, error) { return "", nil }

func (noopIdempotency) Remember(context.Context, string, string, string) error { return nil }
