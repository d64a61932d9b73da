package ports

import (
	"context"
	"time"

	"github.com/bondledger/prizebond-api/internal/core/domain"
)

// CreateCardInput carries the data needed to create a card.
type CreateCardInput struct {
	OwnerID        string
	Name           string
	IdempotencyKey string // optional
}

// CreateCardResult is returned by CreateCard.
type CreateCardResult struct {
	Card *domain.Card
	// AlreadyExisted is true when the Idempotency-Key matched an earlier create.
	AlreadyExisted bool
}

// UpdateBondInput carries a full replacement of a bond's editable fields.
type UpdateBondInput struct {
	OwnerID      string
	CardID       string
	BondID       string
	Number       string
	PurchaseDate time.Time
	Status       domain.BondStatus
}

// BondFailure describes one bond id a batch delete could not remove.
type BondFailure struct {
	BondID string
	Err    error
}

// BatchDeleteResult reports a non-atomic batch delete. Deleted and Failed
// together cover every requested id, in request order.
type BatchDeleteResult struct {
	Deleted []string
	Failed  []BondFailure
}

// BondMatch is one search hit.
type BondMatch struct {
	CardID   string
	CardName string
	Bond     domain.PrizeBond
}

// Totals aggregates counts over all of an owner's cards.
type Totals struct {
	TotalBond int
	TotalWin  int
}

// CardService defines use-case operations for cards and their bonds.
type CardService interface {
	ListCards(ctx context.Context, ownerID string) ([]*domain.Card, Totals, error)
	GetCard(ctx context.Context, ownerID, cardID string) (*domain.Card, error)
	CreateCard(ctx context.Context, input CreateCardInput) (*CreateCardResult, error)
	RenameCard(ctx context.Context, ownerID, cardID, name string) (*domain.Card, error)
	DeleteCard(ctx context.Context, ownerID, cardID string) error

	AddBond(ctx context.Context, ownerID, cardID, number string) (*domain.Card, error)
	UpdateBond(ctx context.Context, input UpdateBondInput) (*domain.Card, error)
	DeleteBond(ctx context.Context, ownerID, cardID, bondID string) error
	DeleteBonds(ctx context.Context, ownerID, cardID string, bondIDs []string) (*BatchDeleteResult, error)
	SearchBonds(ctx context.Context, ownerID, number string) ([]BondMatch, error)
}
