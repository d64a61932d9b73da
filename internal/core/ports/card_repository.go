package ports

import (
	"context"

	"github.com/bondledger/prizebond-api/internal/core/domain"
)

// CardRepository persists cards and their embedded bonds. Every method is
// scoped by ownerID: a card owned by someone else behaves exactly like a
// missing card and yields domain.ErrCardNotFound.
type CardRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Card, error)
	FindByID(ctx context.Context, ownerID, cardID string) (*domain.Card, error)
	// FindByBondNumber returns the owner's cards holding at least one bond with number.
	FindByBondNumber(ctx context.Context, ownerID, number string) ([]*domain.Card, error)
	Create(ctx context.Context, card *domain.Card) (*domain.Card, error)
	Rename(ctx context.Context, ownerID, cardID, name string) (*domain.Card, error)
	Delete(ctx context.Context, ownerID, cardID string) error

	// AddBond appends bond atomically and returns the updated card.
	AddBond(ctx context.Context, ownerID, cardID string, bond domain.PrizeBond) (*domain.Card, error)
	// UpdateBond overwrites number, purchase date and status of bond.ID.
	// Returns domain.ErrBondNotFound when the card has no such bond.
	UpdateBond(ctx context.Context, ownerID, cardID string, bond domain.PrizeBond) (*domain.Card, error)
	// RemoveBond pulls bondID from the card. Removing an unknown bond id is not an error.
	RemoveBond(ctx context.Context, ownerID, cardID, bondID string) error
}

// IdempotencyStore remembers which card a client-supplied key produced.
type IdempotencyStore interface {
	// Lookup returns the card id stored for key, or "" when none.
	Lookup(ctx context.Context, ownerID, key string) (string, error)
	Remember(ctx context.Context, ownerID, key, cardID string) error
}
