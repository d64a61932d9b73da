package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bondledger/prizebond-api/internal/core/domain"
	"github.com/bondledger/prizebond-api/internal/core/ports"
)

// AddBond appends a bond in "hold" status purchased now. The card must be
// owned by ownerID and must not already hold the same number.
func (s *CardService) AddBond(ctx context.Context, ownerID, cardID, number string) (*domain.Card, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, domain.NewValidationError("bond number is required")
	}

	card, err := s.repo.FindByID(ctx, ownerID, cardID)
	if err != nil {
		return nil, err
	}
	// Checked against a read snapshot: two concurrent adds of the same number
	// can both pass. The store does not enforce uniqueness.
	if card.HasNumber(number, "") {
		return nil, domain.ErrDuplicateBond
	}

	updated, err := s.repo.AddBond(ctx, ownerID, cardID, domain.PrizeBond{
		Number:       number,
		PurchaseDate: s.now().UTC(),
		Status:       domain.BondHold,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("card_id", cardID).Str("number", number).Msg("bond added")
	return updated, nil
}

// UpdateBond replaces number, purchase date and status. Any status may move
// to any other status.
func (s *CardService) UpdateBond(ctx context.Context, in ports.UpdateBondInput) (*domain.Card, error) {
	if in.OwnerID == "" {
		return nil, domain.ErrUnauthorized
	}
	in.Number = strings.TrimSpace(in.Number)

	var fields []string
	if in.Number == "" {
		fields = append(fields, "number is required")
	}
	if !in.Status.Valid() {
		fields = append(fields, "status must be one of: hold win sell")
	}
	if in.PurchaseDate.IsZero() {
		fields = append(fields, "purchaseDate is required")
	}
	if len(fields) > 0 {
		return nil, domain.NewValidationError(fields...)
	}

	card, err := s.repo.FindByID(ctx, in.OwnerID, in.CardID)
	if err != nil {
		return nil, err
	}
	if card.Bond(in.BondID) == nil {
		return nil, domain.ErrBondNotFound
	}
	if card.HasNumber(in.Number, in.BondID) {
		return nil, domain.ErrDuplicateBond
	}

	updated, err := s.repo.UpdateBond(ctx, in.OwnerID, in.CardID, domain.PrizeBond{
		ID:           in.BondID,
		Number:       in.Number,
		PurchaseDate: in.PurchaseDate.UTC(),
		Status:       in.Status,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("card_id", in.CardID).
		Str("bond_id", in.BondID).
		Str("status", string(in.Status)).
		Msg("bond updated")
	return updated, nil
}

// DeleteBond removes a single bond. Deleting an id the card does not hold
// succeeds and leaves the card unchanged.
func (s *CardService) DeleteBond(ctx context.Context, ownerID, cardID, bondID string) error {
	if ownerID == "" {
		return domain.ErrUnauthorized
	}
	return s.repo.RemoveBond(ctx, ownerID, cardID, bondID)
}

// DeleteBonds removes each bond with its own store call. There is no
// atomicity across the batch: on partial failure the bonds already removed
// stay removed and the rest are reported in Failed.
func (s *CardService) DeleteBonds(ctx context.Context, ownerID, cardID string, bondIDs []string) (*ports.BatchDeleteResult, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(bondIDs) == 0 {
		return nil, domain.NewValidationError("bondIds must not be empty")
	}

	// Resolve ownership once so a foreign card is a 404, not a list of failures.
	if _, err := s.repo.FindByID(ctx, ownerID, cardID); err != nil {
		return nil, err
	}

	res := &ports.BatchDeleteResult{Deleted: []string{}, Failed: []ports.BondFailure{}}
	for _, id := range bondIDs {
		if err := s.repo.RemoveBond(ctx, ownerID, cardID, id); err != nil {
			res.Failed = append(res.Failed, ports.BondFailure{BondID: id, Err: err})
			continue
		}
		res.Deleted = append(res.Deleted, id)
	}

	if len(res.Failed) > 0 {
		s.logger.Warn().
			Str("card_id", cardID).
			Int("deleted", len(res.Deleted)).
			Int("failed", len(res.Failed)).
			Msg("batch delete partially failed")
	}
	return res, nil
}

// SearchBonds finds bonds whose number equals number across all of the
// owner's cards.
func (s *CardService) SearchBonds(ctx context.Context, ownerID, number string) ([]ports.BondMatch, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, domain.NewValidationError("number is required")
	}

	cards, err := s.repo.FindByBondNumber(ctx, ownerID, number)
	if err != nil {
		return nil, fmt.Errorf("search bonds: %w", err)
	}

	matches := []ports.BondMatch{}
	for _, c := range cards {
		for _, b := range c.PrizeBonds {
			if b.Number == number {
				matches = append(matches, ports.BondMatch{CardID: c.ID, CardName: c.Name, Bond: b})
			}
		}
	}
	return matches, nil
}
