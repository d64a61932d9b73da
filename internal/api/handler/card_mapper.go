package handler

import (
	"errors"
	"time"

	"github.com/bondledger/prizebond-api/internal/core/domain"
	"github.com/bondledger/prizebond-api/internal/core/ports"
)

// --- Domain → Response ---

func toBondResponse(b domain.PrizeBond) bondResponse {
	return bondResponse{
		ID:           b.ID,
		Number:       b.Number,
		PurchaseDate: b.PurchaseDate.UTC(),
		Status:       string(b.Status),
	}
}

// toCardResponse always recomputes the derived counts from the bonds.
func toCardResponse(c *domain.Card) cardResponse {
	bonds := make([]bondResponse, 0, len(c.PrizeBonds))
	for _, b := range c.PrizeBonds {
		bonds = append(bonds, toBondResponse(b))
	}
	return cardResponse{
		ID:         c.ID,
		Name:       c.Name,
		PrizeBonds: bonds,
		TotalBond:  c.TotalBond(),
		TotalWin:   c.TotalWin(),
		CreatedAt:  c.CreatedAt.UTC(),
		UpdatedAt:  c.UpdatedAt.UTC(),
	}
}

func toListResponse(cards []*domain.Card, totals ports.Totals) listCardsResponse {
	out := listCardsResponse{
		Cards:  make([]cardResponse, 0, len(cards)),
		Totals: totalsResponse{TotalBond: totals.TotalBond, TotalWin: totals.TotalWin},
	}
	for _, c := range cards {
		out.Cards = append(out.Cards, toCardResponse(c))
	}
	return out
}

func toBatchDeleteResponse(res *ports.BatchDeleteResult) batchDeleteResponse {
	out := batchDeleteResponse{
		Deleted: res.Deleted,
		Failed:  make([]bondFailureResponse, 0, len(res.Failed)),
	}
	if out.Deleted == nil {
		out.Deleted = []string{}
	}
	for _, f := range res.Failed {
		out.Failed = append(out.Failed, bondFailureResponse{ID: f.BondID, Message: failureMessage(f.Err)})
	}
	return out
}

// failureMessage exposes known domain errors and hides everything else.
func failureMessage(err error) string {
	for _, known := range []error{domain.ErrCardNotFound, domain.ErrBondNotFound} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "failed to delete bond"
}

func toSearchResponse(matches []ports.BondMatch) searchResponse {
	out := searchResponse{Results: make([]searchMatchResponse, 0, len(matches))}
	for _, m := range matches {
		out.Results = append(out.Results, searchMatchResponse{
			CardID:   m.CardID,
			CardName: m.CardName,
			Bond:     toBondResponse(m.Bond),
		})
	}
	return out
}

// --- Request → Service input ---

var purchaseDateLayouts = []string{time.RFC3339, time.DateOnly}

// parsePurchaseDate accepts RFC 3339 or a bare YYYY-MM-DD (midnight UTC).
func parsePurchaseDate(s string) (time.Time, error) {
	for _, layout := range purchaseDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.NewValidationError("purchaseDate must be RFC 3339 or YYYY-MM-DD")
}

func toUpdateBondInput(req updateBondRequest, ownerID, cardID, bondID string) (ports.UpdateBondInput, error) {
	purchased, err := parsePurchaseDate(req.PurchaseDate)
	if err != nil {
		return ports.UpdateBondInput{}, err
	}
	return ports.UpdateBondInput{
		OwnerID:      ownerID,
		CardID:       cardID,
		BondID:       bondID,
		Number:       req.Number,
		PurchaseDate: purchased,
		Status:       domain.BondStatus(req.Status),
	}, nil
}
