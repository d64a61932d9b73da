package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bondledger/prizebond-api/internal/core/domain"
)

func TestHandle_FailedConnectIsNotCached(t *testing.T) {
	h := NewHandle(Config{Database: "test"})
	hookCalls := 0
	h.OnConnect(func(context.Context, *mongo.Database) error {
		hookCalls++
		return nil
	})

	for i := 0; i < 2; i++ {
		if _, err := h.Database(context.Background()); err == nil {
			t.Fatalf("attempt %d: expected connect error with empty URI", i+1)
		}
	}
	if hookCalls != 0 {
		t.Errorf("hooks must not run without a connection, ran %d times", hookCalls)
	}
	if h.db != nil {
		t.Error("failed connect must not be cached")
	}
}

func TestHandle_CloseWithoutConnect(t *testing.T) {
	h := NewHandle(Config{URI: "mongodb://localhost:1", Database: "test"})
	if err := h.Close(context.Background()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestNewHandle_DefaultTimeout(t *testing.T) {
	h := NewHandle(Config{})
	if h.cfg.Timeout != defaultTimeout {
		t.Errorf("expected %s, got %s", defaultTimeout, h.cfg.Timeout)
	}
}

func TestOwnedFilter_InvalidID(t *testing.T) {
	_, err := ownedFilter("owner", "not-an-object-id")
	if !errors.Is(err, domain.ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestOwnedFilter_ScopesByOwner(t *testing.T) {
	oid := primitive.NewObjectID()
	filter, err := ownedFilter("owner-1", oid.Hex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter["_id"] != oid {
		t.Errorf("expected _id %v, got %v", oid, filter["_id"])
	}
	if filter["user_id"] != "owner-1" {
		t.Errorf("expected user_id owner-1, got %v", filter["user_id"])
	}
}

func TestMongoCard_ToDomain(t *testing.T) {
	cardID := primitive.NewObjectID()
	bondID := primitive.NewObjectID()
	purchased := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	mc := mongoCard{
		ID:     cardID,
		UserID: "owner-1",
		Name:   "Savings",
		PrizeBonds: []mongoBond{
			{ID: bondID, Number: "12345", PurchaseDate: purchased, Status: "win"},
		},
	}

	card := mc.toDomain()
	if card.ID != cardID.Hex() || card.OwnerID != "owner-1" || card.Name != "Savings" {
		t.Fatalf("unexpected card: %+v", card)
	}
	if len(card.PrizeBonds) != 1 {
		t.Fatalf("expected 1 bond, got %d", len(card.PrizeBonds))
	}
	b := card.PrizeBonds[0]
	if b.ID != bondID.Hex() || b.Number != "12345" || b.Status != domain.BondWin || !b.PurchaseDate.Equal(purchased) {
		t.Errorf("unexpected bond: %+v", b)
	}
	if card.TotalWin() != 1 || card.TotalBond() != 0 {
		t.Errorf("unexpected counts: win=%d bond=%d", card.TotalWin(), card.TotalBond())
	}
}

func TestMongoCard_ToDomainEmptyBonds(t *testing.T) {
	card := (&mongoCard{ID: primitive.NewObjectID()}).toDomain()
	if card.PrizeBonds == nil {
		t.Fatal("bonds must encode as [] not null")
	}
}
