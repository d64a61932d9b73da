package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bondledger/prizebond-api/internal/core/domain"
)

const collectionCards = "cards"

// CardRepository implements ports.CardRepository. Bonds are embedded in the
// card document and changed with single-document array operators.
type CardRepository struct {
	handle *Handle
	now    func() time.Time
}

func NewCardRepository(handle *Handle) *CardRepository {
	return &CardRepository{handle: handle, now: time.Now}
}

type mongoBond struct {
	ID           primitive.ObjectID `bson:"_id"`
	Number       string             `bson:"number"`
	PurchaseDate time.Time          `bson:"purchase_date"`
	Status       string             `bson:"status"`
}

type mongoCard struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	UserID     string             `bson:"user_id"`
	Name       string             `bson:"name"`
	PrizeBonds []mongoBond        `bson:"prize_bonds"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (mc *mongoCard) toDomain() *domain.Card {
	bonds := make([]domain.PrizeBond, 0, len(mc.PrizeBonds))
	for _, b := range mc.PrizeBonds {
		bonds = append(bonds, domain.PrizeBond{
			ID:           b.ID.Hex(),
			Number:       b.Number,
			PurchaseDate: b.PurchaseDate.UTC(),
			Status:       domain.BondStatus(b.Status),
		})
	}
	return &domain.Card{
		ID:         mc.ID.Hex(),
		OwnerID:    mc.UserID,
		Name:       mc.Name,
		PrizeBonds: bonds,
		CreatedAt:  mc.CreatedAt.UTC(),
		UpdatedAt:  mc.UpdatedAt.UTC(),
	}
}

// ownedFilter selects cardID only if it belongs to ownerID. An id that is not
// a valid ObjectID can never match and is reported as not found.
func ownedFilter(ownerID, cardID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(cardID)
	if err != nil {
		return nil, domain.ErrCardNotFound
	}
	return bson.M{"_id": oid, "user_id": ownerID}, nil
}

func (r *CardRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	return r.handle.Collection(ctx, collectionCards)
}

// ListByOwner returns the owner's cards, oldest first.
func (r *CardRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Card, error) {
	return r.find(ctx, bson.M{"user_id": ownerID})
}

// FindByBondNumber returns the owner's cards that hold a bond with number.
func (r *CardRepository) FindByBondNumber(ctx context.Context, ownerID, number string) ([]*domain.Card, error) {
	return r.find(ctx, bson.M{"user_id": ownerID, "prize_bonds.number": number})
}

func (r *CardRepository) find(ctx context.Context, filter bson.M) ([]*domain.Card, error) {
	col, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find cards: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoCard
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode cards: %w", err)
	}

	cards := make([]*domain.Card, 0, len(docs))
	for i := range docs {
		cards = append(cards, docs[i].toDomain())
	}
	return cards, nil
}

func (r *CardRepository) FindByID(ctx context.Context, ownerID, cardID string) (*domain.Card, error) {
	filter, err := ownedFilter(ownerID, cardID)
	if err != nil {
		return nil, err
	}
	col, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCard
	if err := col.FindOne(ctx, filter).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("find card: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *CardRepository) Create(ctx context.Context, card *domain.Card) (*domain.Card, error) {
	col, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoCard{
		ID:         primitive.NewObjectID(),
		UserID:     card.OwnerID,
		Name:       card.Name,
		PrizeBonds: []mongoBond{},
		CreatedAt:  card.CreatedAt,
		UpdatedAt:  card.UpdatedAt,
	}
	if _, err := col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert card: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CardRepository) Rename(ctx context.Context, ownerID, cardID, name string) (*domain.Card, error) {
	filter, err := ownedFilter(ownerID, cardID)
	if err != nil {
		return nil, err
	}
	update := bson.M{"$set": bson.M{"name": name, "updated_at": r.now().UTC()}}
	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *CardRepository) Delete(ctx context.Context, ownerID, cardID string) error {
	filter, err := ownedFilter(ownerID, cardID)
	if err != nil {
		return err
	}
	col, err := r.collection(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}

// AddBond appends bond with a fresh id using $push.
func (r *CardRepository) AddBond(ctx context.Context, ownerID, cardID string, bond domain.PrizeBond) (*domain.Card, error) {
	filter, err := ownedFilter(ownerID, cardID)
	if err != nil {
		return nil, err
	}
	update := bson.M{
		"$push": bson.M{"prize_bonds": mongoBond{
			ID:           primitive.NewObjectID(),
			Number:       bond.Number,
			PurchaseDate: bond.PurchaseDate.UTC(),
			Status:       string(bond.Status),
		}},
		"$set": bson.M{"updated_at": r.now().UTC()},
	}
	return r.findOneAndUpdate(ctx, filter, update)
}

// UpdateBond overwrites the matched array element with the positional operator.
func (r *CardRepository) UpdateBond(ctx context.Context, ownerID, cardID string, bond domain.PrizeBond) (*domain.Card, error) {
	filter, err := ownedFilter(ownerID, cardID)
	if err != nil {
		return nil, err
	}
	bondID, err := primitive.ObjectIDFromHex(bond.ID)
	if err != nil {
		return nil, domain.ErrBondNotFound
	}
	filter["prize_bonds._id"] = bondID

	update := bson.M{"$set": bson.M{
		"prize_bonds.$.number":        bond.Number,
		"prize_bonds.$.purchase_date": bond.PurchaseDate.UTC(),
		"prize_bonds.$.status":        string(bond.Status),
		"updated_at":                  r.now().UTC(),
	}}

	card, err := r.findOneAndUpdate(ctx, filter, update)
	if errors.Is(err, domain.ErrCardNotFound) {
		// Tell a missing bond apart from a missing card.
		if _, findErr := r.FindByID(ctx, ownerID, cardID); findErr == nil {
			return nil, domain.ErrBondNotFound
		}
	}
	return card, err
}

// RemoveBond pulls bondID. Pulling an id the card does not hold matches the
// card but modifies nothing, which is not an error.
func (r *CardRepository) RemoveBond(ctx context.Context, ownerID, cardID, bondID string) error {
	filter, err := ownedFilter(ownerID, cardID)
	if err != nil {
		return err
	}
	col, err := r.collection(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(bondID)
	if err != nil {
		// Cannot be in the array; only confirm the card is visible.
		n, err := col.CountDocuments(ctx, filter)
		if err != nil {
			return fmt.Errorf("find card: %w", err)
		}
		if n == 0 {
			return domain.ErrCardNotFound
		}
		return nil
	}

	res, err := col.UpdateOne(ctx, filter, bson.M{
		"$pull": bson.M{"prize_bonds": bson.M{"_id": oid}},
		"$set":  bson.M{"updated_at": r.now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("remove bond: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCardNotFound
	}
	return nil
}

func (r *CardRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*domain.Card, error) {
	col, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mc mongoCard
	if err := col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCardNotFound
		}
		return nil, fmt.Errorf("update card: %w", err)
	}
	return mc.toDomain(), nil
}

// EnsureCardIndexes creates the owner index. Registered as a Handle hook.
func EnsureCardIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "prize_bonds.number", Value: 1}}},
	}
	_, err := db.Collection(collectionCards).Indexes().CreateMany(ctx, indexes)
	return err
}
