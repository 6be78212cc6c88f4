package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	packserrors "konica/internal/packs/errors"
	"konica/pkg/config"
	"konica/pkg/model"
)

const (
	CollectionName = "packs"
)

type mongoPackRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type PackRepository interface {
	Create(ctx context.Context, pack *model.Pack) error
	FindByID(ctx context.Context, id string) (*model.Pack, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*model.Pack, error)
	Update(ctx context.Context, id string, pack *model.Pack) error
	SoftDelete(ctx context.Context, id string) error
}

func NewMongoPackRepository(cfg *config.Config) PackRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPackRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoPackRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoPackRepository) Create(ctx context.Context, pack *model.Pack) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	pack.CreatedAt = now
	pack.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, pack)
	if err != nil {
		return fmt.Errorf("failed to create pack: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		pack.ID = oid.Hex()
	}
	return nil
}

func (r *mongoPackRepository) FindByID(ctx context.Context, id string) (*model.Pack, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", packserrors.ErrInvalidID, id)
	}

	var pack model.Pack
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&pack)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, packserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find pack: %w", err)
	}

	return &pack, nil
}

func (r *mongoPackRepository) FindAll(ctx context.Context, activeOnly bool) ([]*model.Pack, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find packs: %w", err)
	}
	defer cursor.Close(ctx)

	var packs []*model.Pack
	if err = cursor.All(ctx, &packs); err != nil {
		return nil, fmt.Errorf("failed to decode packs: %w", err)
	}

	return packs, nil
}

func (r *mongoPackRepository) Update(ctx context.Context, id string, pack *model.Pack) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", packserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":        pack.Name,
			"description": pack.Description,
			"price":       pack.Price,
			"features":    pack.Features,
			"photo":       pack.Photo,
			"isActive":    pack.Active(),
			"updatedAt":   time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update pack: %w", err)
	}
	if result.MatchedCount == 0 {
		return packserrors.ErrNotFound
	}

	return nil
}

// SoftDelete flips isActive off. The document stays in place so existing
// reservations keep a resolvable pack reference.
func (r *mongoPackRepository) SoftDelete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", packserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"isActive":  false,
			"updatedAt": time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to soft delete pack: %w", err)
	}
	if result.MatchedCount == 0 {
		return packserrors.ErrNotFound
	}

	return nil
}
