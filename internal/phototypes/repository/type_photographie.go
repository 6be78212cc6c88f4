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

	phototypeserrors "konica/internal/phototypes/errors"
	"konica/pkg/config"
	"konica/pkg/model"
)

const (
	CollectionName = "typephotographies"
)

type mongoTypeRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type TypeRepository interface {
	Create(ctx context.Context, t *model.TypePhotographie) error
	FindByID(ctx context.Context, id string) (*model.TypePhotographie, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*model.TypePhotographie, error)
	Update(ctx context.Context, id string, t *model.TypePhotographie) error
	SoftDelete(ctx context.Context, id string) error
}

func NewMongoTypeRepository(cfg *config.Config) TypeRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTypeRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoTypeRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// Create relies on the unique index on name: a case-sensitive collision comes
// back from Mongo as a duplicate-key error.
func (r *mongoTypeRepository) Create(ctx context.Context, t *model.TypePhotographie) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	t.CreatedAt = now
	t.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, t)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", phototypeserrors.ErrDuplicateName, t.Name)
		}
		return fmt.Errorf("failed to create photography type: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid.Hex()
	}
	return nil
}

func (r *mongoTypeRepository) FindByID(ctx context.Context, id string) (*model.TypePhotographie, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", phototypeserrors.ErrInvalidID, id)
	}

	var t model.TypePhotographie
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, phototypeserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find photography type: %w", err)
	}

	return &t, nil
}

func (r *mongoTypeRepository) FindAll(ctx context.Context, activeOnly bool) ([]*model.TypePhotographie, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find photography types: %w", err)
	}
	defer cursor.Close(ctx)

	var types []*model.TypePhotographie
	if err = cursor.All(ctx, &types); err != nil {
		return nil, fmt.Errorf("failed to decode photography types: %w", err)
	}

	return types, nil
}

func (r *mongoTypeRepository) Update(ctx context.Context, id string, t *model.TypePhotographie) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", phototypeserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":        t.Name,
			"description": t.Description,
			"photo":       t.Photo,
			"isActive":    t.Active(),
			"updatedAt":   time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", phototypeserrors.ErrDuplicateName, t.Name)
		}
		return fmt.Errorf("failed to update photography type: %w", err)
	}
	if result.MatchedCount == 0 {
		return phototypeserrors.ErrNotFound
	}

	return nil
}

func (r *mongoTypeRepository) SoftDelete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", phototypeserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"isActive":  false,
			"updatedAt": time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to soft delete photography type: %w", err)
	}
	if result.MatchedCount == 0 {
		return phototypeserrors.ErrNotFound
	}

	return nil
}
