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

	extraserrors "konica/internal/extraservices/errors"
	"konica/pkg/config"
	"konica/pkg/model"
)

const (
	CollectionName = "extraservices"
)

type mongoExtraServiceRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type ExtraServiceRepository interface {
	Create(ctx context.Context, svc *model.ExtraService) error
	FindByID(ctx context.Context, id string) (*model.ExtraService, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*model.ExtraService, error)
	Update(ctx context.Context, id string, svc *model.ExtraService) error
	SoftDelete(ctx context.Context, id string) error
}

func NewMongoExtraServiceRepository(cfg *config.Config) ExtraServiceRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoExtraServiceRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoExtraServiceRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoExtraServiceRepository) Create(ctx context.Context, svc *model.ExtraService) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	svc.CreatedAt = now
	svc.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, svc)
	if err != nil {
		return fmt.Errorf("failed to create extra service: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		svc.ID = oid.Hex()
	}
	return nil
}

func (r *mongoExtraServiceRepository) FindByID(ctx context.Context, id string) (*model.ExtraService, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", extraserrors.ErrInvalidID, id)
	}

	var svc model.ExtraService
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&svc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, extraserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find extra service: %w", err)
	}

	return &svc, nil
}

func (r *mongoExtraServiceRepository) FindAll(ctx context.Context, activeOnly bool) ([]*model.ExtraService, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find extra services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []*model.ExtraService
	if err = cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode extra services: %w", err)
	}

	return services, nil
}

func (r *mongoExtraServiceRepository) Update(ctx context.Context, id string, svc *model.ExtraService) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", extraserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":        svc.Name,
			"description": svc.Description,
			"photo":       svc.Photo,
			"isActive":    svc.Active(),
			"updatedAt":   time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update extra service: %w", err)
	}
	if result.MatchedCount == 0 {
		return extraserrors.ErrNotFound
	}

	return nil
}

func (r *mongoExtraServiceRepository) SoftDelete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", extraserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"isActive":  false,
			"updatedAt": time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to soft delete extra service: %w", err)
	}
	if result.MatchedCount == 0 {
		return extraserrors.ErrNotFound
	}

	return nil
}
