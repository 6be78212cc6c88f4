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

	reserrors "konica/internal/reservations/errors"
	"konica/pkg/config"
	"konica/pkg/model"
)

const (
	CollectionName = "reservations"
)

type mongoReservationRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	FindAll(ctx context.Context) ([]*model.Reservation, error)
	FindByEmployer(ctx context.Context, employerID string) ([]*model.Reservation, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]*model.Reservation, error)
	Update(ctx context.Context, id string, reservation *model.Reservation) error
	UpdateStatus(ctx context.Context, id string, status model.Status) error
	PushEmployer(ctx context.Context, id string, employerID string) error
	SetInvoice(ctx context.Context, id string, inv model.Invoice) error
	Delete(ctx context.Context, id string) error
}

func NewMongoReservationRepository(cfg *config.Config) ReservationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReservationRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoReservationRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	reservation.CreatedAt = now
	reservation.UpdatedAt = now
	if reservation.AssignedEmployers == nil {
		reservation.AssignedEmployers = []string{}
	}

	result, err := r.collection.InsertOne(ctx, reservation)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		reservation.ID = oid.Hex()
	}
	return nil
}

func (r *mongoReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", reserrors.ErrInvalidID, id)
	}

	var reservation model.Reservation
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&reservation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, reserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}

	return &reservation, nil
}

func (r *mongoReservationRepository) FindAll(ctx context.Context) ([]*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: -1},
		{Key: "createdAt", Value: -1},
	})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

func (r *mongoReservationRepository) FindByEmployer(ctx context.Context, employerID string) ([]*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"assignedEmployers": employerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations by employer: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

func (r *mongoReservationRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]*model.Reservation, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"date": bson.M{
			"$gte": from,
			"$lte": to,
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations by date range: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.Reservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

func (r *mongoReservationRepository) Update(ctx context.Context, id string, reservation *model.Reservation) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", reserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"customerName":      reservation.CustomerName,
			"customerPhone":     reservation.CustomerPhone,
			"customerEmail":     reservation.CustomerEmail,
			"date":              reservation.Date,
			"period":            reservation.Period,
			"teamPreference":    reservation.TeamPreference,
			"assignedEmployers": reservation.AssignedEmployers,
			"invoice":           reservation.Invoice,
			"status":            reservation.Status,
			"notes":             reservation.Notes,
			"updatedAt":         time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update reservation: %w", err)
	}
	if result.MatchedCount == 0 {
		return reserrors.ErrNotFound
	}

	return nil
}

func (r *mongoReservationRepository) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", reserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}
	if result.MatchedCount == 0 {
		return reserrors.ErrNotFound
	}

	return nil
}

// PushEmployer appends without a uniqueness check; assigning the same
// employer twice keeps both entries, matching the documents already written
// by earlier versions of the system.
func (r *mongoReservationRepository) PushEmployer(ctx context.Context, id string, employerID string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", reserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$push": bson.M{"assignedEmployers": employerID},
		"$set": bson.M{
			"updatedAt": time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to assign employer: %w", err)
	}
	if result.MatchedCount == 0 {
		return reserrors.ErrNotFound
	}

	return nil
}

func (r *mongoReservationRepository) SetInvoice(ctx context.Context, id string, inv model.Invoice) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", reserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"invoice":   inv,
			"updatedAt": time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update reservation invoice: %w", err)
	}
	if result.MatchedCount == 0 {
		return reserrors.ErrNotFound
	}

	return nil
}

// Delete is a hard delete. Reservations are operational records, not catalog
// entries, so there is no soft-delete path for them.
func (r *mongoReservationRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", reserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	if result.DeletedCount == 0 {
		return reserrors.ErrNotFound
	}

	return nil
}
