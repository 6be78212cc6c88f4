package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"konica/internal/migrations/mongo/validators"
)

var (
	PacksIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "isActive", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}

	TypePhotographiesIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "isActive", Value: 1}}},
	}

	ExtraServicesIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "isActive", Value: 1}}},
	}

	ReservationsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "period", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "pack", Value: 1}}},
		{Keys: bson.D{{Key: "customerPhone", Value: 1}}},
		{Keys: bson.D{{Key: "assignedEmployers", Value: 1}}},
	}

	UsersIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}
)

func RunMigration(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	fmt.Printf("🚀 Running Konica Mongo migrations on database: %s\n", dbName)

	collections := map[string]struct {
		Indexes   []mongo.IndexModel
		Validator bson.M
	}{
		"packs": {
			Indexes:   PacksIndexes,
			Validator: validators.PackValidator,
		},
		"typephotographies": {
			Indexes:   TypePhotographiesIndexes,
			Validator: validators.TypePhotographieValidator,
		},
		"extraservices": {
			Indexes:   ExtraServicesIndexes,
			Validator: validators.ExtraServiceValidator,
		},
		"reservations": {
			Indexes:   ReservationsIndexes,
			Validator: validators.ReservationValidator,
		},
		"users": {
			Indexes:   UsersIndexes,
			Validator: validators.UserValidator,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	fmt.Println("✅ All migrations applied successfully.")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		fmt.Printf("🆕 Creating collection: %s\n", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
	} else {
		fmt.Printf("ℹ️ Collection %s already exists — updating validator if needed\n", name)
		command := bson.D{
			{Key: "collMod", Value: name},
			{Key: "validator", Value: validator},
		}
		if err := db.RunCommand(ctx, command).Err(); err != nil {
			fmt.Printf("⚠️ Warning: failed updating validator for %s: %v\n", name, err)
		}
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel) error {
	coll := db.Collection(name)
	_, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil {
		return err
	}
	fmt.Printf("📚 Ensured indexes for %s\n", name)
	return nil
}
