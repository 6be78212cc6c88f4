package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"golang.org/x/crypto/bcrypt"

	mongoMigration "konica/internal/migrations/mongo"
	usersrepo "konica/internal/users/repository"
	"konica/pkg/config"
	"konica/pkg/model"
)

const JobName = "admin-cli"

func main() {
	app := &cli.App{
		Name:  "konica-admin",
		Usage: "operational tooling for the Konica backend",
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "ensure collections, validators, and indexes exist",
				Action: runMigrate,
			},
			{
				Name:   "ping",
				Usage:  "check database connectivity",
				Action: runPing,
			},
			{
				Name:  "seed-admin",
				Usage: "create the initial admin user if none exists",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "username",
						Value: "admin",
						Usage: "admin username",
					},
					&cli.StringFlag{
						Name:     "password",
						Required: true,
						Usage:    "admin password (min 8 characters)",
					},
				},
				Action: runSeedAdmin,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runMigrate(c *cli.Context) error {
	ctx, cancel := context.WithTimeout(c.Context, 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	if err := mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	fmt.Println("Migration completed successfully.")
	return nil
}

func runPing(c *cli.Context) error {
	ctx, cancel := context.WithTimeout(c.Context, 30*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	if err := cfg.Client.Mongo.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	names, err := cfg.Client.Mongo.Database(cfg.MongoDatabaseName).ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	fmt.Printf("Connected to %s, %d collections:\n", cfg.MongoDatabaseName, len(names))
	for _, name := range names {
		fmt.Printf("  - %s\n", name)
	}
	return nil
}

func runSeedAdmin(c *cli.Context) error {
	ctx, cancel := context.WithTimeout(c.Context, 30*time.Second)
	defer cancel()

	password := c.String("password")
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	repo := usersrepo.NewMongoUserRepository(cfg)

	admins, err := repo.FindByRole(ctx, model.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to check for existing admins: %w", err)
	}
	if len(admins) > 0 {
		fmt.Printf("Admin user already exists (%s), nothing to do.\n", admins[0].Username)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	active := true
	admin := &model.User{
		Username:     c.String("username"),
		PasswordHash: string(hash),
		FullName:     "Administrator",
		Role:         model.RoleAdmin,
		IsActive:     &active,
	}

	if err := repo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	fmt.Printf("Admin user %q created (id %s).\n", admin.Username, admin.ID)
	return nil
}
