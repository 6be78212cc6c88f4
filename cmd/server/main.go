package main

import (
	extraserviceshandler "konica/internal/extraservices/handler"
	extraservicesrepo "konica/internal/extraservices/repository"
	extraservicesservice "konica/internal/extraservices/service"
	extraservicesvalidator "konica/internal/extraservices/validator"
	packshandler "konica/internal/packs/handler"
	packsrepo "konica/internal/packs/repository"
	packsservice "konica/internal/packs/service"
	packsvalidator "konica/internal/packs/validator"
	phototypeshandler "konica/internal/phototypes/handler"
	phototypesrepo "konica/internal/phototypes/repository"
	phototypesservice "konica/internal/phototypes/service"
	phototypesvalidator "konica/internal/phototypes/validator"
	reservationshandler "konica/internal/reservations/handler"
	reservationsrepo "konica/internal/reservations/repository"
	reservationsservice "konica/internal/reservations/service"
	reservationsvalidator "konica/internal/reservations/validator"
	usershandler "konica/internal/users/handler"
	usersrepo "konica/internal/users/repository"
	usersservice "konica/internal/users/service"
	usersvalidator "konica/internal/users/validator"
	"konica/pkg/app"
	"konica/pkg/config"
	"konica/pkg/contracts"
	"konica/pkg/events"
)

const ServiceName = "konica-backend"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Konica backend")

	publisher := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.Log)
	handlers := initHandlers(cfg, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handlers...)
	serverApp.OnShutdown(func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	})
	serverApp.Run()
}

func initHandlers(cfg *config.Config, publisher *events.Publisher) []contracts.Handler {
	packRepo := packsrepo.NewMongoPackRepository(cfg)
	packService := packsservice.NewPackService(packRepo, packsvalidator.NewPackValidator(), cfg)

	typeRepo := phototypesrepo.NewMongoTypeRepository(cfg)
	typeService := phototypesservice.NewTypeService(typeRepo, phototypesvalidator.NewTypeValidator(), cfg)

	extraRepo := extraservicesrepo.NewMongoExtraServiceRepository(cfg)
	extraService := extraservicesservice.NewExtraServiceService(extraRepo, extraservicesvalidator.NewExtraServiceValidator(), cfg)

	userRepo := usersrepo.NewMongoUserRepository(cfg)
	userService := usersservice.NewUserService(userRepo, usersvalidator.NewUserValidator(), cfg)

	reservationRepo := reservationsrepo.NewMongoReservationRepository(cfg)
	reservationService := reservationsservice.NewReservationService(
		reservationRepo,
		packRepo,
		typeRepo,
		userRepo,
		reservationsvalidator.NewReservationValidator(),
		publisher,
		cfg,
	)

	cfg.Log.Info("Domain services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		packshandler.NewPackHandler(packService, cfg.Log),
		phototypeshandler.NewTypeHandler(typeService, cfg.Log),
		extraserviceshandler.NewExtraServiceHandler(extraService, cfg.Log),
		usershandler.NewUserHandler(userService, cfg.Log),
		reservationshandler.NewReservationHandler(reservationService, cfg.Log),
	}
}
