package main

import (
	cabinshandler "refugio/internal/cabins/handler"
	cabinsrepo "refugio/internal/cabins/repository"
	cabinsservice "refugio/internal/cabins/service"
	"refugio/internal/reservations/events"
	"refugio/internal/reservations/handler"
	"refugio/internal/reservations/repository"
	"refugio/internal/reservations/service"
	"refugio/internal/reservations/validator"
	"refugio/pkg/app"
	"refugio/pkg/config"
	"refugio/pkg/kafka"
	kafka_config "refugio/pkg/kafka/config"
)

const ServiceName = "refugio"

func main() {
	cfg := config.Load(ServiceName)

	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Refugio reservation service")

	publisher := initPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	}()

	cabinRepo := cabinsrepo.NewMongoCabinRepository(cfg)
	cabinService := cabinsservice.NewCabinService(cabinRepo, cfg)

	reservationRepo := repository.NewMongoReservationRepository(cfg)
	lockRepo := repository.NewReservationLockRepository(cfg)
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	reservationService := service.NewReservationService(
		reservationRepo,
		lockRepo,
		cabinRepo,
		bookingValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Reservation service initialized", "database", cfg.MongoDatabaseName)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg,
		handler.NewReservationHandler(reservationService, cfg.Log),
		handler.NewAvailabilityHandler(reservationService, cfg.Log),
		cabinshandler.NewCabinHandler(cabinService, cfg.Log),
	)
	serverApp.Run()
}

func initPublisher(cfg *config.Config) events.Publisher {
	if !cfg.EventsEnabled {
		cfg.Log.Info("Reservation events disabled")
		return events.NoopPublisher{}
	}

	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	created, err := kafka.NewProducer(kafkaCfg, events.TopicReservationCreated)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "topic", events.TopicReservationCreated, "error", err)
	}

	statusChanged, err := kafka.NewProducer(kafkaCfg, events.TopicReservationStatusChanged)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "topic", events.TopicReservationStatusChanged, "error", err)
	}

	return events.NewKafkaPublisher(created, statusChanged, cfg.Log)
}
