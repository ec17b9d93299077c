package main

import (
	"homeward/internal/auth"
	petshandler "homeward/internal/pets/handler"
	petsrepository "homeward/internal/pets/repository"
	petsservice "homeward/internal/pets/service"
	petsvalidator "homeward/internal/pets/validator"
	usershandler "homeward/internal/users/handler"
	usersrepository "homeward/internal/users/repository"
	usersservice "homeward/internal/users/service"
	usersvalidator "homeward/internal/users/validator"
	visitshandler "homeward/internal/visits/handler"
	visitsrepository "homeward/internal/visits/repository"
	visitsservice "homeward/internal/visits/service"
	visitsvalidator "homeward/internal/visits/validator"
	"homeward/pkg/app"
	"homeward/pkg/config"
	"homeward/pkg/kafka"
)

const ServiceName = "homeward"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Homeward service")

	producer := initProducer(cfg)
	var publisher kafka.Publisher
	if producer != nil {
		publisher = producer
	}

	petRepo := petsrepository.NewMongoPetRepository(cfg)
	userRepo := usersrepository.NewMongoUserRepository(cfg)
	visitRepo := visitsrepository.NewMongoVisitRepository(cfg)

	petService := petsservice.NewPetService(petRepo, petsvalidator.NewPetValidator(cfg.Log), publisher, cfg)
	userService := usersservice.NewUserService(userRepo, usersvalidator.NewUserValidator(cfg.Log), cfg)
	visitService := visitsservice.NewVisitService(
		visitRepo,
		petRepo,
		visitsvalidator.NewVisitValidator(cfg.Log),
		publisher,
		cfg,
	)

	verifier := auth.NewTokenVerifier(cfg.AuthTokenSecret)
	resolver := auth.NewResolver(cfg, userRepo)

	serverApp := app.NewApplication(cfg)
	serverApp.SetProducer(producer)
	serverApp.SetApp(
		auth.Middleware(verifier, resolver, cfg.Log),
		petshandler.NewPetHandler(petService, cfg),
		visitshandler.NewVisitHandler(visitService, cfg),
		usershandler.NewUserHandler(userService, cfg.Log),
	)
	serverApp.Run()
}

// initProducer builds the lifecycle event producer. Events are optional: with
// no brokers configured the service runs without publishing.
func initProducer(cfg *config.Config) *kafka.Producer {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("No Kafka brokers configured, lifecycle events disabled")
		return nil
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaEventsTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create event producer", "error", err)
	}

	cfg.Log.Info("Event producer initialized", "topic", cfg.KafkaEventsTopic)
	return producer
}
