package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"productos/internal/config"
	"productos/internal/database"
	"productos/internal/logger"
	"productos/internal/repositories"
	"productos/internal/server"
	"productos/internal/services"
	"productos/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}

	// --- Initialize Repository ---
	productRepo, closeRepo, err := newRepository(cfg)
	if err != nil {
		log.Error().Err(err).Str("driver", cfg.DatabaseDriver).Msg("Hubo un error al conectar la BD")
		os.Exit(1)
	}
	defer func() {
		if err := closeRepo(); err != nil {
			log.Warn().Err(err).Msg("failed to close database")
		}
	}()
	log.Info().Str("driver", cfg.DatabaseDriver).Msg("Conexión exitosa a la BD")

	// --- Initialize RabbitMQ Client (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqLog := logger.Named(log, "rabbitmq")
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, mqLog)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize RabbitMQ client, product events disabled")
		} else {
			defer mqClient.Close()
			publisher = mqClient

			if err := mqClient.ConsumeProductEvents(rabbitmq.LogEvent(mqLog)); err != nil {
				log.Warn().Err(err).Msg("failed to start RabbitMQ consumer")
			}
		}
	}

	// --- Initialize Service and App ---
	productService := services.NewProductService(productRepo, publisher, logger.Named(log, "products"))
	app := server.New(cfg, productService, logger.Named(log, "http"))

	// --- Start HTTP Server ---
	log.Info().Str("addr", cfg.AppPort).Str("env", cfg.AppEnv).Msg("REST API en el puerto")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- app.Listen(cfg.AppPort)
	}()

	select {
	case <-quit:
		log.Info().Msg("Shutting down server...")
	case err := <-listenErr:
		if err != nil {
			log.Error().Err(err).Msg("server failed to start")
		}
	}

	if err := app.Shutdown(); err != nil {
		log.Warn().Err(err).Msg("error during Fiber shutdown")
	}
	log.Info().Msg("Server gracefully stopped")
}

// newRepository returns the product repository for the configured driver and
// a function releasing its resources.
func newRepository(cfg *config.Config) (repositories.ProductRepository, func() error, error) {
	if cfg.DatabaseDriver == database.DriverMemory {
		return repositories.NewMemoryProductRepository(), func() error { return nil }, nil
	}

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	return repositories.NewGORMProductRepository(db), func() error { return database.Close(db) }, nil
}
