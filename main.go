package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"stayscan/hotelworker/config"
	"stayscan/hotelworker/internal/browser"
	"stayscan/hotelworker/internal/scraper"
	"stayscan/hotelworker/logger"
	"stayscan/hotelworker/services/cache"
	"stayscan/hotelworker/services/publisher"
	"stayscan/hotelworker/services/storage"
	"stayscan/hotelworker/services/worker"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("city", cfg.City).
		Str("check_in", cfg.CheckIn).
		Str("check_out", cfg.CheckOut).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// A browser that cannot start is the one unrecoverable failure
	session, err := browser.NewChromeSession(ctx, browser.Options{
		Headless:     cfg.Headless,
		UserAgent:    cfg.UserAgent,
		WindowWidth:  cfg.WindowWidth,
		WindowHeight: cfg.WindowHeight,
		Timeout:      cfg.PageLoadTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start browser session")
	}
	defer session.Close()

	services := initializeServices(&cfg)
	defer services.Cleanup()

	locator := browser.NewLocator(session, cfg.PollInterval, cfg.StaleRetries, cfg.StaleRetryDelay)
	crawler := scraper.NewCrawler(session, locator, scraper.CrawlConfig{
		BaseURL:        cfg.BaseURL,
		City:           cfg.City,
		CheckIn:        cfg.CheckIn,
		CheckOut:       cfg.CheckOut,
		Limit:          cfg.Limit,
		ElementTimeout: cfg.ElementTimeout,
		LoadRetries:    cfg.LoadRetries,
		BlockTime:      cfg.BlockTime,
	}, services.Cache)

	// A typed nil must not reach the worker's interface fields
	var db worker.DatabaseSaver
	if services.Database != nil {
		db = services.Database
	}

	w := worker.NewWorker(
		crawler,
		storage.NewJSONWriter(cfg.DataDir),
		cfg.OutputFile,
		services.Publisher,
		db,
	)

	// Run the crawl pass in a goroutine so a signal can cut it short
	workerDone := make(chan error, 1)
	go func() {
		workerDone <- w.Run(ctx)
	}()

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
		<-workerDone
	case err := <-workerDone:
		if err != nil {
			log.Error().Err(err).Msg("Worker exited with error")
		} else {
			log.Info().Msg("Worker exited normally")
		}
	}

	log.Info().Msg("Shutting down gracefully...")
}

// Services holds the optional sinks; each stays nil unless configured
type Services struct {
	Cache     cache.CacheService
	Publisher publisher.Publisher
	Database  *storage.PostgresWriter
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		s.Publisher.Close()
	}
	if s.Database != nil {
		s.Database.Close()
	}
}

// initializeServices wires the sinks the configuration enables. Optional
// services that fail to come up are logged and skipped; the crawl itself
// does not depend on any of them.
func initializeServices(cfg *config.Config) *Services {
	services := &Services{}

	if cfg.MemcacheAddr != "" {
		services.Cache = cache.NewMemcacheService(cfg.MemcacheAddr)
		logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)
	}

	if cfg.PublishEnabled {
		services.Publisher = publisher.NewRedisPublisher(
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamCount,
			cfg.RedisStreamMaxLength,
		)
		logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	if cfg.PostgresDSN != "" {
		db, err := storage.NewPostgresWriter(cfg.PostgresDSN)
		if err != nil {
			logger.LogError("storage", err, "Failed to connect to Postgres")
		} else if err := db.EnsureSchema(); err != nil {
			logger.LogError("storage", err, "Failed to prepare Postgres schema")
			db.Close()
		} else {
			services.Database = db
			logger.Info("Connected to Postgres")
		}
	}

	return services
}
