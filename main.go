// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"cinema-chat/cmd"
	"cinema-chat/internal/data/entity"
	"cinema-chat/internal/data/repository"
	"cinema-chat/internal/usecase"
	"cinema-chat/internal/wire"
	"cinema-chat/pkg/database"
	"cinema-chat/pkg/llm"
	"cinema-chat/pkg/tmdb"
	"cinema-chat/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("catalog_source", config.Catalog.Source),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load the local catalog once; it is read-only afterwards
	movies, err := loadCatalog(ctx, config, logger)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	repos := repository.NewRepository(movies, logger)
	logger.Info("Catalog loaded", zap.Int("movies", repos.Catalog.Count()))

	// External sources
	if config.TMDB.APIKey == "" {
		logger.Warn("TMDB_API_KEY is empty, TMDb calls will fail and chat falls back to local data")
	}
	metadata := tmdb.New(
		tmdb.Config{
			APIKey:       config.TMDB.APIKey,
			BaseURL:      config.TMDB.BaseURL,
			ImageBaseURL: config.TMDB.ImageBaseURL,
			Timeout:      config.TMDB.Timeout,
		},
		tmdb.WithLogger(logger),
		tmdb.WithCircuitBreaker(tmdb.NewCircuitBreaker(config.TMDB.CBFailures, config.TMDB.CBTimeout, logger)),
	)

	var generator usecase.Generator
	if config.Gemini.APIKey == "" {
		logger.Warn("GOOGLE_API_KEY is empty, generative fallback disabled")
	} else {
		gemini, err := llm.NewGemini(ctx, config.Gemini, logger)
		if err != nil {
			logger.Fatal("Failed to init Gemini client", zap.Error(err))
		}
		generator = gemini
	}

	// Wire all dependencies
	app := wire.Wiring(repos, metadata, generator, config, logger)

	// Start server
	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}

func loadCatalog(ctx context.Context, config *utils.Config, logger *zap.Logger) ([]entity.CatalogMovie, error) {
	if config.Catalog.Source != utils.CatalogSourcePostgres {
		return repository.LoadCatalogFile(config.Catalog.Path)
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := database.InitDB(connectCtx, config.Database)
	if err != nil {
		return nil, err
	}
	// The pool is only needed for the initial load
	defer db.Close()

	logger.Info("Database connected successfully")

	return repository.LoadCatalogFromDB(connectCtx, db)
}
