// internal/wire/wire.go
package wire

import (
	"net/http"

	"cinema-chat/internal/adaptor"
	"cinema-chat/internal/data/repository"
	"cinema-chat/internal/usecase"
	"cinema-chat/pkg/middleware"
	"cinema-chat/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired router
type App struct {
	Router *chi.Mux
}

// Wiring builds services and handlers and mounts every route
func Wiring(
	repo *repository.Repository,
	metadata usecase.MetadataSource,
	generator usecase.Generator,
	config *utils.Config,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, metadata, generator, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigins))

	wireChat(r, handler.Chat, config)
	wireMovie(r, handler.Movie)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
