package wire

import (
	"cinema-chat/internal/adaptor"
	"cinema-chat/pkg/middleware"
	"cinema-chat/pkg/utils"

	"github.com/go-chi/chi/v5"
)

func wireChat(
	r chi.Router,
	chatHandler *adaptor.ChatHandler,
	config *utils.Config,
) {
	limiter := middleware.NewRateLimiter(
		config.Chat.RatePerSec,
		config.Chat.RateBurst,
		middleware.WithTrustedProxies(config.Chat.TrustedProxies),
	)

	r.Group(func(r chi.Router) {
		// Per-IP throttle
		r.Use(limiter.Middleware)

		r.Post("/api/chat", chatHandler.Chat)     // POST /api/chat
		r.Get("/api/chat/more", chatHandler.More) // GET /api/chat/more?q=&page=
	})

	// TMDb proxies for the chat widget
	r.Route("/api/tmdb/movie/{id}", func(r chi.Router) {
		r.Get("/videos", chatHandler.Videos)
		r.Get("/cast", chatHandler.Cast)
	})
}
