package wire

import (
	"cinema-chat/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
) {
	// GET /api/movies - browse the local catalog (public)
	r.Get("/api/movies", movieHandler.GetMovies)
}
