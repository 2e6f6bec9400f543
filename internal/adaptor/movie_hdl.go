package adaptor

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"cinema-chat/internal/dto/request"
	"cinema-chat/internal/usecase"
	"cinema-chat/pkg/utils"

	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.CatalogListRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), 10),
		},
		Title:    strings.TrimSpace(query.Get("title")),
		Genre:    strings.TrimSpace(query.Get("genre")),
		Language: strings.TrimSpace(query.Get("language")),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "validation failed", validationErrors)
		return
	}

	movies, err := h.service.ListCatalog(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "list catalog")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  true,
		"message": "success",
		"data":    movies.Data,
		"pagination": map[string]any{
			"current_page":  movies.Pagination.Page,
			"limit":         movies.Pagination.PerPage,
			"total_pages":   movies.Pagination.TotalPages,
			"total_records": movies.Pagination.Total,
		},
	})
}

func (h *MovieHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.log.Warn(operation+" aborted",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Request cancelled")

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
