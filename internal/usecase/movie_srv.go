package usecase

import (
	"context"

	"cinema-chat/internal/data/repository"
	"cinema-chat/internal/dto/request"
	"cinema-chat/internal/dto/response"
	"cinema-chat/pkg/utils"

	"go.uber.org/zap"
)

type MovieService interface {
	ListCatalog(ctx context.Context, req *request.CatalogListRequest) (*response.PaginatedResponse[response.MovieResult], error)
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(
	repo *repository.Repository,
	log *zap.Logger,
) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

// ListCatalog pages through the local catalog, optionally filtered with the
// same substring predicates the chat fallback uses
func (s *movieService) ListCatalog(ctx context.Context, req *request.CatalogListRequest) (*response.PaginatedResponse[response.MovieResult], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filter := repository.CatalogFilter{
		Title:    req.Title,
		Genre:    req.Genre,
		Language: req.Language,
	}

	movies := s.repo.Catalog.All()
	if !filter.IsEmpty() {
		movies = s.repo.Catalog.Filter(filter)
	}

	limit := req.Limit()
	start, end := utils.PageBounds(len(movies), req.Offset(), limit)

	s.log.Debug("Catalog listed",
		zap.Int("page", req.Page),
		zap.Int("per_page", limit),
		zap.Int("matched", len(movies)),
	)

	return response.NewPaginatedResponse(
		response.CatalogMoviesToResults(movies[start:end]),
		req.Page,
		limit,
		int64(len(movies)),
	), nil
}
