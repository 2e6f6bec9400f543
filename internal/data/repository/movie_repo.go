package repository

import (
	"strings"

	"cinema-chat/internal/data/entity"

	"go.uber.org/zap"
)

// CatalogFilter selects catalog entries by case-insensitive substring.
// Empty fields do not constrain the result.
type CatalogFilter struct {
	Title    string
	Genre    string
	Language string
}

func (f CatalogFilter) IsEmpty() bool {
	return f.Title == "" && f.Genre == "" && f.Language == ""
}

// CatalogRepository is the read-only local movie catalog
type CatalogRepository interface {
	All() []entity.CatalogMovie
	FindByTitle(title string) (*entity.CatalogMovie, bool)
	Filter(filter CatalogFilter) []entity.CatalogMovie
	Count() int
}

type catalogRepository struct {
	movies []entity.CatalogMovie
	log    *zap.Logger
}

// NewCatalogRepository takes ownership of a private copy of movies. The
// repository never mutates it afterwards so concurrent reads need no locking.
func NewCatalogRepository(movies []entity.CatalogMovie, log *zap.Logger) CatalogRepository {
	owned := make([]entity.CatalogMovie, len(movies))
	for i, m := range movies {
		owned[i] = m
		owned[i].Images = append([]string(nil), m.Images...)
	}

	return &catalogRepository{
		movies: owned,
		log:    log.With(zap.String("repository", "catalog")),
	}
}

func (r *catalogRepository) All() []entity.CatalogMovie {
	return r.copyOf(r.movies)
}

func (r *catalogRepository) Count() int {
	return len(r.movies)
}

func (r *catalogRepository) FindByTitle(title string) (*entity.CatalogMovie, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, false
	}

	for i := range r.movies {
		if r.movies[i].Title != "" && strings.EqualFold(r.movies[i].Title, title) {
			movie := r.movies[i]
			movie.Images = append([]string(nil), movie.Images...)
			return &movie, true
		}
	}

	return nil, false
}

func (r *catalogRepository) Filter(filter CatalogFilter) []entity.CatalogMovie {
	title := strings.ToLower(filter.Title)
	genre := strings.ToLower(filter.Genre)
	language := strings.ToLower(filter.Language)

	var matched []entity.CatalogMovie
	for _, m := range r.movies {
		if title != "" && !containsLower(m.Title, title) {
			continue
		}
		if genre != "" && !containsLower(m.Genre, genre) {
			continue
		}
		if language != "" && !containsLower(m.Language, language) {
			continue
		}
		matched = append(matched, m)
	}

	r.log.Debug("Catalog filtered",
		zap.String("title", filter.Title),
		zap.String("genre", filter.Genre),
		zap.String("language", filter.Language),
		zap.Int("count", len(matched)),
	)

	return r.copyOf(matched)
}

func (r *catalogRepository) copyOf(movies []entity.CatalogMovie) []entity.CatalogMovie {
	out := make([]entity.CatalogMovie, len(movies))
	for i, m := range movies {
		out[i] = m
		out[i].Images = append([]string(nil), m.Images...)
	}
	return out
}

// containsLower expects needle already lower-cased. A blank field never matches.
func containsLower(field, needle string) bool {
	return field != "" && strings.Contains(strings.ToLower(field), needle)
}
