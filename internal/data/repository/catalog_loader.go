package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"cinema-chat/internal/data/entity"
	"cinema-chat/pkg/database"
)

// LoadCatalogFile reads the catalog from a JSON array of OMDb-style records
func LoadCatalogFile(path string) ([]entity.CatalogMovie, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", path, err)
	}

	var movies []entity.CatalogMovie
	if err := json.Unmarshal(raw, &movies); err != nil {
		return nil, fmt.Errorf("decode catalog file %s: %w", path, err)
	}

	return movies, nil
}

const catalogQuery = `
	SELECT COALESCE(title, ''), COALESCE(year, ''), COALESCE(poster, ''),
	       COALESCE(imdb_rating, ''), COALESCE(plot, ''), COALESCE(actors, ''),
	       COALESCE(images, '{}'), COALESCE(genre, ''), COALESCE(language, '')
	FROM catalog_movies
	ORDER BY title
`

// LoadCatalogFromDB reads the catalog from the catalog_movies table
func LoadCatalogFromDB(ctx context.Context, db database.PgxIface) ([]entity.CatalogMovie, error) {
	rows, err := db.Query(ctx, catalogQuery)
	if err != nil {
		return nil, fmt.Errorf("query catalog movies: %w", err)
	}
	defer rows.Close()

	var movies []entity.CatalogMovie
	for rows.Next() {
		var m entity.CatalogMovie
		if err := rows.Scan(
			&m.Title,
			&m.Year,
			&m.Poster,
			&m.ImdbRating,
			&m.Plot,
			&m.Actors,
			&m.Images,
			&m.Genre,
			&m.Language,
		); err != nil {
			return nil, fmt.Errorf("scan catalog movie: %w", err)
		}
		movies = append(movies, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog rows: %w", err)
	}

	return movies, nil
}
