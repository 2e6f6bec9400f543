package repository

import (
	"cinema-chat/internal/data/entity"

	"go.uber.org/zap"
)

type Repository struct {
	Catalog CatalogRepository
}

func NewRepository(catalog []entity.CatalogMovie, log *zap.Logger) *Repository {
	return &Repository{
		Catalog: NewCatalogRepository(catalog, log),
	}
}
