package usecase

import (
	"cinema-chat/internal/data/repository"
	"cinema-chat/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Chat  ChatService
	Movie MovieService
}

func NewService(
	repo *repository.Repository,
	metadata MetadataSource,
	generator Generator,
	config *utils.Config,
	log *zap.Logger,
) *Service {
	resolver := NewResolver(repo.Catalog, metadata, generator, log,
		WithCallTimeout(config.TMDB.Timeout),
	)

	return &Service{
		Chat:  NewChatService(resolver, metadata, log),
		Movie: NewMovieService(repo, log),
	}
}
