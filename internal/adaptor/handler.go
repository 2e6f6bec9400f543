package adaptor

import (
	"cinema-chat/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Chat  *ChatHandler
	Movie *MovieHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Chat:  NewChatHandler(service.Chat, log),
		Movie: NewMovieHandler(service.Movie, log),
	}
}
