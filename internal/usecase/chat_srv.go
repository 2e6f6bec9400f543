package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"cinema-chat/internal/dto/request"
	"cinema-chat/internal/dto/response"

	"go.uber.org/zap"
)

type ChatService interface {
	Chat(ctx context.Context, req *request.ChatRequest) (*response.ChatResponse, error)
	More(ctx context.Context, req *request.MoreRequest) (*response.MoreResponse, error)
	Videos(ctx context.Context, movieID int) (json.RawMessage, error)
	Cast(ctx context.Context, movieID int) (*response.CastResponse, error)
}

type chatService struct {
	resolver *Resolver
	metadata MetadataSource
	log      *zap.Logger
}

func NewChatService(resolver *Resolver, metadata MetadataSource, log *zap.Logger) ChatService {
	return &chatService{
		resolver: resolver,
		metadata: metadata,
		log:      log.With(zap.String("service", "chat")),
	}
}

func (s *chatService) Chat(ctx context.Context, req *request.ChatRequest) (*response.ChatResponse, error) {
	resp, err := s.resolver.Resolve(ctx, req.Message)
	if err != nil {
		s.log.Error("Failed to resolve chat message",
			zap.Error(err),
			zap.Int("message_len", len(req.Message)),
		)
		return nil, fmt.Errorf("resolve chat: %w", err)
	}
	return resp, nil
}

func (s *chatService) More(ctx context.Context, req *request.MoreRequest) (*response.MoreResponse, error) {
	movies, err := s.resolver.ResolveMore(ctx, req.Query, req.Page)
	if err != nil {
		s.log.Error("Failed to load more movies",
			zap.Error(err),
			zap.Int("page", req.Page),
		)
		return nil, fmt.Errorf("resolve more: %w", err)
	}
	return &response.MoreResponse{Movies: movies}, nil
}

// Videos proxies the TMDb trailer listing unchanged
func (s *chatService) Videos(ctx context.Context, movieID int) (json.RawMessage, error) {
	body, err := s.metadata.Videos(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to get movie videos", zap.Error(err), zap.Int("movie_id", movieID))
		return nil, fmt.Errorf("get videos: %w", err)
	}
	return body, nil
}

func (s *chatService) Cast(ctx context.Context, movieID int) (*response.CastResponse, error) {
	credits, err := s.metadata.Credits(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to get movie cast", zap.Error(err), zap.Int("movie_id", movieID))
		return nil, fmt.Errorf("get cast: %w", err)
	}
	return &response.CastResponse{Cast: response.CastToResponse(credits)}, nil
}
