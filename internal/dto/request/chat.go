package request

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// MoreRequest comes from the query string of /api/chat/more
type MoreRequest struct {
	Query string `validate:"required"`
	Page  int    `validate:"min=1"`
}
