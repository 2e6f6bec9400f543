package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"cinema-chat/internal/dto/request"
	"cinema-chat/internal/dto/response"
	"cinema-chat/internal/usecase"
	"cinema-chat/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxChatBodyBytes = 64 << 10

type ChatHandler struct {
	service usecase.ChatService
	log     *zap.Logger
}

func NewChatHandler(service usecase.ChatService, log *zap.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		log:     log.With(zap.String("handler", "chat")),
	}
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req request.ChatRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxChatBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("Invalid chat body", zap.Error(err))
		utils.WriteJSON(w, http.StatusBadRequest, map[string]string{"reply": "No message provided."})
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.WriteJSON(w, http.StatusBadRequest, map[string]string{"reply": "No message provided."})
		return
	}

	resp, err := h.service.Chat(r.Context(), &req)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, response.NewChatResponse(usecase.ReplyInternalError, nil))
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// More handles GET /api/chat/more?q=&page=
func (h *ChatHandler) More(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.MoreRequest{
		Query: strings.TrimSpace(query.Get("q")),
		Page:  utils.ParseInt(query.Get("page"), 1),
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.WriteJSON(w, http.StatusBadRequest, map[string]string{"reply": "No query provided."})
		return
	}

	resp, err := h.service.More(r.Context(), &req)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, response.MoreResponse{Movies: []response.MovieResult{}})
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// Videos handles GET /api/tmdb/movie/{id}/videos
func (h *ChatHandler) Videos(w http.ResponseWriter, r *http.Request) {
	empty := map[string][]any{"results": {}}

	movieID, ok := h.movieID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, empty)
		return
	}

	body, err := h.service.Videos(r.Context(), movieID)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, empty)
		return
	}

	utils.WriteRawJSON(w, http.StatusOK, body)
}

// Cast handles GET /api/tmdb/movie/{id}/cast
func (h *ChatHandler) Cast(w http.ResponseWriter, r *http.Request) {
	empty := response.CastResponse{Cast: []response.CastMember{}}

	movieID, ok := h.movieID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, empty)
		return
	}

	resp, err := h.service.Cast(r.Context(), movieID)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, empty)
		return
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *ChatHandler) movieID(r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		h.log.Warn("Invalid TMDb movie id", zap.String("id", raw))
		return 0, false
	}
	return id, true
}
