package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cinema-chat/internal/dto/request"
	"cinema-chat/internal/dto/response"
	"cinema-chat/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChatService struct {
	chatResp *response.ChatResponse
	chatErr  error
	moreResp *response.MoreResponse
	moreErr  error
	videos   json.RawMessage
	cast     *response.CastResponse
	err      error

	lastChat *request.ChatRequest
	lastMore *request.MoreRequest
	lastID   int
}

func (f *fakeChatService) Chat(ctx context.Context, req *request.ChatRequest) (*response.ChatResponse, error) {
	f.lastChat = req
	return f.chatResp, f.chatErr
}

func (f *fakeChatService) More(ctx context.Context, req *request.MoreRequest) (*response.MoreResponse, error) {
	f.lastMore = req
	return f.moreResp, f.moreErr
}

func (f *fakeChatService) Videos(ctx context.Context, id int) (json.RawMessage, error) {
	f.lastID = id
	return f.videos, f.err
}

func (f *fakeChatService) Cast(ctx context.Context, id int) (*response.CastResponse, error) {
	f.lastID = id
	return f.cast, f.err
}

func newChatRouter(svc usecase.ChatService) http.Handler {
	h := NewChatHandler(svc, zap.NewNop())
	r := chi.NewRouter()
	r.Post("/api/chat", h.Chat)
	r.Get("/api/chat/more", h.More)
	r.Get("/api/tmdb/movie/{id}/videos", h.Videos)
	r.Get("/api/tmdb/movie/{id}/cast", h.Cast)
	return r
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	return rec
}

func TestChat_OK(t *testing.T) {
	svc := &fakeChatService{chatResp: response.NewChatResponse("Here you go", nil)}
	rec := serve(newChatRouter(svc), http.MethodPost, "/api/chat", `{"message":"  action movies  "}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"reply":"Here you go","movies":[]}`, rec.Body.String())
	assert.Equal(t, "action movies", svc.lastChat.Message)
}

func TestChat_MissingMessage(t *testing.T) {
	for _, body := range []string{`{}`, `{"message":""}`, `{"message":"   "}`, `not json`, ``} {
		svc := &fakeChatService{}
		rec := serve(newChatRouter(svc), http.MethodPost, "/api/chat", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.JSONEq(t, `{"reply":"No message provided."}`, rec.Body.String(), body)
		assert.Nil(t, svc.lastChat, body)
	}
}

func TestChat_ServiceError(t *testing.T) {
	svc := &fakeChatService{chatErr: usecase.ErrGenerativeUnavailable}
	rec := serve(newChatRouter(svc), http.MethodPost, "/api/chat", `{"message":"hi"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"reply":"Sorry, something went wrong. Please try again later.","movies":[]}`, rec.Body.String())
}

func TestMore(t *testing.T) {
	svc := &fakeChatService{moreResp: &response.MoreResponse{Movies: []response.MovieResult{}}}
	router := newChatRouter(svc)

	rec := serve(router, http.MethodGet, "/api/chat/more?q=action&page=3", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"movies":[]}`, rec.Body.String())
	assert.Equal(t, &request.MoreRequest{Query: "action", Page: 3}, svc.lastMore)

	serve(router, http.MethodGet, "/api/chat/more?q=action&page=abc", "")
	assert.Equal(t, 1, svc.lastMore.Page)

	serve(router, http.MethodGet, "/api/chat/more?q=action&page=-2", "")
	assert.Equal(t, 1, svc.lastMore.Page)
}

func TestMore_MissingQuery(t *testing.T) {
	rec := serve(newChatRouter(&fakeChatService{}), http.MethodGet, "/api/chat/more?page=2", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"reply":"No query provided."}`, rec.Body.String())
}

func TestMore_ServiceError(t *testing.T) {
	rec := serve(newChatRouter(&fakeChatService{moreErr: errors.New("tmdb down")}), http.MethodGet, "/api/chat/more?q=action", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"movies":[]}`, rec.Body.String())
}

func TestVideos(t *testing.T) {
	svc := &fakeChatService{videos: json.RawMessage(`{"id":42,"results":[{"key":"k"}]}`)}
	router := newChatRouter(svc)

	rec := serve(router, http.MethodGet, "/api/tmdb/movie/42/videos", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"id":42,"results":[{"key":"k"}]}`, rec.Body.String())
	assert.Equal(t, 42, svc.lastID)

	rec = serve(router, http.MethodGet, "/api/tmdb/movie/abc/videos", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"results":[]}`, rec.Body.String())

	svc.err = errors.New("boom")
	rec = serve(router, http.MethodGet, "/api/tmdb/movie/42/videos", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"results":[]}`, rec.Body.String())
}

func TestCast(t *testing.T) {
	profile := "https://image.tmdb.org/t/p/w185/a.jpg"
	svc := &fakeChatService{cast: &response.CastResponse{Cast: []response.CastMember{
		{Name: "Aamir Khan", Character: "Mahavir", Profile: &profile},
	}}}
	router := newChatRouter(svc)

	rec := serve(router, http.MethodGet, "/api/tmdb/movie/7/cast", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"cast":[{"name":"Aamir Khan","character":"Mahavir","profile":"https://image.tmdb.org/t/p/w185/a.jpg"}]}`, rec.Body.String())

	svc.err = errors.New("boom")
	rec = serve(router, http.MethodGet, "/api/tmdb/movie/7/cast", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"cast":[]}`, rec.Body.String())
}
