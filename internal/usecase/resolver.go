package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cinema-chat/internal/data/repository"
	"cinema-chat/internal/dto/response"
	"cinema-chat/pkg/tmdb"

	"go.uber.org/zap"
)

const (
	maxListResults     = 5
	defaultCallTimeout = 5 * time.Second
)

var ErrGenerativeUnavailable = errors.New("generative backend unavailable")

// MetadataSource is the external movie metadata service
type MetadataSource interface {
	Discover(ctx context.Context, params tmdb.DiscoverParams) ([]tmdb.Movie, error)
	SearchMovie(ctx context.Context, title string) ([]tmdb.Movie, error)
	Credits(ctx context.Context, movieID int) ([]tmdb.CastMember, error)
	Videos(ctx context.Context, movieID int) (json.RawMessage, error)
}

// Generator produces a free-text reply for messages no data source could answer
type Generator interface {
	Generate(ctx context.Context, message string) (string, error)
}

// resolveStep answers the message or declines with ok=false. Only the last
// step may return an error.
type resolveStep struct {
	name string
	run  func(ctx context.Context, message string, in Intent) (*response.ChatResponse, bool, error)
}

// Resolver tries the local catalog, then TMDb discover, then TMDb title
// search and finally the generative backend. The first step that produces
// an answer wins.
type Resolver struct {
	catalog   repository.CatalogRepository
	metadata  MetadataSource
	generator Generator
	now       func() time.Time
	timeout   time.Duration
	log       *zap.Logger
	steps     []resolveStep
}

type ResolverOption func(*Resolver)

// WithClock sets the clock used for the "today" release date filter
func WithClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) { r.now = now }
}

// WithCallTimeout bounds every single TMDb call
func WithCallTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func NewResolver(
	catalog repository.CatalogRepository,
	metadata MetadataSource,
	generator Generator,
	log *zap.Logger,
	opts ...ResolverOption,
) *Resolver {
	r := &Resolver{
		catalog:   catalog,
		metadata:  metadata,
		generator: generator,
		now:       time.Now,
		timeout:   defaultCallTimeout,
		log:       log.With(zap.String("service", "resolver")),
	}
	for _, o := range opts {
		o(r)
	}

	r.steps = []resolveStep{
		{name: "local_title", run: r.localTitle},
		{name: "discover", run: r.discover},
		{name: "title_search", run: r.titleSearch},
		{name: "generative", run: r.generative},
	}
	return r
}

// Resolve answers a chat message
func (r *Resolver) Resolve(ctx context.Context, message string) (*response.ChatResponse, error) {
	in := ExtractIntent(message)

	for _, step := range r.steps {
		resp, ok, err := step.run(ctx, message, in)
		if err != nil {
			return nil, fmt.Errorf("%s step: %w", step.name, err)
		}
		if ok {
			r.log.Debug("Chat resolved", zap.String("step", step.name), zap.Int("movies", len(resp.Movies)))
			return resp, nil
		}
	}

	return response.NewChatResponse(replyNoMatch, nil), nil
}

// ResolveMore returns another discover page for the same message. Messages
// without genre, language or date get an empty list and no TMDb call.
func (r *Resolver) ResolveMore(ctx context.Context, message string, page int) ([]response.MovieResult, error) {
	in := ExtractIntent(message)
	if !in.HasFilters() {
		return []response.MovieResult{}, nil
	}

	movies, err := r.callDiscover(ctx, r.discoverParams(in, page))
	if err != nil {
		return nil, fmt.Errorf("discover page %d: %w", page, err)
	}
	return response.TMDBMoviesToResults(capResults(movies)), nil
}

func (r *Resolver) localTitle(_ context.Context, message string, in Intent) (*response.ChatResponse, bool, error) {
	if in.Title == nil {
		return nil, false, nil
	}

	for _, title := range titleCandidates(message) {
		movie, ok := r.catalog.FindByTitle(title)
		if !ok {
			continue
		}
		return response.NewChatResponse(
			localTitleReply(movie.Title),
			[]response.MovieResult{response.CatalogMovieToResult(*movie)},
		), true, nil
	}
	return nil, false, nil
}

func (r *Resolver) discover(ctx context.Context, _ string, in Intent) (*response.ChatResponse, bool, error) {
	if !in.HasFilters() {
		return nil, false, nil
	}

	movies, err := r.callDiscover(ctx, r.discoverParams(in, 1))
	if err == nil && len(movies) > 0 {
		return response.NewChatResponse(discoverReply(in), response.TMDBMoviesToResults(capResults(movies))), true, nil
	}
	r.log.Warn("TMDb discover gave nothing, using local catalog",
		zap.Stringp("genre", in.Genre),
		zap.Stringp("language", in.Language),
		zap.Stringp("date", in.Date),
		zap.Error(err),
	)

	filter := repository.CatalogFilter{}
	if in.Genre != nil {
		filter.Genre = *in.Genre
	}
	if in.Language != nil {
		filter.Language = languageName(*in.Language)
	}
	local := r.catalog.All()
	if !filter.IsEmpty() {
		local = r.catalog.Filter(filter)
	}
	if len(local) == 0 {
		return nil, false, nil
	}
	return response.NewChatResponse(discoverFallbackReply(in), response.CatalogMoviesToResults(capResults(local))), true, nil
}

func (r *Resolver) titleSearch(ctx context.Context, _ string, in Intent) (*response.ChatResponse, bool, error) {
	if in.Title == nil {
		return nil, false, nil
	}
	title := *in.Title

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	found, err := r.metadata.SearchMovie(callCtx, title)
	cancel()

	if err == nil && len(found) > 0 {
		result := response.TMDBMovieToResult(found[0])
		result.Cast = r.cast(ctx, found[0].ID)
		return response.NewChatResponse(titleSearchReply(result), []response.MovieResult{result}), true, nil
	}
	r.log.Warn("TMDb title search gave nothing, using local catalog",
		zap.String("title", title),
		zap.Error(err),
	)

	local := r.catalog.Filter(repository.CatalogFilter{Title: title})
	if len(local) == 0 {
		return nil, false, nil
	}
	return response.NewChatResponse(titleFallbackReply(title), response.CatalogMoviesToResults(capResults(local))), true, nil
}

// cast never fails: a credits error just leaves the cast empty
func (r *Resolver) cast(ctx context.Context, movieID int) []response.CastMember {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	credits, err := r.metadata.Credits(callCtx, movieID)
	if err != nil {
		r.log.Warn("TMDb credits failed", zap.Int("movie_id", movieID), zap.Error(err))
		return []response.CastMember{}
	}
	return response.CastToResponse(credits)
}

func (r *Resolver) generative(ctx context.Context, message string, _ Intent) (*response.ChatResponse, bool, error) {
	if r.generator == nil {
		return nil, false, ErrGenerativeUnavailable
	}

	text, err := r.generator.Generate(ctx, message)
	if err != nil {
		r.log.Error("Generative fallback failed", zap.Error(err))
		return nil, false, fmt.Errorf("%w: %v", ErrGenerativeUnavailable, err)
	}
	if text == "" {
		text = replyNoMatch
	}
	return response.NewChatResponse(text, nil), true, nil
}

func (r *Resolver) discoverParams(in Intent, page int) tmdb.DiscoverParams {
	params := tmdb.DiscoverParams{Page: page}
	if in.Genre != nil {
		params.GenreID = genreID(*in.Genre)
	}
	if in.Language != nil {
		params.Language = *in.Language
	}
	// tonight and weekend are recognised but do not narrow the query
	if in.Date != nil && *in.Date == DateToday {
		params.ReleaseDateGTE = r.now().UTC().Format("2006-01-02")
	}
	return params
}

func (r *Resolver) callDiscover(ctx context.Context, params tmdb.DiscoverParams) ([]tmdb.Movie, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.metadata.Discover(callCtx, params)
}

func capResults[T any](items []T) []T {
	if len(items) > maxListResults {
		return items[:maxListResults]
	}
	return items
}
