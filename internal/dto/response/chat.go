package response

import (
	"cinema-chat/internal/data/entity"
	"cinema-chat/pkg/tmdb"
	"cinema-chat/pkg/utils"
)

const MaxCastMembers = 8

// MovieResult is the source-independent shape rendered by the chat widget.
// Every key is always present: missing values are null, lists are [].
type MovieResult struct {
	Title    string       `json:"title"`
	Year     *string      `json:"year"`
	Poster   *string      `json:"poster"`
	Rating   any          `json:"rating"`
	Overview *string      `json:"overview"`
	ID       *int         `json:"id"`
	Actors   *string      `json:"actors"`
	Images   []string     `json:"images"`
	Cast     []CastMember `json:"cast"`
	Genre    *string      `json:"genre"`
	Language *string      `json:"language"`
}

type CastMember struct {
	Name      string  `json:"name"`
	Character string  `json:"character"`
	Profile   *string `json:"profile"`
}

// ChatResponse is the reply envelope of POST /api/chat
type ChatResponse struct {
	Reply  string        `json:"reply"`
	Movies []MovieResult `json:"movies"`
}

type MoreResponse struct {
	Movies []MovieResult `json:"movies"`
}

type CastResponse struct {
	Cast []CastMember `json:"cast"`
}

// NewChatResponse never leaves Movies nil
func NewChatResponse(reply string, movies []MovieResult) *ChatResponse {
	if movies == nil {
		movies = []MovieResult{}
	}
	return &ChatResponse{Reply: reply, Movies: movies}
}

// Helper converters

func CatalogMovieToResult(m entity.CatalogMovie) MovieResult {
	var rating any
	if r := utils.StringPtr(m.ImdbRating); r != nil {
		rating = *r
	}

	images := make([]string, 0, len(m.Images))
	images = append(images, m.Images...)

	return MovieResult{
		Title:    m.Title,
		Year:     utils.StringPtr(m.Year),
		Poster:   utils.StringPtr(m.Poster),
		Rating:   rating,
		Overview: utils.StringPtr(m.Plot),
		Actors:   utils.StringPtr(m.Actors),
		Images:   images,
		Cast:     []CastMember{},
		Genre:    utils.StringPtr(m.Genre),
		Language: utils.StringPtr(m.Language),
	}
}

func CatalogMoviesToResults(movies []entity.CatalogMovie) []MovieResult {
	out := make([]MovieResult, 0, len(movies))
	for _, m := range movies {
		out = append(out, CatalogMovieToResult(m))
	}
	return out
}

func TMDBMovieToResult(m tmdb.Movie) MovieResult {
	id := m.ID
	var year *string
	if len(m.ReleaseDate) >= 4 {
		y := m.ReleaseDate[:4]
		year = &y
	}

	return MovieResult{
		Title:    m.Title,
		Year:     year,
		Poster:   utils.StringPtr(m.PosterURL),
		Rating:   m.VoteAverage,
		Overview: utils.StringPtr(m.Overview),
		ID:       &id,
		Images:   []string{},
		Cast:     []CastMember{},
	}
}

func TMDBMoviesToResults(movies []tmdb.Movie) []MovieResult {
	out := make([]MovieResult, 0, len(movies))
	for _, m := range movies {
		out = append(out, TMDBMovieToResult(m))
	}
	return out
}

// CastToResponse keeps the first MaxCastMembers billed actors
func CastToResponse(cast []tmdb.CastMember) []CastMember {
	if len(cast) > MaxCastMembers {
		cast = cast[:MaxCastMembers]
	}

	out := make([]CastMember, 0, len(cast))
	for _, c := range cast {
		out = append(out, CastMember{
			Name:      c.Name,
			Character: c.Character,
			Profile:   utils.StringPtr(c.ProfileURL),
		})
	}
	return out
}
