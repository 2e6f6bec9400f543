package tmdb

// Movie is one ranked entry of a discover or search listing.
// PosterURL is filled by the client from PosterPath.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview"`

	PosterURL string `json:"-"`
}

// CastMember is one credited actor. ProfileURL is filled by the client.
type CastMember struct {
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`

	ProfileURL string `json:"-"`
}

// DiscoverParams are the optional filters of /discover/movie.
// Zero values are left out of the query.
type DiscoverParams struct {
	GenreID        int
	Language       string
	ReleaseDateGTE string // YYYY-MM-DD
	Page           int
}

type listResponse struct {
	Page    int     `json:"page"`
	Results []Movie `json:"results"`
}

type creditsResponse struct {
	ID   int          `json:"id"`
	Cast []CastMember `json:"cast"`
}
