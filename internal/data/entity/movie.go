package entity

// CatalogMovie is one entry of the local movie catalog. Field names follow the
// OMDb-style data file the catalog is seeded from.
type CatalogMovie struct {
	Title      string   `json:"Title" db:"title"`
	Year       string   `json:"Year" db:"year"`
	Poster     string   `json:"Poster" db:"poster"`
	ImdbRating string   `json:"imdbRating" db:"imdb_rating"`
	Plot       string   `json:"Plot" db:"plot"`
	Actors     string   `json:"Actors" db:"actors"`
	Images     []string `json:"Images" db:"images"`
	Genre      string   `json:"Genre" db:"genre"`
	Language   string   `json:"Language" db:"language"`
}
