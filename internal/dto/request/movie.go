package request

// CatalogListRequest filters the local catalog listing
type CatalogListRequest struct {
	PaginatedRequest
	Title    string `json:"title" validate:"max=200"`
	Genre    string `json:"genre" validate:"max=50"`
	Language string `json:"language" validate:"max=50"`
}
