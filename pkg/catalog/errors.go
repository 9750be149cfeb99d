package catalog

// CatalogError represents a domain validation error.
type CatalogError struct {
	Message string
}

func (e *CatalogError) Error() string {
	return e.Message
}

// Errors
var (
	ErrNameRequired  = &CatalogError{"game name is required"}
	ErrOwnerRequired = &CatalogError{"game owner is required"}
	ErrInvalidRating = &CatalogError{"rating must be -1 (unrated) or 0-10"}
	ErrInvalidFilter = &CatalogError{"invalid filter"}
)
