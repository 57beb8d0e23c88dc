package dto

// CatalogItemRequest represents creation or rename data for a catalog
// entry; all four reference tables share it.
type CatalogItemRequest struct {
	Name string `json:"name" binding:"required"`
}
