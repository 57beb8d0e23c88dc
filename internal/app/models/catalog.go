package models

// CatalogItem is a row of one of the reference tables (document types,
// enrollment statuses, schools, municipalities). All four share the same
// shape: an id plus a unique name.
type CatalogItem struct {
	ID   int64  `json:"id" db:"id" example:"1"`
	Name string `json:"name" db:"name" example:"CC"`
}

// CatalogKind identifies which reference table a request targets.
type CatalogKind string

const (
	CatalogDocumentTypes      CatalogKind = "document_types"
	CatalogEnrollmentStatuses CatalogKind = "enrollment_statuses"
	CatalogSchools            CatalogKind = "schools"
	CatalogMunicipalities     CatalogKind = "municipalities"
)

// Table returns the backing table name for the catalog kind.
func (k CatalogKind) Table() string {
	return string(k)
}
