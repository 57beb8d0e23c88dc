package dto

// ImportResponse reports the outcome of a successful spreadsheet import.
// Metrics and associations are upserted alongside but not counted
// separately.
type ImportResponse struct {
	Message string `json:"message" example:"import completed successfully"`
	Created int    `json:"created" example:"40"`
	Updated int    `json:"updated" example:"2"`
}
