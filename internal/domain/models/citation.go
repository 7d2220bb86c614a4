// internal/domain/models/citation.go
package models

// Citation is a web source returned with a search-grounded completion.
type Citation struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}
