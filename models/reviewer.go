package models

// Reviewer is a member of the review pool. Interests is a single free-text
// interest tag; the plural field name matches the backend schema.
type Reviewer struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Interests string `json:"interests"`
}
