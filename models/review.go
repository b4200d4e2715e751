package models

import "time"

// Review is one reviewer verdict on a paper. Reviews are append-only;
// the paper they belong to is implied by the fetch path.
type Review struct {
	ID        int       `json:"id"`
	Reviewer  string    `json:"reviewer"`
	Comments  string    `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}
