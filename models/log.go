package models

import "time"

// Log is a read-only audit entry surfaced on the admin log screen.
type Log struct {
	ID         int       `json:"id"`
	ArticleID  string    `json:"article_id"`
	ReviewerID int       `json:"reviewer_id"`
	Event      string    `json:"event"`
	Timestamp  time.Time `json:"timestamp"`
}
