package api

import (
	"context"
	"net/http"

	"paper-desk/models"
)

// GetReviewers returns the global reviewer pool, in server order.
func (c *Client) GetReviewers(ctx context.Context) ([]models.Reviewer, error) {
	var reviewers []models.Reviewer
	if err := c.getJSON(ctx, "get_reviewers", "/get_reviewers", &reviewers); err != nil {
		return nil, err
	}
	return reviewers, nil
}

// AddReviewer registers a new reviewer with a single interest tag.
func (c *Client) AddReviewer(ctx context.Context, name, interests string) error {
	body := map[string]string{"name": name, "interests": interests}
	return c.sendJSON(ctx, "add_reviewer", http.MethodPost, "/add_reviewer", body, nil)
}
