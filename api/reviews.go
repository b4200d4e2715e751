package api

import (
	"context"
	"net/http"

	"paper-desk/models"
)

// GetReviews returns the reviews left on a paper, oldest first.
func (c *Client) GetReviews(ctx context.Context, paperID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := c.getJSON(ctx, "get_reviews", "/get_reviews/"+paperID, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// SubmitReview records a reviewer verdict: a comment plus the status the
// reviewer selected. The backend creates the review and moves the paper in
// one step.
func (c *Client) SubmitReview(ctx context.Context, paperID, comments string, status models.Status) error {
	body := map[string]string{
		"article_id": paperID,
		"comments":   comments,
		"status":     string(status),
	}
	return c.sendJSON(ctx, "submit_review", http.MethodPost, "/submit_review", body, nil)
}
