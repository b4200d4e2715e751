package api

import (
	"context"
	"net/http"
	"net/url"

	"paper-desk/models"
)

// PaperStatus looks up a paper by its tracking code and submission email.
// The backend authenticates the pair, not the code alone.
func (c *Client) PaperStatus(ctx context.Context, email, trackingCode string) (*models.Paper, error) {
	body := map[string]string{
		"email":         email,
		"tracking_code": trackingCode,
	}
	var paper models.Paper
	if err := c.sendJSON(ctx, "paper_status", http.MethodPost, "/paper_status", body, &paper); err != nil {
		return nil, err
	}
	// The detail response omits the id; the caller addressed the paper by
	// tracking code, which is the id.
	if paper.ID == "" {
		paper.ID = trackingCode
	}
	return &paper, nil
}

// GetPapers returns every paper in the system, in server order.
func (c *Client) GetPapers(ctx context.Context) ([]models.Paper, error) {
	var papers []models.Paper
	if err := c.getJSON(ctx, "get_papers", "/get_papers", &papers); err != nil {
		return nil, err
	}
	return papers, nil
}

// ReviewerArticles returns the papers assigned to the named reviewer.
func (c *Client) ReviewerArticles(ctx context.Context, name string) ([]models.Paper, error) {
	var papers []models.Paper
	path := "/reviewer_articles?name=" + url.QueryEscape(name)
	if err := c.getJSON(ctx, "reviewer_articles", path, &papers); err != nil {
		return nil, err
	}
	return papers, nil
}

// UpdateArticle patches a subset of paper fields. The backend applies only
// the fields present in the body.
func (c *Client) UpdateArticle(ctx context.Context, paperID string, patch map[string]interface{}) error {
	return c.sendJSON(ctx, "update_article", http.MethodPatch, "/update_article/"+paperID, patch, nil)
}

// AssignReviewer assigns or reassigns a reviewer to a paper.
func (c *Client) AssignReviewer(ctx context.Context, paperID string, reviewerID int) error {
	body := map[string]int{"reviewerId": reviewerID}
	return c.sendJSON(ctx, "assign_reviewer", http.MethodPost, "/assign_reviewer/"+paperID, body, nil)
}

// GetPDF downloads the paper's PDF in its current redaction state.
func (c *Client) GetPDF(ctx context.Context, paperID string) ([]byte, error) {
	return c.getBytes(ctx, "get_article_pdf", "/get_article_pdf/"+paperID)
}

// BlurPDF requests redaction of one field's region in the paper's PDF.
func (c *Client) BlurPDF(ctx context.Context, paperID string, field models.AnonField) error {
	body := map[string]string{"field": string(field)}
	return c.sendJSON(ctx, "blur_article_pdf", http.MethodPost, "/blur_article_pdf/"+paperID, body, nil)
}

// UnblurPDF requests restoration of one field's region in the paper's PDF.
func (c *Client) UnblurPDF(ctx context.Context, paperID string, field models.AnonField) error {
	body := map[string]string{"field": string(field)}
	return c.sendJSON(ctx, "unblur_article_pdf", http.MethodPost, "/unblur_article_pdf/"+paperID, body, nil)
}
