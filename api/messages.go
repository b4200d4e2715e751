package api

import (
	"context"
	"net/http"

	"paper-desk/models"
)

// messagesEnvelope matches the backend's wrapper around message lists.
type messagesEnvelope struct {
	Messages []models.Message `json:"messages"`
}

// GetMessages returns the correspondence thread for a paper, addressed by
// tracking code (the author side).
func (c *Client) GetMessages(ctx context.Context, trackingCode string) ([]models.Message, error) {
	var envelope messagesEnvelope
	if err := c.getJSON(ctx, "get_messages", "/get_messages/"+trackingCode, &envelope); err != nil {
		return nil, err
	}
	return envelope.Messages, nil
}

// GetMessagesForReviewer returns the same thread addressed by paper id
// (the reviewer side).
func (c *Client) GetMessagesForReviewer(ctx context.Context, paperID string) ([]models.Message, error) {
	var envelope messagesEnvelope
	if err := c.getJSON(ctx, "get_messages_for_reviewer", "/get_messages_for_reviewer/"+paperID, &envelope); err != nil {
		return nil, err
	}
	return envelope.Messages, nil
}

// SendMessage appends a message to a paper's correspondence thread.
func (c *Client) SendMessage(ctx context.Context, trackingCode, sender, text string) error {
	body := map[string]string{
		"tracking_code": trackingCode,
		"sender":        sender,
		"text":          text,
	}
	return c.sendJSON(ctx, "send_message", http.MethodPost, "/send_message", body, nil)
}
