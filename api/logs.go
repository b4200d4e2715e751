package api

import (
	"context"

	"paper-desk/models"
)

// GetLogs returns the audit trail, newest entries last.
func (c *Client) GetLogs(ctx context.Context) ([]models.Log, error) {
	var logs []models.Log
	if err := c.getJSON(ctx, "get_logs", "/get_logs", &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
