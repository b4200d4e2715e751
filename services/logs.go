package services

import (
	"context"
	"strings"

	"paper-desk/models"
)

// logBackend is the slice of the backend client the log screen needs.
type logBackend interface {
	GetLogs(ctx context.Context) ([]models.Log, error)
}

// LogScreen holds the audit entries shown on the admin log view.
type LogScreen struct {
	client logBackend

	logs []models.Log
}

// NewLogScreen creates the audit-log screen.
func NewLogScreen(client logBackend) *LogScreen {
	return &LogScreen{client: client}
}

// Refresh loads the audit trail.
func (s *LogScreen) Refresh(ctx context.Context) error {
	logs, err := s.client.GetLogs(ctx)
	if err != nil {
		return err
	}
	s.logs = logs
	return nil
}

// Logs returns all loaded entries.
func (s *LogScreen) Logs() []models.Log { return s.logs }

// Search filters the loaded entries by a case-insensitive substring match
// on the event text.
func (s *LogScreen) Search(query string) []models.Log {
	if query == "" {
		return s.logs
	}
	q := strings.ToLower(query)
	matched := make([]models.Log, 0, len(s.logs))
	for _, entry := range s.logs {
		if strings.Contains(strings.ToLower(entry.Event), q) {
			matched = append(matched, entry)
		}
	}
	return matched
}
