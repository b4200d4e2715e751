package services

import (
	"context"
	"testing"

	"paper-desk/models"

	"github.com/stretchr/testify/require"
)

func TestLogScreenSearchFiltersByEventText(t *testing.T) {
	backend := newFakeBackend()
	backend.logs = []models.Log{
		{ID: 1, Event: "Reviewer assigned to TRK-1"},
		{ID: 2, Event: "Review submitted for TRK-1"},
		{ID: 3, Event: "Paper uploaded"},
	}
	screen := NewLogScreen(backend)
	require.NoError(t, screen.Refresh(context.Background()))

	require.Len(t, screen.Search(""), 3)
	require.Len(t, screen.Search("review"), 2)
	require.Len(t, screen.Search("UPLOADED"), 1)
	require.Empty(t, screen.Search("deleted"))
}
