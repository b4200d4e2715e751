package services

import (
	"context"
	"errors"
	"testing"

	"paper-desk/api"
	"paper-desk/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func rejectedPaper() *models.Paper {
	return &models.Paper{
		ID:      "12345678",
		Title:   "On Things",
		Authors: "Jane Doe",
		Email:   "jane@example.org",
		Status:  models.StatusRejected,
	}
}

func TestLookupRejectsBlankInputsLocally(t *testing.T) {
	backend := newFakeBackend()
	session := NewAuthorSession(backend, nil, zap.NewNop())

	_, err := session.Lookup(context.Background(), "", "jane@example.org")
	require.ErrorIs(t, err, ErrMissingFields)

	_, err = session.Lookup(context.Background(), "12345678", "")
	require.ErrorIs(t, err, ErrMissingFields)

	require.Empty(t, backend.calls, "no network call may be made for blank input")
}

func TestLookupFallsBackToCachedSnapshotOnTransportFailure(t *testing.T) {
	backend := newFakeBackend()
	backend.paper = rejectedPaper()
	cache := &fakeCache{}

	// A first successful lookup fills the cache.
	warm := NewAuthorSession(backend, cache, zap.NewNop())
	_, err := warm.Lookup(context.Background(), "12345678", "jane@example.org")
	require.NoError(t, err)
	require.False(t, warm.Stale())

	// With the backend unreachable, a fresh session serves the snapshot.
	backend.failOn["paper_status"] = errors.New("connection refused")
	session := NewAuthorSession(backend, cache, zap.NewNop())
	paper, err := session.Lookup(context.Background(), "12345678", "jane@example.org")
	require.NoError(t, err)
	require.True(t, session.Stale())
	require.Equal(t, "On Things", paper.Title)

	// Without a snapshot the transport failure surfaces unchanged.
	empty := NewAuthorSession(backend, &fakeCache{}, zap.NewNop())
	_, err = empty.Lookup(context.Background(), "12345678", "jane@example.org")
	require.Error(t, err)
	require.Nil(t, api.AsAPIError(err))
}

func TestLookupDoesNotFallBackOnServerRejection(t *testing.T) {
	backend := newFakeBackend()
	backend.paper = rejectedPaper()
	cache := &fakeCache{}

	warm := NewAuthorSession(backend, cache, zap.NewNop())
	_, err := warm.Lookup(context.Background(), "12345678", "jane@example.org")
	require.NoError(t, err)

	// A rejected lookup means the record was refused, not unreachable;
	// the snapshot must stay out of it.
	backend.failOn["paper_status"] = &api.APIError{StatusCode: 404, Message: "paper not found"}
	session := NewAuthorSession(backend, cache, zap.NewNop())
	_, err = session.Lookup(context.Background(), "12345678", "jane@example.org")
	require.Error(t, err)
	require.NotNil(t, api.AsAPIError(err))
	require.Nil(t, session.Paper())
	require.False(t, session.Stale())
}

func TestLookupRejectsMalformedEmailLocally(t *testing.T) {
	backend := newFakeBackend()
	session := NewAuthorSession(backend, nil, zap.NewNop())

	for _, email := range []string{"jane", "jane@", "@example.org", "jane@example", "ja ne@example.org"} {
		_, err := session.Lookup(context.Background(), "12345678", email)
		require.ErrorIs(t, err, ErrInvalidEmail, email)
	}
	require.Empty(t, backend.calls)
}

func TestLookupLoadsPaperMessagesAndReviewsWhenDecided(t *testing.T) {
	backend := newFakeBackend()
	backend.paper = rejectedPaper()
	backend.messages = []models.Message{{Sender: "jane@example.org", Text: "hello"}}
	backend.reviews = []models.Review{{ID: 1, Reviewer: "R1", Comments: "weak results"}}
	cache := &fakeCache{}
	session := NewAuthorSession(backend, cache, zap.NewNop())

	paper, err := session.Lookup(context.Background(), "12345678", "jane@example.org")
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, paper.Status)
	require.Len(t, session.Messages(), 1)
	require.Len(t, session.Reviews(), 1)
	require.Equal(t, []string{"paper_status", "get_messages", "get_reviews"}, backend.calls)
	require.Equal(t, []string{"12345678"}, cache.saved)
}

func TestLookupSkipsReviewsWhileUndecided(t *testing.T) {
	backend := newFakeBackend()
	backend.paper = &models.Paper{ID: "12345678", Status: models.StatusUnderReview}
	session := NewAuthorSession(backend, nil, zap.NewNop())

	_, err := session.Lookup(context.Background(), "12345678", "jane@example.org")
	require.NoError(t, err)
	require.Equal(t, []string{"paper_status", "get_messages"}, backend.calls)
	require.Empty(t, session.Reviews())
}

func TestLookupPassesBackendErrorThrough(t *testing.T) {
	backend := newFakeBackend()
	apiErr := &api.APIError{StatusCode: 404, Message: "Paper not found!"}
	backend.failOn["paper_status"] = apiErr
	session := NewAuthorSession(backend, nil, zap.NewNop())

	_, err := session.Lookup(context.Background(), "12345678", "jane@example.org")
	require.Error(t, err)
	require.NotNil(t, api.AsAPIError(err))
	require.Nil(t, session.Paper())
}

func TestSendMessageBlocksEmptyTextLocally(t *testing.T) {
	backend := newFakeBackend()
	backend.paper = rejectedPaper()
	session := NewAuthorSession(backend, nil, zap.NewNop())
	_, err := session.Lookup(context.Background(), "12345678", "jane@example.org")
	require.NoError(t, err)
	before := len(backend.calls)

	require.ErrorIs(t, session.SendMessage(context.Background(), "   "), ErrEmptyMessage)
	require.Len(t, backend.calls, before)
}

func TestSendMessageAppendsOptimistically(t *testing.T) {
	backend := newFakeBackend()
	backend.paper = rejectedPaper()
	session := NewAuthorSession(backend, nil, zap.NewNop())
	_, err := session.Lookup(context.Background(), "12345678", "jane@example.org")
	require.NoError(t, err)

	require.NoError(t, session.SendMessage(context.Background(), "any news?"))
	messages := session.Messages()
	require.Len(t, messages, 1)
	require.Equal(t, "jane@example.org", messages[0].Sender)
	require.Equal(t, "any news?", messages[0].Text)
	require.False(t, messages[0].Read)
}

func TestReviseOfferedOnlyWhenRejected(t *testing.T) {
	backend := newFakeBackend()
	backend.paper = &models.Paper{ID: "12345678", Title: "On Things", Status: models.StatusAccepted}
	session := NewAuthorSession(backend, nil, zap.NewNop())
	_, err := session.Lookup(context.Background(), "12345678", "jane@example.org")
	require.NoError(t, err)

	require.False(t, session.CanRevise())
	before := len(backend.calls)
	err = session.Revise(context.Background(), "New Title", nil)
	require.ErrorIs(t, err, ErrNotRevisable)
	require.Len(t, backend.calls, before)
}

func TestReviseRequiresChangedTitleOrFile(t *testing.T) {
	backend := newFakeBackend()
	backend.paper = rejectedPaper()
	session := NewAuthorSession(backend, nil, zap.NewNop())
	_, err := session.Lookup(context.Background(), "12345678", "jane@example.org")
	require.NoError(t, err)
	before := len(backend.calls)

	// Unchanged title and no file: rejected locally.
	require.ErrorIs(t, session.Revise(context.Background(), "On Things", nil), ErrNothingToRevise)
	require.ErrorIs(t, session.Revise(context.Background(), "", nil), ErrNothingToRevise)
	require.Len(t, backend.calls, before)
}

func TestReviseWithChangedTitle(t *testing.T) {
	backend := newFakeBackend()
	backend.paper = rejectedPaper()
	cache := &fakeCache{}
	session := NewAuthorSession(backend, cache, zap.NewNop())
	_, err := session.Lookup(context.Background(), "12345678", "jane@example.org")
	require.NoError(t, err)

	require.NoError(t, session.Revise(context.Background(), "On Better Things", nil))
	require.Equal(t, "revise_article:On Better Things", backend.calls[len(backend.calls)-1])
	require.Equal(t, "On Better Things", session.Paper().Title)
	require.Equal(t, []string{"12345678"}, cache.invalidated)
}

func TestReviseWithFileKeepsTitle(t *testing.T) {
	backend := newFakeBackend()
	backend.paper = rejectedPaper()
	session := NewAuthorSession(backend, nil, zap.NewNop())
	_, err := session.Lookup(context.Background(), "12345678", "jane@example.org")
	require.NoError(t, err)

	file := &api.Attachment{Name: "revised.pdf"}
	require.NoError(t, session.Revise(context.Background(), "", file))
	require.Equal(t, "revise_article:On Things", backend.calls[len(backend.calls)-1])
}

func TestReviseBackendFailureKeepsLocalTitle(t *testing.T) {
	backend := newFakeBackend()
	backend.paper = rejectedPaper()
	backend.failOn["revise_article:Broken"] = errors.New("boom")
	session := NewAuthorSession(backend, nil, zap.NewNop())
	_, err := session.Lookup(context.Background(), "12345678", "jane@example.org")
	require.NoError(t, err)

	require.Error(t, session.Revise(context.Background(), "Broken", nil))
	require.Equal(t, "On Things", session.Paper().Title)
}
