package services

import (
	"context"
	"errors"
	"strings"

	"paper-desk/models"

	"go.uber.org/zap"
)

// ErrMissingReviewerName rejects an assigned-paper fetch without a name.
var ErrMissingReviewerName = errors.New("please enter a reviewer name")

// reviewerBackend is the slice of the backend client the reviewer screen
// needs.
type reviewerBackend interface {
	ReviewerArticles(ctx context.Context, name string) ([]models.Paper, error)
	SubmitReview(ctx context.Context, paperID, comments string, status models.Status) error
	GetMessagesForReviewer(ctx context.Context, paperID string) ([]models.Message, error)
	SendMessage(ctx context.Context, trackingCode, sender, text string) error
	GetPDF(ctx context.Context, paperID string) ([]byte, error)
}

// ReviewerSession holds the state of one reviewer dashboard: the reviewer's
// name and the papers assigned to them.
type ReviewerSession struct {
	client reviewerBackend
	cache  snapshotCache
	logger *zap.Logger

	name   string
	papers []models.Paper

	guard inflight
}

// NewReviewerSession creates a reviewer dashboard session. cache may be nil.
func NewReviewerSession(client reviewerBackend, cache snapshotCache, logger *zap.Logger) *ReviewerSession {
	return &ReviewerSession{client: client, cache: cache, logger: logger}
}

// Load fetches the papers assigned to the named reviewer.
func (s *ReviewerSession) Load(ctx context.Context, name string) error {
	if name == "" {
		return ErrMissingReviewerName
	}
	papers, err := s.client.ReviewerArticles(ctx, name)
	if err != nil {
		return err
	}
	s.name = name
	s.papers = papers
	return nil
}

// Papers returns the assigned papers in server order.
func (s *ReviewerSession) Papers() []models.Paper { return s.papers }

// Paper returns the assigned paper with the given id, or nil.
func (s *ReviewerSession) Paper(paperID string) *models.Paper {
	for i := range s.papers {
		if s.papers[i].ID == paperID {
			return &s.papers[i]
		}
	}
	return nil
}

// SubmitReview sends the reviewer's verdict: one of the three reviewable
// statuses plus a non-empty comment. On success the local paper reflects
// the new status immediately; the old status is never shown again.
func (s *ReviewerSession) SubmitReview(ctx context.Context, paperID, comment string, status models.Status) error {
	paper := s.Paper(paperID)
	if paper == nil {
		return ErrNoPaper
	}
	if strings.TrimSpace(comment) == "" {
		return ErrEmptyComment
	}
	if !status.Reviewable() {
		return ErrInvalidStatus
	}
	if err := s.guard.begin(); err != nil {
		return err
	}
	defer s.guard.end()

	if err := s.client.SubmitReview(ctx, paperID, comment, status); err != nil {
		return err
	}
	paper.Status = status

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, paperID); err != nil {
			s.logger.Warn("Could not invalidate paper snapshot", zap.Error(err))
		}
	}
	return nil
}

// Messages returns the correspondence thread for an assigned paper.
func (s *ReviewerSession) Messages(ctx context.Context, paperID string) ([]models.Message, error) {
	if s.Paper(paperID) == nil {
		return nil, ErrNoPaper
	}
	return s.client.GetMessagesForReviewer(ctx, paperID)
}

// SendMessage appends to an assigned paper's correspondence thread, signed
// with the reviewer's name.
func (s *ReviewerSession) SendMessage(ctx context.Context, paperID, text string) error {
	if s.Paper(paperID) == nil {
		return ErrNoPaper
	}
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	if err := s.guard.begin(); err != nil {
		return err
	}
	defer s.guard.end()
	return s.client.SendMessage(ctx, paperID, s.name, text)
}

// DownloadPDF fetches an assigned paper's PDF.
func (s *ReviewerSession) DownloadPDF(ctx context.Context, paperID string) ([]byte, error) {
	if s.Paper(paperID) == nil {
		return nil, ErrNoPaper
	}
	return s.client.GetPDF(ctx, paperID)
}
