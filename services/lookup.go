package services

import (
	"context"
	"strings"

	"paper-desk/api"
	"paper-desk/models"

	"go.uber.org/zap"
)

// authorBackend is the slice of the backend client the status screen needs.
type authorBackend interface {
	PaperStatus(ctx context.Context, email, trackingCode string) (*models.Paper, error)
	GetReviews(ctx context.Context, paperID string) ([]models.Review, error)
	GetMessages(ctx context.Context, trackingCode string) ([]models.Message, error)
	SendMessage(ctx context.Context, trackingCode, sender, text string) error
	ReviseArticle(ctx context.Context, trackingCode, title string, file *api.Attachment) error
	GetPDF(ctx context.Context, paperID string) ([]byte, error)
}

// snapshotCache stores the last fetched paper detail keyed by tracking
// code. Writes that touch the paper invalidate the entry; reads serve as a
// fallback when the backend is unreachable.
type snapshotCache interface {
	SaveSnapshot(ctx context.Context, p *models.Paper) error
	Snapshot(ctx context.Context, trackingCode string) (*models.Paper, error)
	Invalidate(ctx context.Context, trackingCode string) error
}

// AuthorSession holds the state of one status-lookup screen: the paper the
// author authenticated for, its reviews and its correspondence. State is
// private to the session and not refreshed by other screens' writes.
type AuthorSession struct {
	client authorBackend
	cache  snapshotCache
	logger *zap.Logger

	trackingCode string
	paper        *models.Paper
	reviews      []models.Review
	messages     []models.Message
	stale        bool

	guard inflight
}

// NewAuthorSession creates a status-lookup session. cache may be nil.
func NewAuthorSession(client authorBackend, cache snapshotCache, logger *zap.Logger) *AuthorSession {
	return &AuthorSession{client: client, cache: cache, logger: logger}
}

// Lookup authenticates the tracking code / email pair and loads the paper.
// Blank inputs and malformed emails are rejected locally, before any
// network traffic.
func (s *AuthorSession) Lookup(ctx context.Context, trackingCode, email string) (*models.Paper, error) {
	if trackingCode == "" || email == "" {
		return nil, ErrMissingFields
	}
	if !ValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if err := s.guard.begin(); err != nil {
		return nil, err
	}
	defer s.guard.end()

	paper, err := s.client.PaperStatus(ctx, email, trackingCode)
	if err != nil {
		// A transport failure falls back to the cached snapshot when one
		// exists; a server rejection never does, the record was refused.
		if s.cache != nil && api.AsAPIError(err) == nil {
			if cached, cacheErr := s.cache.Snapshot(ctx, trackingCode); cacheErr == nil {
				s.logger.Warn("Backend unreachable, serving cached snapshot",
					zap.String("tracking_code", trackingCode),
					zap.Error(err))
				s.trackingCode = trackingCode
				s.paper = cached
				s.stale = true
				return cached, nil
			}
		}
		return nil, err
	}
	s.trackingCode = trackingCode
	s.paper = paper
	s.stale = false

	if s.cache != nil {
		if err := s.cache.SaveSnapshot(ctx, paper); err != nil {
			s.logger.Warn("Could not cache paper snapshot", zap.Error(err))
		}
	}

	// Correspondence always loads; reviews only exist to show once the
	// paper is decided. Neither failure unloads the paper.
	if messages, err := s.client.GetMessages(ctx, trackingCode); err != nil {
		s.logger.Warn("Could not load messages", zap.Error(err))
	} else {
		s.messages = messages
	}
	if paper.Status.Decided() {
		if reviews, err := s.client.GetReviews(ctx, trackingCode); err != nil {
			s.logger.Warn("Could not load reviews", zap.Error(err))
		} else {
			s.reviews = reviews
		}
	}
	return paper, nil
}

// Paper returns the loaded paper, or nil before a successful lookup.
func (s *AuthorSession) Paper() *models.Paper { return s.paper }

// Stale reports whether the loaded paper came from the local snapshot cache
// because the backend could not be reached.
func (s *AuthorSession) Stale() bool { return s.stale }

// Reviews returns the reviews loaded for a decided paper.
func (s *AuthorSession) Reviews() []models.Review { return s.reviews }

// Messages returns the correspondence thread, oldest first.
func (s *AuthorSession) Messages() []models.Message { return s.messages }

// SendMessage appends to the correspondence thread and reflects the new
// message locally as unread.
func (s *AuthorSession) SendMessage(ctx context.Context, text string) error {
	if s.paper == nil {
		return ErrNoPaper
	}
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	if err := s.guard.begin(); err != nil {
		return err
	}
	defer s.guard.end()

	if err := s.client.SendMessage(ctx, s.trackingCode, s.paper.Email, text); err != nil {
		return err
	}
	s.messages = append(s.messages, models.Message{Sender: s.paper.Email, Text: text, Read: false})
	return nil
}

// CanRevise reports whether the revise control is offered: only when the
// paper's status is exactly Rejected.
func (s *AuthorSession) CanRevise() bool {
	return s.paper != nil && s.paper.Status == models.StatusRejected
}

// Revise resubmits the rejected paper. At least one of a changed title or
// an attached file is required; otherwise the request is rejected locally.
func (s *AuthorSession) Revise(ctx context.Context, title string, file *api.Attachment) error {
	if !s.CanRevise() {
		return ErrNotRevisable
	}
	titleChanged := title != "" && title != s.paper.Title
	if !titleChanged && file == nil {
		return ErrNothingToRevise
	}
	if err := s.guard.begin(); err != nil {
		return err
	}
	defer s.guard.end()

	effectiveTitle := s.paper.Title
	if titleChanged {
		effectiveTitle = title
	}
	if err := s.client.ReviseArticle(ctx, s.trackingCode, effectiveTitle, file); err != nil {
		return err
	}
	s.paper.Title = effectiveTitle

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, s.trackingCode); err != nil {
			s.logger.Warn("Could not invalidate paper snapshot", zap.Error(err))
		}
	}
	return nil
}

// DownloadPDF fetches the paper's PDF in its current redaction state.
func (s *AuthorSession) DownloadPDF(ctx context.Context) ([]byte, error) {
	if s.paper == nil {
		return nil, ErrNoPaper
	}
	return s.client.GetPDF(ctx, s.trackingCode)
}
