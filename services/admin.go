package services

import (
	"context"
	"fmt"
	"strings"

	"paper-desk/models"

	"go.uber.org/zap"
)

// adminBackend is the slice of the backend client the admin screen needs.
type adminBackend interface {
	GetPapers(ctx context.Context) ([]models.Paper, error)
	GetReviewers(ctx context.Context) ([]models.Reviewer, error)
	AddReviewer(ctx context.Context, name, interests string) error
	AssignReviewer(ctx context.Context, paperID string, reviewerID int) error
	UpdateArticle(ctx context.Context, paperID string, patch map[string]interface{}) error
	BlurPDF(ctx context.Context, paperID string, field models.AnonField) error
	UnblurPDF(ctx context.Context, paperID string, field models.AnonField) error
	GetReviews(ctx context.Context, paperID string) ([]models.Review, error)
	GetPDF(ctx context.Context, paperID string) ([]byte, error)
}

// AdminSession holds the state of one admin dashboard: the full paper list
// and the reviewer pool.
type AdminSession struct {
	client adminBackend
	cache  snapshotCache
	logger *zap.Logger

	papers    []models.Paper
	reviewers []models.Reviewer

	guard inflight
}

// NewAdminSession creates an admin dashboard session. cache may be nil.
func NewAdminSession(client adminBackend, cache snapshotCache, logger *zap.Logger) *AdminSession {
	return &AdminSession{client: client, cache: cache, logger: logger}
}

// Refresh loads the paper list and the reviewer pool.
func (s *AdminSession) Refresh(ctx context.Context) error {
	papers, err := s.client.GetPapers(ctx)
	if err != nil {
		return err
	}
	reviewers, err := s.client.GetReviewers(ctx)
	if err != nil {
		return err
	}
	s.papers = papers
	s.reviewers = reviewers
	return nil
}

// Papers returns all papers in server order.
func (s *AdminSession) Papers() []models.Paper { return s.papers }

// Reviewers returns the reviewer pool in server order.
func (s *AdminSession) Reviewers() []models.Reviewer { return s.reviewers }

// Paper returns the listed paper with the given id, or nil.
func (s *AdminSession) Paper(paperID string) *models.Paper {
	for i := range s.papers {
		if s.papers[i].ID == paperID {
			return &s.papers[i]
		}
	}
	return nil
}

// SearchPapers filters the loaded papers by a case-insensitive substring
// match over title, authors and email.
func (s *AdminSession) SearchPapers(query string) []models.Paper {
	if query == "" {
		return s.papers
	}
	q := strings.ToLower(query)
	matched := make([]models.Paper, 0, len(s.papers))
	for _, paper := range s.papers {
		if strings.Contains(strings.ToLower(paper.Title), q) ||
			strings.Contains(strings.ToLower(paper.Authors), q) ||
			strings.Contains(strings.ToLower(paper.Email), q) {
			matched = append(matched, paper)
		}
	}
	return matched
}

// CandidateReviewers returns the eligible reviewers for a paper, in server
// order.
func (s *AdminSession) CandidateReviewers(paperID string) ([]models.Reviewer, error) {
	paper := s.Paper(paperID)
	if paper == nil {
		return nil, ErrNoPaper
	}
	return EligibleReviewers(paper, s.reviewers), nil
}

// AddReviewer registers a new reviewer; both fields are required.
func (s *AdminSession) AddReviewer(ctx context.Context, name, interests string) error {
	if name == "" || interests == "" {
		return ErrMissingFields
	}
	if err := s.guard.begin(); err != nil {
		return err
	}
	defer s.guard.end()
	return s.client.AddReviewer(ctx, name, interests)
}

// AssignReviewer assigns a reviewer to a paper and reflects the assignment
// locally.
func (s *AdminSession) AssignReviewer(ctx context.Context, paperID string, reviewerID int) error {
	paper := s.Paper(paperID)
	if paper == nil {
		return ErrNoPaper
	}
	if err := s.guard.begin(); err != nil {
		return err
	}
	defer s.guard.end()

	if err := s.client.AssignReviewer(ctx, paperID, reviewerID); err != nil {
		return err
	}
	for _, reviewer := range s.reviewers {
		if reviewer.ID == reviewerID {
			paper.Reviewer = reviewer.Name
			break
		}
	}
	s.invalidate(ctx, paperID)
	return nil
}

// ToggleAnonymity flips one anonymity flag as a two-step saga: persist the
// flag, then request the matching redaction of the PDF. The local flag
// changes only when both steps succeed. When the redaction step fails, a
// compensating patch restores the persisted flag to its prior value.
func (s *AdminSession) ToggleAnonymity(ctx context.Context, paperID string, field models.AnonField, value bool) error {
	paper := s.Paper(paperID)
	if paper == nil {
		return ErrNoPaper
	}
	if err := s.guard.begin(); err != nil {
		return err
	}
	defer s.guard.end()

	prior := paper.Flag(field)
	if err := s.client.UpdateArticle(ctx, paperID, map[string]interface{}{string(field): value}); err != nil {
		return fmt.Errorf("updating anonymity flag: %w", err)
	}

	redact := s.client.UnblurPDF
	if value {
		redact = s.client.BlurPDF
	}
	if err := redact(ctx, paperID, field); err != nil {
		// Compensation: the flag was persisted but the PDF was not
		// touched. Put the flag back so the record and the PDF agree.
		if compErr := s.client.UpdateArticle(ctx, paperID, map[string]interface{}{string(field): prior}); compErr != nil {
			s.logger.Warn("Anonymity compensation failed; flag and PDF disagree",
				zap.String("paper_id", paperID),
				zap.String("field", string(field)),
				zap.Error(compErr))
		}
		return fmt.Errorf("redacting pdf field: %w", err)
	}

	paper.SetFlag(field, value)
	s.invalidate(ctx, paperID)
	return nil
}

// ReleaseToAuthor clears all three anonymity flags on a decided paper and
// restores the full PDF: one patch followed by three unredaction requests
// in fixed field order, strictly sequential. The operation reports success
// only when all four calls succeed; on the first failure it stops, leaves
// local flags untouched and performs no compensation.
func (s *AdminSession) ReleaseToAuthor(ctx context.Context, paperID string) error {
	paper := s.Paper(paperID)
	if paper == nil {
		return ErrNoPaper
	}
	if !paper.Status.Decided() {
		return ErrNotDecided
	}
	if err := s.guard.begin(); err != nil {
		return err
	}
	defer s.guard.end()

	patch := map[string]interface{}{
		string(models.FieldAuthors):     false,
		string(models.FieldEmail):       false,
		string(models.FieldInstitution): false,
	}
	if err := s.client.UpdateArticle(ctx, paperID, patch); err != nil {
		return fmt.Errorf("clearing anonymity flags: %w", err)
	}
	for _, field := range models.ReleaseOrder() {
		if err := s.client.UnblurPDF(ctx, paperID, field); err != nil {
			return fmt.Errorf("unredacting %s: %w", field, err)
		}
	}

	for _, field := range models.ReleaseOrder() {
		paper.SetFlag(field, false)
	}
	s.invalidate(ctx, paperID)
	return nil
}

// Reviews fetches the reviews left on a paper.
func (s *AdminSession) Reviews(ctx context.Context, paperID string) ([]models.Review, error) {
	if s.Paper(paperID) == nil {
		return nil, ErrNoPaper
	}
	return s.client.GetReviews(ctx, paperID)
}

// DownloadPDF fetches a paper's PDF in its current redaction state.
func (s *AdminSession) DownloadPDF(ctx context.Context, paperID string) ([]byte, error) {
	if s.Paper(paperID) == nil {
		return nil, ErrNoPaper
	}
	return s.client.GetPDF(ctx, paperID)
}

func (s *AdminSession) invalidate(ctx context.Context, paperID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, paperID); err != nil {
		s.logger.Warn("Could not invalidate paper snapshot", zap.Error(err))
	}
}
