package services

import (
	"context"
	"fmt"

	"paper-desk/api"
	"paper-desk/models"
	"paper-desk/storage"
)

// fakeBackend implements every backend slice the screens consume. It logs
// each call and can be told to fail specific ones, so tests can assert
// exact call sequences and the absence of network traffic.
type fakeBackend struct {
	calls  []string
	failOn map[string]error

	trackingCode string
	paper        *models.Paper
	papers       []models.Paper
	reviewers    []models.Reviewer
	reviews      []models.Review
	messages     []models.Message
	logs         []models.Log
	pdf          []byte
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{failOn: map[string]error{}}
}

func (f *fakeBackend) record(call string) error {
	f.calls = append(f.calls, call)
	return f.failOn[call]
}

func (f *fakeBackend) Upload(ctx context.Context, sub api.Submission) (string, error) {
	if err := f.record("upload"); err != nil {
		return "", err
	}
	return f.trackingCode, nil
}

func (f *fakeBackend) PaperStatus(ctx context.Context, email, trackingCode string) (*models.Paper, error) {
	if err := f.record("paper_status"); err != nil {
		return nil, err
	}
	clone := *f.paper
	return &clone, nil
}

func (f *fakeBackend) GetPapers(ctx context.Context) ([]models.Paper, error) {
	if err := f.record("get_papers"); err != nil {
		return nil, err
	}
	return f.papers, nil
}

func (f *fakeBackend) ReviewerArticles(ctx context.Context, name string) ([]models.Paper, error) {
	if err := f.record("reviewer_articles:" + name); err != nil {
		return nil, err
	}
	return f.papers, nil
}

func (f *fakeBackend) GetReviewers(ctx context.Context) ([]models.Reviewer, error) {
	if err := f.record("get_reviewers"); err != nil {
		return nil, err
	}
	return f.reviewers, nil
}

func (f *fakeBackend) AddReviewer(ctx context.Context, name, interests string) error {
	return f.record("add_reviewer")
}

func (f *fakeBackend) AssignReviewer(ctx context.Context, paperID string, reviewerID int) error {
	return f.record(fmt.Sprintf("assign_reviewer:%s:%d", paperID, reviewerID))
}

func (f *fakeBackend) UpdateArticle(ctx context.Context, paperID string, patch map[string]interface{}) error {
	return f.record("update_article:" + paperID)
}

func (f *fakeBackend) BlurPDF(ctx context.Context, paperID string, field models.AnonField) error {
	return f.record("blur:" + string(field))
}

func (f *fakeBackend) UnblurPDF(ctx context.Context, paperID string, field models.AnonField) error {
	return f.record("unblur:" + string(field))
}

func (f *fakeBackend) GetReviews(ctx context.Context, paperID string) ([]models.Review, error) {
	if err := f.record("get_reviews"); err != nil {
		return nil, err
	}
	return f.reviews, nil
}

func (f *fakeBackend) SubmitReview(ctx context.Context, paperID, comments string, status models.Status) error {
	return f.record("submit_review:" + string(status))
}

func (f *fakeBackend) GetMessages(ctx context.Context, trackingCode string) ([]models.Message, error) {
	if err := f.record("get_messages"); err != nil {
		return nil, err
	}
	return f.messages, nil
}

func (f *fakeBackend) GetMessagesForReviewer(ctx context.Context, paperID string) ([]models.Message, error) {
	if err := f.record("get_messages_for_reviewer"); err != nil {
		return nil, err
	}
	return f.messages, nil
}

func (f *fakeBackend) SendMessage(ctx context.Context, trackingCode, sender, text string) error {
	return f.record("send_message:" + sender)
}

func (f *fakeBackend) ReviseArticle(ctx context.Context, trackingCode, title string, file *api.Attachment) error {
	return f.record("revise_article:" + title)
}

func (f *fakeBackend) GetPDF(ctx context.Context, paperID string) ([]byte, error) {
	if err := f.record("get_article_pdf"); err != nil {
		return nil, err
	}
	return f.pdf, nil
}

func (f *fakeBackend) GetLogs(ctx context.Context) ([]models.Log, error) {
	if err := f.record("get_logs"); err != nil {
		return nil, err
	}
	return f.logs, nil
}

// fakeCache records snapshot writes and invalidations and serves reads from
// an in-memory map.
type fakeCache struct {
	saved       []string
	invalidated []string
	snapshots   map[string]*models.Paper
}

func (f *fakeCache) SaveSnapshot(ctx context.Context, p *models.Paper) error {
	f.saved = append(f.saved, p.ID)
	if f.snapshots == nil {
		f.snapshots = map[string]*models.Paper{}
	}
	clone := *p
	f.snapshots[p.ID] = &clone
	return nil
}

func (f *fakeCache) Snapshot(ctx context.Context, trackingCode string) (*models.Paper, error) {
	if p, ok := f.snapshots[trackingCode]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, storage.ErrNoSnapshot
}

func (f *fakeCache) Invalidate(ctx context.Context, trackingCode string) error {
	f.invalidated = append(f.invalidated, trackingCode)
	delete(f.snapshots, trackingCode)
	return nil
}
