package services

import (
	"context"
	"io"

	"paper-desk/api"

	"go.uber.org/zap"
)

// uploader is the slice of the backend client the submission screen needs.
type uploader interface {
	Upload(ctx context.Context, sub api.Submission) (string, error)
}

// submissionRecorder persists tracking codes locally so authors do not lose
// them. Recording is best-effort; a ledger failure never fails the upload.
type submissionRecorder interface {
	RecordSubmission(ctx context.Context, trackingCode, email, title string) error
}

// SubmitForm is the author-entered state of the submission screen.
type SubmitForm struct {
	Email       string
	Title       string
	Authors     string
	Institution string
	FileName    string
	File        io.Reader
}

// SubmitService drives the paper submission screen.
type SubmitService struct {
	client uploader
	ledger submissionRecorder
	logger *zap.Logger

	guard inflight
}

// NewSubmitService creates the submission screen service. ledger may be nil
// when no local ledger is configured.
func NewSubmitService(client uploader, ledger submissionRecorder, logger *zap.Logger) *SubmitService {
	return &SubmitService{client: client, ledger: ledger, logger: logger}
}

// Submit validates the form locally, uploads the paper and returns the
// tracking code the author must keep for status lookups.
func (s *SubmitService) Submit(ctx context.Context, form SubmitForm) (string, error) {
	if form.File == nil || form.Email == "" || form.Title == "" {
		return "", ErrMissingFields
	}
	if !ValidEmail(form.Email) {
		return "", ErrInvalidEmail
	}
	if err := s.guard.begin(); err != nil {
		return "", err
	}
	defer s.guard.end()

	code, err := s.client.Upload(ctx, api.Submission{
		Email:       form.Email,
		Title:       form.Title,
		Authors:     form.Authors,
		Institution: form.Institution,
		FileName:    form.FileName,
		File:        form.File,
	})
	if err != nil {
		return "", err
	}

	if s.ledger != nil {
		if err := s.ledger.RecordSubmission(ctx, code, form.Email, form.Title); err != nil {
			s.logger.Warn("Could not record submission in local ledger", zap.Error(err))
		}
	}
	return code, nil
}
