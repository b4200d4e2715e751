package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordedSubmission struct {
	trackingCode, email, title string
}

type fakeRecorder struct {
	records []recordedSubmission
	fail    error
}

func (f *fakeRecorder) RecordSubmission(ctx context.Context, trackingCode, email, title string) error {
	if f.fail != nil {
		return f.fail
	}
	f.records = append(f.records, recordedSubmission{trackingCode, email, title})
	return nil
}

func validForm() SubmitForm {
	return SubmitForm{
		Email:       "jane@example.org",
		Title:       "Deep Parsing",
		Authors:     "Jane Doe",
		Institution: "Example University",
		FileName:    "paper.pdf",
		File:        strings.NewReader("%PDF-1.4"),
	}
}

func TestSubmitRejectsIncompleteFormLocally(t *testing.T) {
	backend := newFakeBackend()
	service := NewSubmitService(backend, nil, zap.NewNop())

	for _, mutate := range []func(*SubmitForm){
		func(f *SubmitForm) { f.File = nil },
		func(f *SubmitForm) { f.Email = "" },
		func(f *SubmitForm) { f.Title = "" },
	} {
		form := validForm()
		mutate(&form)
		_, err := service.Submit(context.Background(), form)
		require.ErrorIs(t, err, ErrMissingFields)
	}
	require.Empty(t, backend.calls, "incomplete forms must never reach the network")
}

func TestSubmitRejectsMalformedEmailLocally(t *testing.T) {
	backend := newFakeBackend()
	service := NewSubmitService(backend, nil, zap.NewNop())

	for _, email := range []string{"not-an-email", "jane@", "@example.org", "jane@example"} {
		form := validForm()
		form.Email = email
		_, err := service.Submit(context.Background(), form)
		require.ErrorIs(t, err, ErrInvalidEmail, email)
	}
	require.Empty(t, backend.calls)
}

func TestSubmitReturnsTrackingCodeAndRecordsIt(t *testing.T) {
	backend := newFakeBackend()
	backend.trackingCode = "TRK-1234"
	recorder := &fakeRecorder{}
	service := NewSubmitService(backend, recorder, zap.NewNop())

	code, err := service.Submit(context.Background(), validForm())
	require.NoError(t, err)
	require.Equal(t, "TRK-1234", code)
	require.Equal(t, []string{"upload"}, backend.calls)
	require.Equal(t, []recordedSubmission{{"TRK-1234", "jane@example.org", "Deep Parsing"}}, recorder.records)
}

func TestSubmitSucceedsWhenLedgerFails(t *testing.T) {
	backend := newFakeBackend()
	backend.trackingCode = "TRK-1234"
	recorder := &fakeRecorder{fail: context.DeadlineExceeded}
	service := NewSubmitService(backend, recorder, zap.NewNop())

	code, err := service.Submit(context.Background(), validForm())
	require.NoError(t, err)
	require.Equal(t, "TRK-1234", code)
}
