package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"paper-desk/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNoSnapshot is returned when no cached snapshot exists for a tracking
// code.
var ErrNoSnapshot = errors.New("no snapshot for tracking code")

// Submission is a locally kept record of a paper the author submitted from
// this machine, so tracking codes survive the session.
type Submission struct {
	ID           string `gorm:"primaryKey"`
	TrackingCode string `gorm:"uniqueIndex"`
	Email        string
	Title        string
	CreatedAt    time.Time
}

// PaperSnapshot caches the last fetched paper detail keyed by tracking
// code. Entries are invalidated explicitly whenever a write touches the
// paper; staleness across screens is otherwise accepted.
type PaperSnapshot struct {
	TrackingCode string `gorm:"primaryKey"`
	Data         []byte
	FetchedAt    time.Time
}

// Ledger is the local sqlite store behind submissions and snapshots.
type Ledger struct {
	db *gorm.DB
}

// Open opens (and migrates) the ledger database at path.
func Open(path string) (*Ledger, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Submission{}, &PaperSnapshot{}); err != nil {
		return nil, err
	}
	return &Ledger{db: db}, nil
}

// RecordSubmission stores a freshly issued tracking code.
func (l *Ledger) RecordSubmission(ctx context.Context, trackingCode, email, title string) error {
	record := Submission{
		ID:           uuid.NewString(),
		TrackingCode: trackingCode,
		Email:        email,
		Title:        title,
		CreatedAt:    time.Now().UTC(),
	}
	return l.db.WithContext(ctx).Create(&record).Error
}

// Submissions returns the recorded submissions, newest first.
func (l *Ledger) Submissions(ctx context.Context) ([]Submission, error) {
	var records []Submission
	err := l.db.WithContext(ctx).Order("created_at desc").Find(&records).Error
	return records, err
}

// SaveSnapshot caches a fetched paper detail under its tracking code.
func (l *Ledger) SaveSnapshot(ctx context.Context, p *models.Paper) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	snapshot := PaperSnapshot{
		TrackingCode: p.ID,
		Data:         data,
		FetchedAt:    time.Now().UTC(),
	}
	return l.db.WithContext(ctx).Save(&snapshot).Error
}

// Snapshot returns the cached paper for a tracking code, or ErrNoSnapshot.
func (l *Ledger) Snapshot(ctx context.Context, trackingCode string) (*models.Paper, error) {
	var snapshot PaperSnapshot
	err := l.db.WithContext(ctx).First(&snapshot, "tracking_code = ?", trackingCode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	var paper models.Paper
	if err := json.Unmarshal(snapshot.Data, &paper); err != nil {
		return nil, err
	}
	return &paper, nil
}

// Invalidate drops the cached snapshot for a tracking code.
func (l *Ledger) Invalidate(ctx context.Context, trackingCode string) error {
	return l.db.WithContext(ctx).Delete(&PaperSnapshot{}, "tracking_code = ?", trackingCode).Error
}
