package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"go.uber.org/zap"
)

// Submission carries the fields of a new paper upload. File transfer is the
// one place the backend takes multipart form data instead of JSON.
type Submission struct {
	Email       string
	Title       string
	Authors     string
	Institution string
	FileName    string
	File        io.Reader
}

// Attachment is an optional replacement PDF for a revision.
type Attachment struct {
	Name    string
	Content io.Reader
}

// Upload submits a new paper and returns the tracking code assigned by the
// backend.
func (c *Client) Upload(ctx context.Context, sub Submission) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"email":       sub.Email,
		"title":       sub.Title,
		"authors":     sub.Authors,
		"institution": sub.Institution,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return "", err
		}
	}
	part, err := w.CreateFormFile("file", sub.FileName)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, sub.File); err != nil {
		return "", fmt.Errorf("reading submission file: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/upload"), &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out struct {
		TrackingCode string `json:"tracking_code"`
	}
	if err := c.doJSON("upload", req, &out); err != nil {
		return "", err
	}
	c.Logger.Info("Paper uploaded", zap.String("tracking_code", out.TrackingCode))
	return out.TrackingCode, nil
}

// ReviseArticle resubmits a rejected paper under its tracking code. Title is
// always sent; the file part is included only when a replacement PDF is
// attached.
func (c *Client) ReviseArticle(ctx context.Context, trackingCode, title string, file *Attachment) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("title", title); err != nil {
		return err
	}
	if file != nil {
		part, err := w.CreateFormFile("file", file.Name)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, file.Content); err != nil {
			return fmt.Errorf("reading revision file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.url("/revise_article/"+trackingCode), &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.doJSON("revise_article", req, nil)
}
