// Package api implements the HTTP client for the RecallAI backend: document
// upload, video link registration, and question answering.
package api

import (
	"context"
	"io"
)

// AskResult is the backend's answer to a question. ClarifiedQuestion is the
// backend's optional restatement of what was asked.
type AskResult struct {
	Answer            string `json:"answer"`
	ClarifiedQuestion string `json:"clarified_question,omitempty"`
}

// Backend is the surface the client consumes. Each method performs exactly
// one network call and honors context cancellation.
type Backend interface {
	// UploadFile submits a document as a multipart form payload and returns
	// the backend-assigned upload identifier.
	UploadFile(ctx context.Context, name string, r io.Reader) (string, error)

	// UploadYouTube registers a video link and returns the backend-assigned
	// upload identifier.
	UploadYouTube(ctx context.Context, url string) (string, error)

	// Ask submits a question about the given upload.
	Ask(ctx context.Context, question string, uploadNo string) (*AskResult, error)
}
