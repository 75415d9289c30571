// Package state persists the client's session record as a small key-value
// set. The keys mirror the product's persisted state contract: session
// timestamps, the upload list, the upload counter, the active upload, and
// the chat transcript. All keys are cleared together; partial clearing is
// not permitted.
package state

import "context"

// Persisted keys.
const (
	KeyStartTime    = "startTime"
	KeyEndTime      = "endTime"
	KeyUploads      = "uploads_array"
	KeyUploadCount  = "upload_count"
	KeyTranscript   = "response_array"
	KeyActiveUpload = "active_upload"
)

// Repository is a context-aware key-value store. Get returns nil without an
// error for a missing key. SetAll applies all writes atomically, so a
// multi-key update (session creation, upload append) never leaves a partial
// record behind.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetAll(ctx context.Context, values map[string][]byte) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
