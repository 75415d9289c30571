package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/santanu2402/recallai-cli/internal/client/api"
	"github.com/santanu2402/recallai-cli/internal/client/models"
	"github.com/santanu2402/recallai-cli/internal/common"
	"github.com/santanu2402/recallai-cli/internal/filex"
	"github.com/santanu2402/recallai-cli/internal/logging"
)

// FileTooLargeError rejects a document that exceeds the upload size cap.
// Both sizes are reported in human-readable units.
type FileTooLargeError struct {
	Size  int64
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file is too large: %s exceeds the %s limit",
		filex.FormatSize(e.Size), filex.FormatSize(e.Limit))
}

// UploadService validates and submits uploads against the backend and keeps
// the persisted upload list current.
type UploadService struct {
	store   *Store
	backend api.Backend
	log     logging.Logger
	now     func() time.Time
}

// NewUploadService constructs an upload service.
func NewUploadService(store *Store, backend api.Backend, log logging.Logger) *UploadService {
	return &UploadService{store: store, backend: backend, log: log, now: time.Now}
}

// Submit validates the request and performs exactly one backend call.
// Validation order: input shape, upload limit, then (documents only) file
// size. Local rejections never reach the backend. On success the new upload
// is prepended, the counter bumped, the upload made active, and the
// transcript reset, atomically.
func (s *UploadService) Submit(ctx context.Context, req models.UploadRequest) (*models.Upload, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	count, err := s.store.UploadCount(ctx)
	if err != nil {
		return nil, err
	}
	if count >= common.MaxUploads {
		return nil, common.ErrUploadLimitReached
	}

	var upload models.Upload
	switch {
	case req.Kind.IsDocument():
		upload, err = s.submitDocument(ctx, req)
	default:
		upload, err = s.submitYouTube(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	if err := s.store.AppendUpload(ctx, upload); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "upload registered", "upload_no", upload.UploadNo, "kind", upload.Kind)
	return &upload, nil
}

func (s *UploadService) submitDocument(ctx context.Context, req models.UploadRequest) (models.Upload, error) {
	var empty models.Upload

	size, err := filex.Size(req.FilePath)
	if err != nil {
		return empty, err
	}
	if size > common.MaxFileSize {
		return empty, &FileTooLargeError{Size: size, Limit: common.MaxFileSize}
	}

	f, err := os.Open(req.FilePath)
	if err != nil {
		return empty, fmt.Errorf("open %s: %w", req.FilePath, err)
	}
	defer f.Close()

	name := filepath.Base(req.FilePath)
	uploadNo, err := s.backend.UploadFile(ctx, name, f)
	if err != nil {
		return empty, err
	}

	return models.Upload{
		UploadNo:    uploadNo,
		Kind:        req.Kind,
		DisplayName: name,
		UploadedAt:  s.now(),
		SizeBytes:   size,
	}, nil
}

func (s *UploadService) submitYouTube(ctx context.Context, req models.UploadRequest) (models.Upload, error) {
	var empty models.Upload

	videoURL := strings.TrimSpace(req.URL)
	uploadNo, err := s.backend.UploadYouTube(ctx, videoURL)
	if err != nil {
		return empty, err
	}

	now := s.now()
	return models.Upload{
		UploadNo:    uploadNo,
		Kind:        models.UploadKindYouTube,
		DisplayName: "YouTube Video - " + now.Format("3:04:05 PM"),
		UploadedAt:  now,
		SourceURL:   videoURL,
	}, nil
}

// List returns the uploads for the session, most recent first.
func (s *UploadService) List(ctx context.Context) ([]models.Upload, error) {
	return s.store.Uploads(ctx)
}

// Active returns the active upload, or common.ErrNoActiveUpload.
func (s *UploadService) Active(ctx context.Context) (*models.Upload, error) {
	uploadNo, err := s.store.ActiveUpload(ctx)
	if err != nil {
		return nil, err
	}
	if uploadNo == "" {
		return nil, common.ErrNoActiveUpload
	}

	uploads, err := s.store.Uploads(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range uploads {
		if u.UploadNo == uploadNo {
			return &u, nil
		}
	}
	return nil, common.ErrNoActiveUpload
}

// SetActive switches the active upload, clearing the transcript. Selecting
// the already active upload is a no-op and reports changed=false, leaving
// the transcript untouched.
func (s *UploadService) SetActive(ctx context.Context, uploadNo string) (changed bool, err error) {
	current, err := s.store.ActiveUpload(ctx)
	if err != nil {
		return false, err
	}
	if current == uploadNo {
		return false, nil
	}

	uploads, err := s.store.Uploads(ctx)
	if err != nil {
		return false, err
	}
	known := false
	for _, u := range uploads {
		if u.UploadNo == uploadNo {
			known = true
			break
		}
	}
	if !known {
		return false, common.ErrUnknownUpload
	}

	if err := s.store.SetActiveUpload(ctx, uploadNo); err != nil {
		return false, err
	}
	return true, nil
}

func validateRequest(req models.UploadRequest) error {
	switch req.Kind {
	case models.UploadKindPDF, models.UploadKindDOCX:
		if strings.TrimSpace(req.FilePath) == "" {
			return common.ErrNoFileSelected
		}
	case models.UploadKindYouTube:
		if strings.TrimSpace(req.URL) == "" {
			return common.ErrNoURLProvided
		}
	default:
		return common.ErrNoKindSelected
	}
	return nil
}
