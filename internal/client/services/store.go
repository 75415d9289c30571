// Package services contains the application services of the RecallAI client:
// the session store and lifecycle, upload bookkeeping, and the chat flow.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/santanu2402/recallai-cli/internal/client/models"
	"github.com/santanu2402/recallai-cli/internal/client/repositories/state"
	"github.com/santanu2402/recallai-cli/internal/common"
)

// Store exposes the persisted session record as typed values over the
// key-value repository. Timestamps are stored as milliseconds since epoch,
// collections as JSON, the counter as a decimal string.
type Store struct {
	repo state.Repository
}

// NewStore wraps a state repository.
func NewStore(repo state.Repository) *Store {
	return &Store{repo: repo}
}

// CreateSession persists a fresh session together with empty upload and
// transcript state, in one atomic write.
func (s *Store) CreateSession(ctx context.Context, session models.Session) error {
	return s.repo.SetAll(ctx, map[string][]byte{
		state.KeyStartTime:    []byte(strconv.FormatInt(session.StartTime.UnixMilli(), 10)),
		state.KeyEndTime:      []byte(strconv.FormatInt(session.EndTime.UnixMilli(), 10)),
		state.KeyUploads:      []byte("[]"),
		state.KeyUploadCount:  []byte("0"),
		state.KeyTranscript:   []byte("[]"),
		state.KeyActiveUpload: []byte{},
	})
}

// Session loads the persisted session, or common.ErrNoSession when no record
// exists.
func (s *Store) Session(ctx context.Context) (*models.Session, error) {
	start, err := s.timestamp(ctx, state.KeyStartTime)
	if err != nil {
		return nil, err
	}
	end, err := s.timestamp(ctx, state.KeyEndTime)
	if err != nil {
		return nil, err
	}
	return &models.Session{StartTime: start, EndTime: end}, nil
}

func (s *Store) timestamp(ctx context.Context, key string) (time.Time, error) {
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		return time.Time{}, err
	}
	if raw == nil {
		return time.Time{}, common.ErrNoSession
	}
	millis, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt %s value %q: %w", key, raw, err)
	}
	return time.UnixMilli(millis), nil
}

// Uploads returns the persisted upload list, most recent first.
func (s *Store) Uploads(ctx context.Context) ([]models.Upload, error) {
	var uploads []models.Upload
	if err := s.loadJSON(ctx, state.KeyUploads, &uploads); err != nil {
		return nil, err
	}
	return uploads, nil
}

// UploadCount returns the persisted upload counter.
func (s *Store) UploadCount(ctx context.Context) (int, error) {
	raw, err := s.repo.Get(ctx, state.KeyUploadCount)
	if err != nil {
		return 0, err
	}
	if raw == nil {
		return 0, nil
	}
	count, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0, fmt.Errorf("corrupt upload count %q: %w", raw, err)
	}
	return count, nil
}

// AppendUpload prepends the upload, bumps the counter, makes it active, and
// resets the transcript, all in one atomic write.
func (s *Store) AppendUpload(ctx context.Context, upload models.Upload) error {
	uploads, err := s.Uploads(ctx)
	if err != nil {
		return err
	}
	count, err := s.UploadCount(ctx)
	if err != nil {
		return err
	}

	uploads = append([]models.Upload{upload}, uploads...)
	encoded, err := json.Marshal(uploads)
	if err != nil {
		return fmt.Errorf("encode uploads: %w", err)
	}

	return s.repo.SetAll(ctx, map[string][]byte{
		state.KeyUploads:      encoded,
		state.KeyUploadCount:  []byte(strconv.Itoa(count + 1)),
		state.KeyActiveUpload: []byte(upload.UploadNo),
		state.KeyTranscript:   []byte("[]"),
	})
}

// ActiveUpload returns the identifier of the active upload, empty if none.
func (s *Store) ActiveUpload(ctx context.Context) (string, error) {
	raw, err := s.repo.Get(ctx, state.KeyActiveUpload)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// SetActiveUpload switches the active upload and resets the transcript in
// one atomic write.
func (s *Store) SetActiveUpload(ctx context.Context, uploadNo string) error {
	return s.repo.SetAll(ctx, map[string][]byte{
		state.KeyActiveUpload: []byte(uploadNo),
		state.KeyTranscript:   []byte("[]"),
	})
}

// Transcript returns the persisted chat transcript.
func (s *Store) Transcript(ctx context.Context) ([]models.ChatTurn, error) {
	var turns []models.ChatTurn
	if err := s.loadJSON(ctx, state.KeyTranscript, &turns); err != nil {
		return nil, err
	}
	return turns, nil
}

// SaveTranscript replaces the persisted transcript wholesale.
func (s *Store) SaveTranscript(ctx context.Context, turns []models.ChatTurn) error {
	if turns == nil {
		turns = []models.ChatTurn{}
	}
	encoded, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("encode transcript: %w", err)
	}
	return s.repo.Set(ctx, state.KeyTranscript, encoded)
}

// Clear invalidates the whole session record.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

func (s *Store) loadJSON(ctx context.Context, key string, out any) error {
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		return err
	}
	if raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("corrupt %s value: %w", key, err)
	}
	return nil
}
