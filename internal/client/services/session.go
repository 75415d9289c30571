package services

import (
	"context"
	"strings"
	"time"

	"github.com/santanu2402/recallai-cli/internal/client/models"
	"github.com/santanu2402/recallai-cli/internal/common"
	"github.com/santanu2402/recallai-cli/internal/logging"
)

// SessionService owns the session lifecycle: code verification, creation,
// loading, and wholesale teardown.
type SessionService struct {
	store *Store
	log   logging.Logger
	now   func() time.Time
}

// NewSessionService constructs a session service over the given store.
func NewSessionService(store *Store, log logging.Logger) *SessionService {
	return &SessionService{store: store, log: log, now: time.Now}
}

// RequestSession verifies the access code and, when it matches, persists a
// fresh session with empty upload and transcript state. No state is written
// until the code is confirmed valid. Verification is a case-insensitive,
// whitespace-trimmed comparison.
func (s *SessionService) RequestSession(ctx context.Context, code string) (*models.Session, error) {
	if strings.ToLower(strings.TrimSpace(code)) != common.AccessCode {
		return nil, common.ErrInvalidCode
	}

	start := s.now()
	session := models.Session{StartTime: start, EndTime: start.Add(common.SessionDuration)}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "session created", "ends_at", session.EndTime)
	return &session, nil
}

// Load returns the persisted session, or common.ErrNoSession when none
// exists. Expiry is the caller's concern; an expired record still loads.
func (s *SessionService) Load(ctx context.Context) (*models.Session, error) {
	return s.store.Session(ctx)
}

// Remaining returns the whole seconds left on the persisted session.
func (s *SessionService) Remaining(ctx context.Context) (int, error) {
	session, err := s.store.Session(ctx)
	if err != nil {
		return 0, err
	}
	return session.Remaining(s.now()), nil
}

// Clear discards all persisted session, upload, and chat state together.
func (s *SessionService) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.log.Info(ctx, "session cleared")
	return nil
}
