package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/santanu2402/recallai-cli/internal/client/repositories/state"
	"github.com/santanu2402/recallai-cli/internal/common"
	"github.com/santanu2402/recallai-cli/internal/logging"
)

func newSessionService(t *testing.T) (*SessionService, *state.MemoryRepository) {
	t.Helper()
	repo := state.NewMemoryRepository()
	return NewSessionService(NewStore(repo), logging.NewNop()), repo
}

func TestRequestSession_AcceptsCodeVariants(t *testing.T) {
	tests := []struct {
		name string
		code string
		ok   bool
	}{
		{"exact", "santanu", true},
		{"upper case", "SANTANU", true},
		{"mixed case with whitespace", "  SanTanu \n", true},
		{"wrong code", "sesame", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"prefix of secret", "santan", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, repo := newSessionService(t)
			session, err := svc.RequestSession(context.Background(), tc.code)
			if tc.ok {
				require.NoError(t, err)
				require.NotNil(t, session)
				return
			}
			require.ErrorIs(t, err, common.ErrInvalidCode)

			all, listErr := repo.List(context.Background())
			require.NoError(t, listErr)
			require.Empty(t, all, "no state may be written until the code is valid")
		})
	}
}

func TestRequestSession_CreatesThirtyMinuteWindow(t *testing.T) {
	svc, repo := newSessionService(t)
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	session, err := svc.RequestSession(context.Background(), "santanu")
	require.NoError(t, err)
	require.Equal(t, 30*time.Minute, session.EndTime.Sub(session.StartTime))
	require.Equal(t, 1800, session.Remaining(start))

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []byte("[]"), all[state.KeyUploads])
	require.Equal(t, []byte("0"), all[state.KeyUploadCount])
	require.Equal(t, []byte("[]"), all[state.KeyTranscript])
}

func TestLoad_RoundTripsThroughStore(t *testing.T) {
	svc, _ := newSessionService(t)
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	created, err := svc.RequestSession(context.Background(), "santanu")
	require.NoError(t, err)

	loaded, err := svc.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, created.StartTime.UnixMilli(), loaded.StartTime.UnixMilli())
	require.Equal(t, created.EndTime.UnixMilli(), loaded.EndTime.UnixMilli())
}

func TestLoad_NoSession(t *testing.T) {
	svc, _ := newSessionService(t)
	_, err := svc.Load(context.Background())
	require.ErrorIs(t, err, common.ErrNoSession)
}

func TestClear_WipesEverything(t *testing.T) {
	svc, repo := newSessionService(t)
	_, err := svc.RequestSession(context.Background(), "santanu")
	require.NoError(t, err)

	require.NoError(t, svc.Clear(context.Background()))

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)

	_, err = svc.Load(context.Background())
	require.ErrorIs(t, err, common.ErrNoSession)
}

func TestRemaining_TracksClock(t *testing.T) {
	svc, _ := newSessionService(t)
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	now := start
	svc.now = func() time.Time { return now }

	_, err := svc.RequestSession(context.Background(), "santanu")
	require.NoError(t, err)

	remaining, err := svc.Remaining(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1800, remaining)

	now = start.Add(29 * time.Minute)
	remaining, err = svc.Remaining(context.Background())
	require.NoError(t, err)
	require.Equal(t, 60, remaining)

	now = start.Add(31 * time.Minute)
	remaining, err = svc.Remaining(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, remaining, "remaining never goes negative")
}
