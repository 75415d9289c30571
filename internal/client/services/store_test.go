package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/santanu2402/recallai-cli/internal/client/models"
	"github.com/santanu2402/recallai-cli/internal/client/repositories/state"
)

func TestStore_SessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore(state.NewMemoryRepository())

	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	session := models.Session{StartTime: start, EndTime: start.Add(30 * time.Minute)}
	require.NoError(t, store.CreateSession(ctx, session))

	loaded, err := store.Session(ctx)
	require.NoError(t, err)
	require.Equal(t, session.StartTime.UnixMilli(), loaded.StartTime.UnixMilli())
	require.Equal(t, session.EndTime.UnixMilli(), loaded.EndTime.UnixMilli())
}

func TestStore_CorruptTimestamp(t *testing.T) {
	ctx := context.Background()
	repo := state.NewMemoryRepository()
	store := NewStore(repo)

	require.NoError(t, repo.Set(ctx, state.KeyStartTime, []byte("yesterday")))
	require.NoError(t, repo.Set(ctx, state.KeyEndTime, []byte("123")))

	_, err := store.Session(ctx)
	require.ErrorContains(t, err, "corrupt")
}

func TestStore_AppendUploadResetsTranscriptAtomically(t *testing.T) {
	ctx := context.Background()
	repo := state.NewMemoryRepository()
	store := NewStore(repo)

	start := time.Now()
	require.NoError(t, store.CreateSession(ctx, models.Session{StartTime: start, EndTime: start.Add(time.Hour)}))
	require.NoError(t, store.SaveTranscript(ctx, []models.ChatTurn{{Question: "q", Phase: models.TurnResolved}}))

	upload := models.Upload{UploadNo: "u-1", Kind: models.UploadKindPDF, DisplayName: "a.pdf", UploadedAt: start}
	require.NoError(t, store.AppendUpload(ctx, upload))

	count, err := store.UploadCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	active, err := store.ActiveUpload(ctx)
	require.NoError(t, err)
	require.Equal(t, "u-1", active)

	turns, err := store.Transcript(ctx)
	require.NoError(t, err)
	require.Empty(t, turns)
}

func TestStore_UploadCountDefaultsToZero(t *testing.T) {
	store := NewStore(state.NewMemoryRepository())
	count, err := store.UploadCount(context.Background())
	require.NoError(t, err)
	require.Zero(t, count)
}
