package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/santanu2402/recallai-cli/internal/client/api"
	"github.com/santanu2402/recallai-cli/internal/client/models"
	"github.com/santanu2402/recallai-cli/internal/client/repositories/state"
	"github.com/santanu2402/recallai-cli/internal/common"
	"github.com/santanu2402/recallai-cli/internal/logging"
)

func newChatFixture(t *testing.T) (*ChatService, *Store, *fakeBackend) {
	t.Helper()
	ctx := context.Background()
	store := NewStore(state.NewMemoryRepository())
	require.NoError(t, store.CreateSession(ctx, models.Session{
		StartTime: time.Now(),
		EndTime:   time.Now().Add(30 * time.Minute),
	}))
	require.NoError(t, store.AppendUpload(ctx, models.Upload{
		UploadNo:    "u-1",
		Kind:        models.UploadKindPDF,
		DisplayName: "paper.pdf",
		UploadedAt:  time.Now(),
	}))
	backend := &fakeBackend{}
	return NewChatService(store, backend, logging.NewNop()), store, backend
}

func TestAsk_SuccessResolvesTurn(t *testing.T) {
	svc, store, backend := newChatFixture(t)
	ctx := context.Background()
	backend.askResult = &api.AskResult{Answer: "X is Y", ClarifiedQuestion: "What is X?"}

	turn, err := svc.Ask(ctx, "What is X?")
	require.NoError(t, err)
	require.Equal(t, "X is Y", turn.Answer)
	require.Equal(t, models.TurnResolved, turn.Phase)
	require.False(t, turn.ClarifiedDiffers(), "clarified equal to the question is suppressed")
	require.Equal(t, "u-1", backend.lastUploadNo)

	persisted, err := store.Transcript(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	require.Equal(t, "X is Y", persisted[0].Answer)
}

func TestAsk_ClarifiedRestatementSurfaces(t *testing.T) {
	svc, _, backend := newChatFixture(t)
	backend.askResult = &api.AskResult{
		Answer:            "It depends.",
		ClarifiedQuestion: "What does X mean in section 2?",
	}

	turn, err := svc.Ask(context.Background(), "what about X")
	require.NoError(t, err)
	require.True(t, turn.ClarifiedDiffers())
}

func TestAsk_FailureMarksTurnFailed(t *testing.T) {
	svc, store, backend := newChatFixture(t)
	ctx := context.Background()
	backend.askErr = errors.New("backend down")

	turn, err := svc.Ask(ctx, "What is X?")
	require.NoError(t, err, "a failed ask is not an error, it is a failed turn")
	require.Equal(t, models.TurnFailed, turn.Phase)
	require.Equal(t, failedAnswer, turn.Answer)

	visible, err := svc.Transcript(ctx)
	require.NoError(t, err)
	require.Len(t, visible, 1, "failed turn stays locally visible")

	persisted, err := store.Transcript(ctx)
	require.NoError(t, err)
	require.Empty(t, persisted, "failed turns are not persisted")
}

func TestAsk_FailureThenSuccessPersistsOnlyResolvedTurns(t *testing.T) {
	svc, store, backend := newChatFixture(t)
	ctx := context.Background()

	backend.askErr = errors.New("backend down")
	_, err := svc.Ask(ctx, "q1")
	require.NoError(t, err)

	backend.askErr = nil
	backend.askResult = &api.AskResult{Answer: "a2"}
	_, err = svc.Ask(ctx, "q2")
	require.NoError(t, err)

	visible, err := svc.Transcript(ctx)
	require.NoError(t, err)
	require.Len(t, visible, 2, "the failed turn stays visible")

	persisted, err := store.Transcript(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	require.Equal(t, "q2", persisted[0].Question)
	require.Equal(t, models.TurnResolved, persisted[0].Phase)
}

func TestAsk_TrimsAndRejectsEmptyQuestion(t *testing.T) {
	svc, _, backend := newChatFixture(t)

	_, err := svc.Ask(context.Background(), "   \n ")
	require.ErrorIs(t, err, common.ErrEmptyQuestion)
	require.Zero(t, backend.calls)
}

func TestAsk_RequiresActiveUpload(t *testing.T) {
	store := NewStore(state.NewMemoryRepository())
	svc := NewChatService(store, &fakeBackend{}, logging.NewNop())

	_, err := svc.Ask(context.Background(), "What is X?")
	require.ErrorIs(t, err, common.ErrNoActiveUpload)
}

func TestAsk_TurnsAppearInSubmissionOrder(t *testing.T) {
	svc, _, backend := newChatFixture(t)
	ctx := context.Background()

	backend.askResult = &api.AskResult{Answer: "first"}
	_, err := svc.Ask(ctx, "q1")
	require.NoError(t, err)

	backend.askResult = &api.AskResult{Answer: "second"}
	_, err = svc.Ask(ctx, "q2")
	require.NoError(t, err)

	turns, err := svc.Transcript(ctx)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	require.Equal(t, "q1", turns[0].Question)
	require.Equal(t, "q2", turns[1].Question)
}

func TestAsk_AbandonedOnCancelledContext(t *testing.T) {
	svc, store, backend := newChatFixture(t)
	backend.askResult = &api.AskResult{Answer: "late"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Ask(ctx, "What is X?")
	require.ErrorIs(t, err, context.Canceled)

	persisted, err := store.Transcript(context.Background())
	require.NoError(t, err)
	require.Empty(t, persisted, "an abandoned request must not write state")

	visible, err := svc.Transcript(context.Background())
	require.NoError(t, err)
	require.Empty(t, visible, "an abandoned turn does not linger as pending")
}

func TestReset_DropsVisibleTranscript(t *testing.T) {
	svc, _, backend := newChatFixture(t)
	ctx := context.Background()
	backend.askResult = &api.AskResult{Answer: "a"}

	_, err := svc.Ask(ctx, "q")
	require.NoError(t, err)

	svc.Reset()

	turns, err := svc.Transcript(ctx)
	require.NoError(t, err)
	require.Empty(t, turns)
}

func TestTranscript_ResumesFromStore(t *testing.T) {
	svc, store, _ := newChatFixture(t)
	ctx := context.Background()

	saved := []models.ChatTurn{{Question: "old q", Answer: "old a", Phase: models.TurnResolved}}
	require.NoError(t, store.SaveTranscript(ctx, saved))

	turns, err := svc.Transcript(ctx)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	require.Equal(t, "old q", turns[0].Question)
}
