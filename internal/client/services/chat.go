package services

import (
	"context"
	"strings"
	"time"

	"github.com/santanu2402/recallai-cli/internal/client/api"
	"github.com/santanu2402/recallai-cli/internal/client/models"
	"github.com/santanu2402/recallai-cli/internal/common"
	"github.com/santanu2402/recallai-cli/internal/logging"
)

// failedAnswer is shown in place of an answer when the backend call errors.
const failedAnswer = "Sorry, I encountered an error processing your request. Please try again."

// ChatService runs the chat flow for the active upload. The in-memory
// transcript is the visible one; successful turns are persisted, failed
// turns stay visible for the session but are not written back.
type ChatService struct {
	store   *Store
	backend api.Backend
	log     logging.Logger
	now     func() time.Time

	loaded   bool
	turns    []models.ChatTurn
	inFlight bool
}

// NewChatService constructs a chat service.
func NewChatService(store *Store, backend api.Backend, log logging.Logger) *ChatService {
	return &ChatService{store: store, backend: backend, log: log, now: time.Now}
}

// Ask submits a question about the active upload. The turn is appended
// optimistically in the pending phase, then resolved in place with the
// backend's answer or marked failed with a fallback message. Asks are
// serialized; a second call while one is pending is rejected.
func (c *ChatService) Ask(ctx context.Context, question string) (*models.ChatTurn, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, common.ErrEmptyQuestion
	}

	uploadNo, err := c.store.ActiveUpload(ctx)
	if err != nil {
		return nil, err
	}
	if uploadNo == "" {
		return nil, common.ErrNoActiveUpload
	}

	if c.inFlight {
		return nil, common.ErrAskInFlight
	}
	c.inFlight = true
	defer func() { c.inFlight = false }()

	if err := c.load(ctx); err != nil {
		return nil, err
	}

	c.turns = append(c.turns, models.ChatTurn{
		Question:  question,
		Timestamp: c.now(),
		Phase:     models.TurnPending,
	})
	turn := &c.turns[len(c.turns)-1]

	result, err := c.backend.Ask(ctx, question, uploadNo)
	if ctxErr := ctx.Err(); ctxErr != nil {
		// The workspace was torn down while the request was in flight;
		// drop the unresolved turn and leave the cleared state alone.
		c.turns = c.turns[:len(c.turns)-1]
		return nil, ctxErr
	}
	if err != nil {
		turn.Answer = failedAnswer
		turn.Phase = models.TurnFailed
		c.log.Warn(ctx, "ask failed", "upload_no", uploadNo, "error", err)
		return turn, nil
	}

	turn.Answer = result.Answer
	turn.ClarifiedQuestion = result.ClarifiedQuestion
	turn.Phase = models.TurnResolved

	if err := c.store.SaveTranscript(ctx, resolvedOnly(c.turns)); err != nil {
		return nil, err
	}
	return turn, nil
}

// resolvedOnly filters the transcript down to the turns that completed with
// an answer. Failed turns stay visible in memory but never persist.
func resolvedOnly(turns []models.ChatTurn) []models.ChatTurn {
	out := make([]models.ChatTurn, 0, len(turns))
	for _, t := range turns {
		if t.Phase == models.TurnResolved {
			out = append(out, t)
		}
	}
	return out
}

// Transcript returns a copy of the visible transcript.
func (c *ChatService) Transcript(ctx context.Context) ([]models.ChatTurn, error) {
	if err := c.load(ctx); err != nil {
		return nil, err
	}
	out := make([]models.ChatTurn, len(c.turns))
	copy(out, c.turns)
	return out, nil
}

// Reset discards the visible transcript. Called when the active upload
// changes; the persisted transcript is already reset by the upload switch.
func (c *ChatService) Reset() {
	c.loaded = true
	c.turns = nil
}

// load pulls the persisted transcript into memory once, so a reloaded
// client resumes the conversation it last persisted.
func (c *ChatService) load(ctx context.Context) error {
	if c.loaded {
		return nil
	}
	turns, err := c.store.Transcript(ctx)
	if err != nil {
		return err
	}
	c.turns = turns
	c.loaded = true
	return nil
}
