package cli

import (
	"context"
	"errors"
	"os"

	"github.com/santanu2402/recallai-cli/internal/client/models"
	"github.com/santanu2402/recallai-cli/internal/common"
)

// Ask submits a question about the active upload and prints the answer. The
// question can be given inline ("ask what is X") or via a follow-up prompt.
func (a *App) Ask(ctx context.Context, question string) error {
	if question == "" {
		var err error
		question, err = getSimpleText(a.reader, "Your question", os.Stdout)
		if err != nil {
			return err
		}
	}

	turn, err := a.chat.Ask(a.workspaceCtx(), question)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrEmptyQuestion):
			printlnFn("Type a question first.")
		case errors.Is(err, common.ErrNoActiveUpload):
			printlnFn("Select an upload first ('uploads', then 'use <number>').")
		case errors.Is(err, common.ErrAskInFlight):
			printlnFn("Still waiting for the previous answer.")
		default:
			return err
		}
		return nil
	}

	if turn.Phase == models.TurnFailed {
		printlnFn(turn.Answer)
		return nil
	}
	if turn.ClarifiedDiffers() {
		printlnFn("(interpreted as: " + turn.ClarifiedQuestion + ")")
	}
	printlnFn(turn.Answer)
	return nil
}

// Time prints the remaining session time as MM:SS.
func (a *App) Time(ctx context.Context) error {
	remaining, err := a.sessions.Remaining(a.workspaceCtx())
	if err != nil {
		return err
	}
	printlnFn("Time remaining:", formatClock(remaining))
	return nil
}
