package cli

import (
	"context"
	"errors"
	"os"

	"github.com/santanu2402/recallai-cli/internal/common"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

// Start prompts for the access code and, when it verifies, opens a fresh
// 30-minute session and enters the workspace. An invalid code leaves the
// gate open for another try; nothing is persisted.
//
// A watcher still sitting in the post-expiry grace delay is stopped first,
// so it cannot clear the session created here.
func (a *App) Start(ctx context.Context) error {
	a.stopSessionWatcher()

	code, err := getSecret("Enter access code", os.Stdout)
	if err != nil {
		return err
	}

	session, err := a.sessions.RequestSession(ctx, code)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCode) {
			printlnFn("Invalid code. Please try again.")
			return nil
		}
		return err
	}

	printlnFn("Session started. You have 30 minutes.")
	a.enterWorkspace(ctx, *session)
	return nil
}

// Logout ends the session on the user's request: the watcher stops, any
// in-flight request is abandoned, and all persisted state is cleared
// together.
func (a *App) Logout(ctx context.Context) error {
	a.teardown(ctx)

	if err := a.sessions.Clear(ctx); err != nil {
		return err
	}
	printlnFn("Logged out. Session state cleared.")
	return nil
}
