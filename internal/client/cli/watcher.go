package cli

import (
	"context"
	"time"

	"github.com/santanu2402/recallai-cli/internal/client/services"
	"github.com/santanu2402/recallai-cli/internal/common"
)

// timeNow is a test seam for the clock.
var timeNow = time.Now

// tickInterval is how often the countdown advances. A var so tests can
// speed the watcher up.
var tickInterval = time.Second

// logoutGraceDelay is how long the session-ended notice stays on screen
// before state is cleared. A var so tests can shorten the wait.
var logoutGraceDelay = common.LogoutGraceDelay

// startSessionWatcher runs the countdown for the live session. It ticks
// once per interval and, when the countdown expires, shows the
// session-ended notice, waits out the grace delay, clears all persisted
// state, and drops the workspace so the REPL falls back to the gate.
//
// The watcher is bound to the countdown it was started with: should a newer
// session replace it, the watcher retires without touching anything. Logout
// and exit stop it through the returned stop function, which does not
// return until the goroutine is gone, so ticks never leak across sessions.
func (a *App) startSessionWatcher(ctx context.Context, cd *services.Countdown) {
	watchCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	a.mu.Lock()
	a.stopWatcher = func() {
		cancel()
		<-done
	}
	a.mu.Unlock()

	go func() {
		defer close(done)

		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()

		for {
			select {
			case <-watchCtx.Done():
				return
			case <-ticker.C:
				a.mu.Lock()
				if a.countdown != cd {
					a.mu.Unlock()
					return
				}
				cd.Tick()
				expired := cd.Expired()
				a.mu.Unlock()

				if expired {
					a.handleExpiry(watchCtx, cd)
					return
				}
			}
		}
	}()
}

// handleExpiry runs the end-of-session transition: notice, grace delay,
// wholesale state clear, back to the gate. If a new session replaced the
// expired countdown during the grace delay, the transition is abandoned and
// the successor session is left intact.
func (a *App) handleExpiry(ctx context.Context, cd *services.Countdown) {
	printlnFn("\nSession complete! Your 30 minutes are up.")

	select {
	case <-time.After(logoutGraceDelay):
	case <-ctx.Done():
		return
	}

	a.mu.Lock()
	if a.countdown != cd {
		a.mu.Unlock()
		return
	}
	a.endSessionLocked()
	a.mu.Unlock()

	// The session context is already cancelled; clearing uses a fresh one.
	if err := a.sessions.Clear(context.Background()); err != nil {
		a.log.Error(ctx, "failed to clear session state on expiry", "error", err)
	}

	printlnFn("Returning to the access gate. Type 'start' to begin a new session.")
}
