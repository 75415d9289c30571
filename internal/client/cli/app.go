package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/santanu2402/recallai-cli/internal/client/api"
	"github.com/santanu2402/recallai-cli/internal/client/config"
	"github.com/santanu2402/recallai-cli/internal/client/models"
	"github.com/santanu2402/recallai-cli/internal/client/repositories/state"
	"github.com/santanu2402/recallai-cli/internal/client/services"
	"github.com/santanu2402/recallai-cli/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the RecallAI client together and carries the live workspace
// state: the countdown, the session-scoped context, and the retained upload
// form. Exactly one of gate or workspace is in effect at a time; the
// watcher goroutine and the REPL share the countdown under mu.
type App struct {
	config   *config.Config
	log      logging.Logger
	db       *sql.DB
	sessions *services.SessionService
	uploads  *services.UploadService
	chat     *services.ChatService
	reader   *bufio.Reader

	mu            sync.Mutex
	countdown     *services.Countdown
	sessionCtx    context.Context
	sessionCancel context.CancelFunc
	stopWatcher   func()

	// pendingUpload is the retained upload form. It survives a failed
	// submission so the user can retry without re-entering input, and is
	// discarded on success or explicit cancel.
	pendingUpload *models.UploadRequest
}

// NewApp opens the local state database and wires the services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := state.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init state database: %w", err)
	}

	store := services.NewStore(state.NewSQLiteRepository(db))
	backend := api.NewHTTPClient(c.ServerBaseURL, api.WithTimeout(c.RequestTimeout))

	return &App{
		config:   c,
		log:      log,
		db:       db,
		sessions: services.NewSessionService(store, log),
		uploads:  services.NewUploadService(store, backend, log),
		chat:     services.NewChatService(store, backend, log),
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

// Run resumes a persisted session if one is still active, then hands control
// to the REPL. It returns when the user exits.
func (a *App) Run(ctx context.Context) {
	a.resume(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)

	a.teardown(ctx)
}

// Close releases the state database.
func (a *App) Close() error {
	return a.db.Close()
}

// resume re-enters the workspace when a persisted session is still active,
// so a restart of the client does not cost the user their session. An
// expired leftover record is discarded.
func (a *App) resume(ctx context.Context) {
	session, err := a.sessions.Load(ctx)
	if err != nil {
		return
	}
	if remaining, _ := a.sessions.Remaining(ctx); remaining == 0 {
		printlnFn("Your previous session has expired.")
		if err := a.sessions.Clear(ctx); err != nil {
			a.log.Error(ctx, "failed to clear expired session", "error", err)
		}
		return
	}
	printlnFn("Resuming your session.")
	a.enterWorkspace(ctx, *session)
}

// enterWorkspace initializes the countdown and starts the watcher. Any
// watcher left over from a previous session is stopped first, so exactly one
// watcher ever ticks the current countdown. The session-scoped context
// bounds every backend call made from the workspace; cancelling it abandons
// in-flight requests on teardown.
func (a *App) enterWorkspace(ctx context.Context, session models.Session) {
	a.stopSessionWatcher()

	a.mu.Lock()
	if a.sessionCancel != nil {
		a.sessionCancel()
	}
	cd := services.NewCountdown(session, timeNow())
	a.countdown = cd
	a.sessionCtx, a.sessionCancel = context.WithCancel(ctx)
	a.mu.Unlock()

	a.chat.Reset()
	a.startSessionWatcher(ctx, cd)
}

// endSession tears the workspace down: in-flight requests are abandoned and
// the countdown is dropped. Persisted state is the caller's concern.
func (a *App) endSession() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.endSessionLocked()
}

func (a *App) endSessionLocked() {
	if a.sessionCancel != nil {
		a.sessionCancel()
	}
	a.countdown = nil
	a.sessionCtx = nil
	a.sessionCancel = nil
	a.pendingUpload = nil
}

// stopSessionWatcher stops the watcher goroutine and waits until it is gone.
func (a *App) stopSessionWatcher() {
	a.mu.Lock()
	stop := a.stopWatcher
	a.stopWatcher = nil
	a.mu.Unlock()
	if stop != nil {
		stop()
	}
}

func (a *App) teardown(ctx context.Context) {
	a.stopSessionWatcher()
	a.endSession()
}

// inSession reports whether the workspace is live. It is the guard every
// workspace command runs behind; after expiry it flips to false even though
// the REPL is still looping.
func (a *App) inSession() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.countdown != nil && !a.countdown.Expired()
}

// workspaceCtx returns the session-scoped context, falling back to the
// background context when no session is live (commands are gated before
// this matters).
func (a *App) workspaceCtx() context.Context {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.sessionCtx != nil {
		return a.sessionCtx
	}
	return context.Background()
}

// pending returns the retained upload form. The field is shared with the
// watcher goroutine, which discards it on expiry, so access goes through mu.
func (a *App) pending() *models.UploadRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pendingUpload
}

func (a *App) setPending(req *models.UploadRequest) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pendingUpload = req
}

// status renders the prompt decoration: remaining time inside a session,
// nothing at the gate.
func (a *App) status() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.countdown == nil || a.countdown.Expired() {
		return ""
	}
	return "(" + formatClock(a.countdown.Remaining()) + ") "
}

// formatClock renders seconds as MM:SS.
func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
