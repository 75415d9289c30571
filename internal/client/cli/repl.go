package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with
// a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	inSession() bool
	Start(ctx context.Context) error
	Upload(ctx context.Context) error
	CancelUpload(ctx context.Context) error
	Uploads(ctx context.Context) error
	Use(ctx context.Context, arg string) error
	Ask(ctx context.Context, question string) error
	Time(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the RecallAI client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Outside a session only 'start' is available; inside a session the
// workspace commands are:
//
//	upload          register a document or video link (up to 3)
//	cancel          discard a retained upload form
//	uploads         list this session's uploads, newest first
//	use <number>    select the upload to chat with
//	ask <question>  ask about the active upload
//	time            show remaining session time
//	logout          end the session and clear local state
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	printlnFn("RecallAI: upload, ask, discover (type 'help' for commands)")

	for {
		fmt.Printf("recallai %s> ", statusFn())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		if !a.inSession() {
			switch cmd {
			case "help":
				printlnFn("Available commands: start, exit")
			case "start":
				a.Start(ctx)
			case "exit", "quit":
				printlnFn("Bye!")
				return
			case "upload", "cancel", "uploads", "use", "ask", "time", "logout":
				printlnFn("No active session. Type 'start' to begin.")
			default:
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "help":
			printlnFn("Available commands: upload, cancel, uploads, use <number>, ask <question>, time, logout, exit")
		case "start":
			printlnFn("A session is already running. Type 'logout' to end it first.")
		case "upload":
			a.Upload(ctx)
		case "cancel":
			a.CancelUpload(ctx)
		case "uploads", "list":
			a.Uploads(ctx)
		case "use":
			if len(args) == 0 {
				printlnFn("Usage: use <number>")
				continue
			}
			a.Use(ctx, args[0])
		case "ask":
			a.Ask(ctx, strings.Join(args, " "))
		case "time":
			a.Time(ctx)
		case "logout":
			a.Logout(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
