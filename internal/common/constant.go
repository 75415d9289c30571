// Package common contains product constants and sentinel errors shared
// across RecallAI client components.
package common

import "time"

// AccessCode is the shared passphrase gating session creation. Comparison is
// case-insensitive and whitespace-trimmed. This is a placeholder authorization
// mechanism, not a security boundary.
const AccessCode = "santanu"

const (
	// SessionDuration is the fixed length of a granted session.
	SessionDuration = 30 * time.Minute

	// LogoutGraceDelay is how long the session-ended notice stays on screen
	// before persisted state is cleared and control returns to the gate.
	LogoutGraceDelay = 3 * time.Second

	// MaxUploads caps the number of uploads registered per session.
	MaxUploads = 3

	// MaxFileSize caps document uploads, in bytes (5 MiB). Oversized files
	// are rejected locally, before any backend call.
	MaxFileSize = 5 * 1024 * 1024
)
