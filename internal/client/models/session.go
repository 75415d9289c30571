// Package models defines the data types the RecallAI client persists and
// passes between its services: the time-boxed session, registered uploads,
// and chat turns.
package models

import "time"

// Session is a time-boxed authorization window granting access to the
// workspace. EndTime is always StartTime plus the fixed session duration.
type Session struct {
	StartTime time.Time
	EndTime   time.Time
}

// Active reports whether the session is still valid at the given moment.
// A session is active iff now is strictly before EndTime.
func (s Session) Active(now time.Time) bool {
	return now.Before(s.EndTime)
}

// Remaining returns the whole seconds left until expiry, clamped at zero.
func (s Session) Remaining(now time.Time) int {
	if !s.Active(now) {
		return 0
	}
	return int(s.EndTime.Sub(now) / time.Second)
}
