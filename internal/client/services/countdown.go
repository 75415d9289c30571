package services

import (
	"time"

	"github.com/santanu2402/recallai-cli/internal/client/models"
)

// Countdown is the workspace timer's state machine: Active(remaining) until
// remaining reaches exactly zero, then Expired. Remaining never goes
// negative. Countdown is not safe for concurrent use; the owner serializes
// access.
type Countdown struct {
	remaining int
	expired   bool
}

// NewCountdown derives the initial timer state from a persisted session.
// A session whose time is already up starts out expired.
func NewCountdown(session models.Session, now time.Time) *Countdown {
	remaining := session.Remaining(now)
	return &Countdown{remaining: remaining, expired: remaining == 0}
}

// Tick advances the timer by one second. Once expired, further ticks are
// no-ops.
func (c *Countdown) Tick() {
	if c.expired {
		return
	}
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 {
		c.expired = true
	}
}

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int {
	return c.remaining
}

// Expired reports whether the timer has run out.
func (c *Countdown) Expired() bool {
	return c.expired
}
