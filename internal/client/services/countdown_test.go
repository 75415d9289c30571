package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/santanu2402/recallai-cli/internal/client/models"
)

func newTestSession(seconds int) (models.Session, time.Time) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := models.Session{StartTime: start, EndTime: start.Add(time.Duration(seconds) * time.Second)}
	return s, start
}

func TestCountdown_ReachesZeroThenExpires(t *testing.T) {
	session, now := newTestSession(3)
	c := NewCountdown(session, now)

	require.False(t, c.Expired())
	require.Equal(t, 3, c.Remaining())

	c.Tick()
	require.Equal(t, 2, c.Remaining())
	require.False(t, c.Expired())

	c.Tick()
	require.Equal(t, 1, c.Remaining())
	require.False(t, c.Expired())

	c.Tick()
	require.Equal(t, 0, c.Remaining(), "remaining reaches exactly zero")
	require.True(t, c.Expired())
}

func TestCountdown_MonotonicNonIncreasing(t *testing.T) {
	session, now := newTestSession(10)
	c := NewCountdown(session, now)

	prev := c.Remaining()
	for i := 0; i < 20; i++ {
		c.Tick()
		cur := c.Remaining()
		if cur > prev {
			t.Fatalf("remaining increased: %d -> %d", prev, cur)
		}
		if cur < 0 {
			t.Fatalf("remaining went negative: %d", cur)
		}
		prev = cur
	}
	require.True(t, c.Expired())
	require.Equal(t, 0, c.Remaining())
}

func TestCountdown_AlreadyExpiredSession(t *testing.T) {
	session, now := newTestSession(5)
	c := NewCountdown(session, now.Add(time.Hour))

	require.True(t, c.Expired())
	require.Equal(t, 0, c.Remaining())

	c.Tick()
	require.Equal(t, 0, c.Remaining())
}

func TestCountdown_PartialSecondsFloored(t *testing.T) {
	session, now := newTestSession(10)
	c := NewCountdown(session, now.Add(2500*time.Millisecond))
	require.Equal(t, 7, c.Remaining())
}
