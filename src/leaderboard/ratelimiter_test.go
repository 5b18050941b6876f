package leaderboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateLimiterBlocksWithinCooldown(t *testing.T) {
	rl := NewRateLimiter(time.Hour)

	ok, wait := rl.Try("100")
	require.True(t, ok)
	require.Zero(t, wait)

	ok, wait = rl.Try("100")
	require.False(t, ok)
	require.Positive(t, wait)
	require.LessOrEqual(t, wait, time.Hour)

	// Other users are tracked independently.
	ok, _ = rl.Try("200")
	require.True(t, ok)
}

func TestRateLimiterRecoversAfterCooldown(t *testing.T) {
	rl := NewRateLimiter(10 * time.Millisecond)

	ok, _ := rl.Try("100")
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	ok, _ = rl.Try("100")
	require.True(t, ok)
}
