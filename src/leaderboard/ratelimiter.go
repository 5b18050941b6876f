package leaderboard

import (
	"sync"
	"time"
)

// RateLimiter enforces a per-user cooldown between attempts. Expired entries
// are overwritten on the next attempt, so the map stays bounded by the active
// user set.
type RateLimiter struct {
	mu       sync.Mutex
	deadline map[string]time.Time
	cooldown time.Duration
}

func NewRateLimiter(cooldown time.Duration) *RateLimiter {
	return &RateLimiter{
		deadline: make(map[string]time.Time),
		cooldown: cooldown,
	}
}

// Try consumes an attempt for the user. When the cooldown is still running it
// reports false along with the remaining wait.
func (rl *RateLimiter) Try(userID string) (bool, time.Duration) {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if until, ok := rl.deadline[userID]; ok && now.Before(until) {
		return false, until.Sub(now)
	}
	rl.deadline[userID] = now.Add(rl.cooldown)
	return true, 0
}
