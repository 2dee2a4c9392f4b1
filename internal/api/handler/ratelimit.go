package handler

import (
	"sync"
	"time"

	"grievgo/backend/internal/config"

	"golang.org/x/time/rate"
)

// userRateLimiter manages one token bucket per user id.
type userRateLimiter struct {
	users map[string]*rateLimiterEntry
	mu    sync.Mutex
	r     rate.Limit
	burst int
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newUserRateLimiter(r rate.Limit, burst int) *userRateLimiter {
	rl := &userRateLimiter{
		users: make(map[string]*rateLimiterEntry),
		r:     r,
		burst: burst,
	}

	go rl.cleanup()

	return rl
}

func (rl *userRateLimiter) cleanup() {
	for {
		time.Sleep(time.Minute)
		rl.mu.Lock()
		for userID, entry := range rl.users {
			if time.Since(entry.lastSeen) > 3*time.Minute {
				delete(rl.users, userID)
			}
		}
		rl.mu.Unlock()
	}
}

// Allow reports whether the user may perform another mutation now.
func (rl *userRateLimiter) Allow(userID string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.users[userID]
	if !exists {
		entry = &rateLimiterEntry{limiter: rate.NewLimiter(rl.r, rl.burst)}
		rl.users[userID] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

// voteLimiter throttles vote mutations per user so rapid clicking degrades
// into 429s instead of backend load.
var voteLimiter = newUserRateLimiter(rate.Limit(float64(config.VoteRatePerMinute)/60.0), config.VoteRateBurst)
