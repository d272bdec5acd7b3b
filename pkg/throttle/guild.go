package throttle

import (
	"sync"

	"golang.org/x/time/rate"
)

// GuildLimiter is a token bucket per guild, shared by every command. It
// caps how fast a whole guild can drive the bot, independently of the
// per-user windows kept by Tracker.
type GuildLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

// NewGuildLimiter creates a limiter allowing limit events per second per
// guild with the given burst. A non-positive limit disables it.
func NewGuildLimiter(limit rate.Limit, burst int) *GuildLimiter {
	if burst < 1 {
		burst = 1
	}
	return &GuildLimiter{
		limit:    limit,
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether guildID may run a command now and consumes a
// token if so. Direct messages (empty guildID) are never limited.
func (g *GuildLimiter) Allow(guildID string) bool {
	if guildID == "" || g.limit <= 0 {
		return true
	}
	return g.limiter(guildID).Allow()
}

// Forget drops the bucket of a guild, e.g. when the bot leaves it.
func (g *GuildLimiter) Forget(guildID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.limiters, guildID)
}

// Len returns the number of guilds with a bucket.
func (g *GuildLimiter) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.limiters)
}

func (g *GuildLimiter) limiter(guildID string) *rate.Limiter {
	g.mu.Lock()
	defer g.mu.Unlock()
	l, ok := g.limiters[guildID]
	if !ok {
		l = rate.NewLimiter(g.limit, g.burst)
		g.limiters[guildID] = l
	}
	return l
}
