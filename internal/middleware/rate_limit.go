package middleware

import (
	"context"

	"github.com/keshon/suggestions/pkg/cmd"
	"github.com/keshon/suggestions/pkg/throttle"
)

// WithGuildRateLimit drops commands from guilds that exceed the shared
// guild rate. Dropped invocations get no reply.
func WithGuildRateLimit(limiter *throttle.GuildLimiter) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			v, ok := contextOf(inv)
			if !ok || limiter.Allow(v.GuildID()) {
				return c.Run(ctx, inv)
			}
			return nil
		})
	}
}
