package middleware

import (
	"context"
	"fmt"
	"math"

	"github.com/keshon/suggestions/internal/command"
	"github.com/keshon/suggestions/pkg/cmd"
)

// WithThrottle counts the invocation against the command's per-user
// tracker and answers with the remaining wait once the user is over the
// limit.
func WithThrottle() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			v, ok := contextOf(inv)
			if !ok {
				return c.Run(ctx, inv)
			}
			t, ok := cmd.Root(c).(command.Throttled)
			if !ok {
				return c.Run(ctx, inv)
			}
			d := t.Throttles().Allow(v.UserID())
			if d.Allowed {
				return c.Run(ctx, inv)
			}
			secs := math.Max(1, math.Ceil(d.RetryAfter.Seconds()))
			return v.Reply(fmt.Sprintf(
				"You may not use the `%s` command again for another %.0f seconds.", c.Name(), secs,
			))
		})
	}
}
