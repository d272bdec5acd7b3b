package middleware

import (
	"context"
	"fmt"

	"github.com/keshon/suggestions/pkg/cmd"
)

// WithEnabled stops commands that were switched off in reg.
func WithEnabled(reg *cmd.Registry) cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			if reg.Enabled(c.Name()) {
				return c.Run(ctx, inv)
			}
			if v, ok := contextOf(inv); ok {
				return v.Reply(fmt.Sprintf("The `%s` command is currently disabled.", c.Name()))
			}
			return nil
		})
	}
}
