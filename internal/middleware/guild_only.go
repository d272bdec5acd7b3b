package middleware

import (
	"context"

	"github.com/keshon/suggestions/pkg/cmd"
)

// WithGuildOnly refuses commands sent in direct messages unless the command
// allows them.
func WithGuildOnly() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			v, ok := contextOf(inv)
			if !ok || v.InGuild() {
				return c.Run(ctx, inv)
			}
			if opts, ok := optionsOf(c); ok && opts.DirectMessages {
				return c.Run(ctx, inv)
			}
			return v.Reply("This command can only be used in a server.")
		})
	}
}
