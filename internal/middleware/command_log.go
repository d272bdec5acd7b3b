package middleware

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/keshon/suggestions/pkg/cmd"
)

// WithCommandLogger logs each invocation with its outcome and duration.
func WithCommandLogger(log *zap.Logger) cmd.Middleware {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			start := time.Now()
			err := c.Run(ctx, inv)

			fields := []zap.Field{
				zap.String("command", c.Name()),
				zap.Duration("took", time.Since(start)),
			}
			if v, ok := contextOf(inv); ok {
				fields = append(fields,
					zap.String("user_id", v.UserID()),
					zap.String("guild_id", v.GuildID()),
					zap.String("channel_id", v.ChannelID()),
				)
			}
			if err != nil {
				log.Warn("command failed", append(fields, zap.Error(err))...)
				return err
			}
			log.Debug("command ran", fields...)
			return nil
		})
	}
}
