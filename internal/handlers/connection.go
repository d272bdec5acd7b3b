package handlers

import (
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/keshon/suggestions/internal/command"
	"github.com/keshon/suggestions/pkg/events"
)

func init() {
	Factories.Register("rateLimit", newRateLimit)
	Factories.Register("disconnect", func(client command.Client, _ string, _ events.Definition) (events.Handler, error) {
		return events.HandlerFunc(func(...any) {
			client.Logger().Warn("disconnected from gateway")
		}), nil
	})
	Factories.Register("resumed", func(client command.Client, _ string, _ events.Definition) (events.Handler, error) {
		return events.HandlerFunc(func(...any) {
			client.Logger().Info("gateway session resumed")
		}), nil
	})
	Factories.Register("debug", func(client command.Client, _ string, _ events.Definition) (events.Handler, error) {
		return events.HandlerFunc(func(args ...any) {
			level, _ := arg[int](args, 0)
			msg, _ := arg[string](args, 1)
			client.Logger().Debug("discordgo", zap.Int("level", level), zap.String("message", msg))
		}), nil
	})
}

func newRateLimit(client command.Client, _ string, _ events.Definition) (events.Handler, error) {
	return events.HandlerFunc(func(args ...any) {
		rl, ok := arg[*discordgo.RateLimit](args, 1)
		if !ok {
			client.Logger().Warn(unexpected("rateLimit", args))
			return
		}
		fields := []zap.Field{zap.String("url", rl.URL)}
		if rl.TooManyRequests != nil {
			fields = append(fields,
				zap.String("bucket", rl.Bucket),
				zap.Duration("retry_after", rl.RetryAfter),
				zap.String("message", rl.Message))
		}
		client.Logger().Warn("rate limited", fields...)
	}), nil
}
