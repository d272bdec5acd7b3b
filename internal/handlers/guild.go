package handlers

import (
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/keshon/suggestions/internal/command"
	"github.com/keshon/suggestions/pkg/events"
)

func init() {
	Factories.Register("guildCreate", func(client command.Client, _ string, _ events.Definition) (events.Handler, error) {
		return events.HandlerFunc(func(args ...any) {
			g, ok := arg[*discordgo.GuildCreate](args, 1)
			if !ok || g.Guild == nil {
				client.Logger().Warn(unexpected("guildCreate", args))
				return
			}
			client.Logger().Info("joined guild",
				zap.String("guild_id", g.ID),
				zap.String("guild", g.Name),
				zap.Int("members", g.MemberCount))
		}), nil
	})

	Factories.Register("guildDelete", func(client command.Client, _ string, _ events.Definition) (events.Handler, error) {
		return events.HandlerFunc(func(args ...any) {
			g, ok := arg[*discordgo.GuildDelete](args, 1)
			if !ok || g.Guild == nil {
				client.Logger().Warn(unexpected("guildDelete", args))
				return
			}
			if g.Unavailable {
				client.Logger().Warn("guild became unavailable", zap.String("guild_id", g.ID))
				return
			}
			fields := []zap.Field{zap.String("guild_id", g.ID)}
			if g.BeforeDelete != nil {
				fields = append(fields, zap.String("guild", g.BeforeDelete.Name))
			}
			client.Logger().Info("left guild", fields...)
		}), nil
	})
}
