package general

import (
	"context"
	"fmt"
	"time"

	embed "github.com/clinet/discordgo-embed"

	"github.com/keshon/suggestions/internal/command"
	"github.com/keshon/suggestions/pkg/cmd"
)

type PingCommand struct {
	*command.Base
}

func NewPing(client command.Client) *PingCommand {
	return &PingCommand{Base: command.NewBase(client, command.Options{
		Name:           "ping",
		Category:       category,
		Description:    "Check the bot's heartbeat latency.",
		DirectMessages: true,
	})}
}

func (c *PingCommand) Run(_ context.Context, inv *cmd.Invocation) error {
	ctx, ok := inv.Data.(*command.Context)
	if !ok {
		return command.ErrWrongContext
	}
	color, _ := c.Client().Config().Color()
	latency := c.Client().Latency().Round(time.Millisecond)
	return ctx.ReplyEmbed(embed.NewEmbed().
		SetColor(color).
		SetDescription(fmt.Sprintf("🏓 Pong! Heartbeat latency is **%s**.", latency)).
		MessageEmbed)
}
