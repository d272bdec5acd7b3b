package owner

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/keshon/suggestions/internal/command"
	"github.com/keshon/suggestions/pkg/cmd"
)

type ReloadCommand struct {
	*command.Base
}

func NewReload(client command.Client) *ReloadCommand {
	return &ReloadCommand{Base: command.NewBase(client, command.Options{
		Name:           "reload",
		Category:       category,
		Description:    "Reload the event handlers from disk.",
		OwnerOnly:      true,
		Guarded:        true,
		DirectMessages: true,
		Throttling:     unthrottled(),
	})}
}

func (c *ReloadCommand) Run(_ context.Context, inv *cmd.Invocation) error {
	ctx, ok := inv.Data.(*command.Context)
	if !ok {
		return command.ErrWrongContext
	}

	res, err := c.Client().ReloadEvents()
	if err != nil {
		c.Client().Logger().Warn("event reload failed", zap.Error(err))
		return ctx.Reply(fmt.Sprintf("Failed to reload events: ```%v```", err))
	}

	msg := fmt.Sprintf("Reloaded **%d** event handler(s).", len(res.Loaded))
	if len(res.Removed) > 0 {
		msg += "\nRemoved: `" + strings.Join(res.Removed, "`, `") + "`"
	}
	if len(res.Failed) > 0 {
		msg += fmt.Sprintf("\n**%d** file(s) failed, check the logs.", len(res.Failed))
	}
	return ctx.Reply(msg)
}
