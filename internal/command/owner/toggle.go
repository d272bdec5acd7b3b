package owner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/keshon/suggestions/internal/command"
	"github.com/keshon/suggestions/pkg/cmd"
)

type ToggleCommand struct {
	*command.Base
}

func NewToggle(client command.Client) *ToggleCommand {
	return &ToggleCommand{Base: command.NewBase(client, command.Options{
		Name:           "toggle",
		Category:       category,
		Description:    "Enable or disable a command.",
		Usage:          "toggle <command> [on|off]",
		OwnerOnly:      true,
		Guarded:        true,
		DirectMessages: true,
		Throttling:     unthrottled(),
	})}
}

func (c *ToggleCommand) Run(_ context.Context, inv *cmd.Invocation) error {
	ctx, ok := inv.Data.(*command.Context)
	if !ok {
		return command.ErrWrongContext
	}
	if len(ctx.Args) == 0 {
		return ctx.Reply(fmt.Sprintf("Usage: `%s%s`", ctx.Prefix, c.Usage()))
	}

	reg := c.Client().Commands()
	target, ok := reg.Resolve(ctx.Args[0])
	if !ok {
		return ctx.Reply(fmt.Sprintf("No command named `%s` was found.", ctx.Args[0]))
	}

	enable := !reg.Enabled(target.Name())
	if len(ctx.Args) > 1 {
		switch strings.ToLower(ctx.Args[1]) {
		case "on", "enable":
			enable = true
		case "off", "disable":
			enable = false
		default:
			return ctx.Reply(fmt.Sprintf("Unknown state `%s`, use `on` or `off`.", ctx.Args[1]))
		}
	}

	if err := reg.SetEnabled(target.Name(), enable); err != nil {
		if errors.Is(err, cmd.ErrGuarded) {
			return ctx.Reply(fmt.Sprintf("The `%s` command is guarded and can't be disabled.", target.Name()))
		}
		return err
	}

	state := "disabled"
	if enable {
		state = "enabled"
	}
	return ctx.Reply(fmt.Sprintf("The `%s` command is now **%s**.", target.Name(), state))
}
