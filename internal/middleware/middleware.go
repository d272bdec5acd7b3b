// Package middleware holds the cmd.Middleware chain every chat command runs
// through: enablement, guild scope, access levels, bot permissions,
// throttling, rate limiting and logging.
package middleware

import (
	"github.com/keshon/suggestions/internal/command"
	"github.com/keshon/suggestions/pkg/cmd"
)

// contextOf returns the chat context of an invocation. Invocations from
// other adapters pass through every middleware untouched.
func contextOf(inv *cmd.Invocation) (*command.Context, bool) {
	ctx, ok := inv.Data.(*command.Context)
	return ctx, ok && ctx != nil
}

// optionsOf returns the options of the command underneath any wrappers.
func optionsOf(c cmd.Command) (command.Options, bool) {
	d, ok := cmd.Root(c).(command.Described)
	if !ok {
		return command.Options{}, false
	}
	return d.Options(), true
}

// Chain is the default middleware order, outermost first.
func Chain(reg *cmd.Registry, deps Deps) []cmd.Middleware {
	mws := []cmd.Middleware{
		WithCommandLogger(deps.Logger),
		WithEnabled(reg),
		WithGuildOnly(),
		WithPermissionLevel(),
		WithBotPermissions(),
	}
	if deps.GuildLimiter != nil {
		mws = append(mws, WithGuildRateLimit(deps.GuildLimiter))
	}
	return append(mws, WithThrottle())
}
