package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/suggestions/internal/command"
	"github.com/keshon/suggestions/pkg/cmd"
)

var PermissionNames = map[int64]string{
	discordgo.PermissionKickMembers:        "Kick Members",
	discordgo.PermissionBanMembers:         "Ban Members",
	discordgo.PermissionAdministrator:      "Administrator",
	discordgo.PermissionManageChannels:     "Manage Channels",
	discordgo.PermissionAddReactions:       "Add Reactions",
	discordgo.PermissionViewChannel:        "View Channel",
	discordgo.PermissionSendMessages:       "Send Messages",
	discordgo.PermissionManageMessages:     "Manage Messages",
	discordgo.PermissionEmbedLinks:         "Embed Links",
	discordgo.PermissionAttachFiles:        "Attach Files",
	discordgo.PermissionReadMessageHistory: "Read Message History",
	discordgo.PermissionManageRoles:        "Manage Roles",
}

// PermissionName returns the display name of a single permission bit.
func PermissionName(p int64) string {
	if name, ok := PermissionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("0x%x", p)
}

// WithPermissionLevel enforces the access flags of a command. Owners pass
// every level.
func WithPermissionLevel() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			v, ok := contextOf(inv)
			if !ok {
				return c.Run(ctx, inv)
			}
			opts, ok := optionsOf(c)
			if !ok {
				return c.Run(ctx, inv)
			}
			if denied := deniedLevel(v, opts); denied != "" {
				return v.Reply(fmt.Sprintf("The `%s` command can only be used by %s.", c.Name(), denied))
			}
			return c.Run(ctx, inv)
		})
	}
}

func deniedLevel(v *command.Context, opts command.Options) string {
	cfg := v.Client.Config()
	user := v.UserID()
	if v.Client.IsOwner(user) {
		return ""
	}
	switch {
	case opts.OwnerOnly:
		return "the bot owners"
	case opts.SuperSecretOnly && !cfg.IsSuperSecret(user):
		return "a select few"
	case opts.SupportOnly && !cfg.IsSupport(user):
		return "the support team"
	case opts.StaffOnly && !cfg.IsStaff(user):
		return "bot staff"
	case opts.AdminOnly && !cfg.IsStaff(user) && !v.Client.IsAdmin(v.GuildID(), user):
		return "server administrators"
	}
	return ""
}

// WithBotPermissions checks that the bot holds every permission the
// command declares in the channel it was invoked from.
func WithBotPermissions() cmd.Middleware {
	return func(c cmd.Command) cmd.Command {
		return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
			v, ok := contextOf(inv)
			if !ok || !v.InGuild() {
				return c.Run(ctx, inv)
			}
			opts, ok := optionsOf(c)
			if !ok || len(opts.BotPermissions) == 0 {
				return c.Run(ctx, inv)
			}

			have, err := v.Client.BotPermissions(v.ChannelID())
			if err != nil {
				return fmt.Errorf("failed to get bot permissions: %w", err)
			}
			if have&discordgo.PermissionAdministrator != 0 {
				return c.Run(ctx, inv)
			}

			var missing []string
			for _, p := range opts.BotPermissions {
				if have&p != p {
					missing = append(missing, PermissionName(p))
				}
			}
			if len(missing) > 0 {
				return v.Reply(fmt.Sprintf(
					"I need the following permissions to run this command:\n`%s`",
					strings.Join(missing, "`, `"),
				))
			}
			return c.Run(ctx, inv)
		})
	}
}
