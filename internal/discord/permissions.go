package discord

import (
	"errors"

	"github.com/bwmarrin/discordgo"
)

// IsAdmin reports whether a user owns the guild or holds a role with the
// Administrator permission. Staff pass too.
func (b *Bot) IsAdmin(guildID, userID string) bool {
	if guildID == "" || userID == "" {
		return false
	}
	if b.cfg.IsStaff(userID) {
		return true
	}

	guild, err := b.dg.State.Guild(guildID)
	if err != nil || guild == nil {
		guild, err = b.dg.Guild(guildID)
		if err != nil || guild == nil {
			return false
		}
	}
	if userID == guild.OwnerID {
		return true
	}

	member, err := b.dg.State.Member(guildID, userID)
	if err != nil || member == nil {
		member, err = b.dg.GuildMember(guildID, userID)
		if err != nil || member == nil {
			return false
		}
	}
	for _, roleID := range member.Roles {
		if role, _ := b.dg.State.Role(guild.ID, roleID); role != nil {
			if role.Permissions&discordgo.PermissionAdministrator != 0 {
				return true
			}
		}
	}
	return false
}

var errNotReady = errors.New("session is not ready")

// BotPermissions returns the bot's permissions in a channel.
func (b *Bot) BotPermissions(channelID string) (int64, error) {
	me := b.BotUser()
	if me == nil {
		return 0, errNotReady
	}
	return b.dg.UserChannelPermissions(me.ID, channelID)
}
