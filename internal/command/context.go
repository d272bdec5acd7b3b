package command

import (
	"errors"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Sender is the part of *discordgo.Session used to answer a message.
type Sender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Context is the payload of a command invoked from a chat message.
// Commands receive it as cmd.Invocation.Data.
type Context struct {
	Sender  Sender
	Message *discordgo.Message
	Client  Client
	Prefix  string
	Args    []string
}

// ErrWrongContext is returned by commands invoked without a *Context.
var ErrWrongContext = errors.New("wrong context type")

func (c *Context) UserID() string {
	if c.Message == nil || c.Message.Author == nil {
		return ""
	}
	return c.Message.Author.ID
}

func (c *Context) Username() string {
	if c.Message == nil || c.Message.Author == nil {
		return ""
	}
	return c.Message.Author.Username
}

func (c *Context) GuildID() string {
	if c.Message == nil {
		return ""
	}
	return c.Message.GuildID
}

func (c *Context) ChannelID() string {
	if c.Message == nil {
		return ""
	}
	return c.Message.ChannelID
}

// InGuild reports whether the message was sent in a guild channel.
func (c *Context) InGuild() bool { return c.GuildID() != "" }

// Reply answers the message with plain text.
func (c *Context) Reply(content string) error {
	return c.send(&discordgo.MessageSend{Content: content})
}

// ReplyEmbed answers the message with an embed.
func (c *Context) ReplyEmbed(embed *discordgo.MessageEmbed) error {
	return c.send(&discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{embed}})
}

func (c *Context) send(data *discordgo.MessageSend) error {
	if c.Message != nil {
		data.Reference = c.Message.Reference()
		data.AllowedMentions = &discordgo.MessageAllowedMentions{}
	}
	_, err := c.Sender.ChannelMessageSendComplex(c.ChannelID(), data)
	return err
}

// Parse splits a message into a command name and its arguments. The
// content must start with one of prefixes; the name is lowercased.
// Prefixes are matched case-insensitively in the order given.
func Parse(content string, prefixes ...string) (name string, args []string, ok bool) {
	for _, p := range prefixes {
		if p == "" || len(content) < len(p) || !strings.EqualFold(content[:len(p)], p) {
			continue
		}
		fields := strings.Fields(content[len(p):])
		if len(fields) == 0 {
			return "", nil, false
		}
		return strings.ToLower(fields[0]), fields[1:], true
	}
	return "", nil, false
}

// MentionPrefixes returns the mention forms that address the bot.
func MentionPrefixes(botID string) []string {
	if botID == "" {
		return nil
	}
	return []string{"<@" + botID + ">", "<@!" + botID + ">"}
}
