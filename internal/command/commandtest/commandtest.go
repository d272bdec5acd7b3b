// Package commandtest provides in-memory fakes for testing commands and
// middleware without a Discord connection.
package commandtest

import (
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/keshon/suggestions/internal/command"
	"github.com/keshon/suggestions/internal/config"
	"github.com/keshon/suggestions/pkg/cmd"
	"github.com/keshon/suggestions/pkg/events"
)

// Client is a fake command.Client. Zero fields fall back to sensible
// defaults; use NewClient to get one ready to use.
type Client struct {
	Cfg      *config.Config
	Log      *zap.Logger
	Registry *cmd.Registry
	User     *discordgo.User
	Ping     time.Duration

	// Admins holds "guildID/userID" pairs.
	Admins map[string]bool
	// Perms is the bot permission mask returned for every channel.
	Perms    int64
	PermsErr error

	Reload  func() (events.Result, error)
	Reloads int
}

var _ command.Client = (*Client)(nil)

// AllPermissions is the mask a fully permitted bot reports.
const AllPermissions int64 = discordgo.PermissionViewChannel |
	discordgo.PermissionSendMessages |
	discordgo.PermissionEmbedLinks |
	discordgo.PermissionAddReactions |
	discordgo.PermissionReadMessageHistory |
	discordgo.PermissionManageMessages

// NewClient returns a fake client with the default configuration and
// the given owners.
func NewClient(owners ...string) *Client {
	cfg := config.Defaults()
	cfg.Owners = owners
	return &Client{
		Cfg:      cfg,
		Log:      zap.NewNop(),
		Registry: cmd.NewRegistry(),
		User:     &discordgo.User{ID: "100", Username: "Suggestions"},
		Ping:     42 * time.Millisecond,
		Admins:   map[string]bool{},
		Perms:    AllPermissions,
	}
}

func (c *Client) Config() *config.Config     { return c.Cfg }
func (c *Client) Logger() *zap.Logger        { return c.Log }
func (c *Client) Commands() *cmd.Registry    { return c.Registry }
func (c *Client) IsOwner(userID string) bool { return c.Cfg.IsOwner(userID) }
func (c *Client) BotUser() *discordgo.User   { return c.User }
func (c *Client) Latency() time.Duration     { return c.Ping }

func (c *Client) IsAdmin(guildID, userID string) bool {
	return c.Admins[guildID+"/"+userID]
}

func (c *Client) BotPermissions(string) (int64, error) {
	return c.Perms, c.PermsErr
}

func (c *Client) ReloadEvents() (events.Result, error) {
	c.Reloads++
	if c.Reload == nil {
		return events.Result{}, nil
	}
	return c.Reload()
}

// Sender records every message sent through it.
type Sender struct {
	mu   sync.Mutex
	Sent []Sent
	Err  error
}

// Sent is one recorded message.
type Sent struct {
	ChannelID string
	Data      *discordgo.MessageSend
}

func (s *Sender) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.Sent = append(s.Sent, Sent{ChannelID: channelID, Data: data})
	return &discordgo.Message{ChannelID: channelID, Content: data.Content}, nil
}

// Last returns the most recent message, or nil.
func (s *Sender) Last() *discordgo.MessageSend {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Sent) == 0 {
		return nil
	}
	return s.Sent[len(s.Sent)-1].Data
}

// Count returns how many messages were sent.
func (s *Sender) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Sent)
}

// Message builds a guild message from userID. Pass an empty guildID for
// a direct message.
func Message(guildID, userID, content string) *discordgo.Message {
	return &discordgo.Message{
		ID:        "m-" + userID,
		ChannelID: "c-" + guildID,
		GuildID:   guildID,
		Content:   content,
		Author:    &discordgo.User{ID: userID, Username: "user" + userID},
	}
}

// Invocation builds a command invocation carrying a *command.Context.
func Invocation(client command.Client, sender command.Sender, msg *discordgo.Message, name string, args ...string) *cmd.Invocation {
	return &cmd.Invocation{
		Name: name,
		Args: args,
		Data: &command.Context{
			Sender:  sender,
			Message: msg,
			Client:  client,
			Prefix:  client.Config().Prefix,
			Args:    args,
		},
	}
}
