package command_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keshon/suggestions/internal/command"
	"github.com/keshon/suggestions/internal/command/commandtest"
	"github.com/keshon/suggestions/pkg/cmd"
	"github.com/keshon/suggestions/pkg/throttle"
)

type echo struct {
	*command.Base
}

func (e *echo) Run(_ context.Context, inv *cmd.Invocation) error {
	ctx, ok := inv.Data.(*command.Context)
	if !ok {
		return command.ErrWrongContext
	}
	return ctx.Reply("echo")
}

func newEcho(client command.Client, opts command.Options) *echo {
	return &echo{Base: command.NewBase(client, opts)}
}

func TestNewBaseUsesConfiguredPolicy(t *testing.T) {
	client := commandtest.NewClient()
	client.Cfg.ThrottleUsages = 3
	client.Cfg.ThrottleDuration = time.Minute

	c := newEcho(client, command.Options{Name: "echo"})
	assert.Equal(t, throttle.Policy{Usages: 3, Duration: time.Minute}, c.Throttles().Policy())
}

func TestNewBaseOverridesPolicy(t *testing.T) {
	client := commandtest.NewClient()

	custom := throttle.Policy{Usages: 1, Duration: time.Hour}
	c := newEcho(client, command.Options{Name: "echo", Throttling: &custom})
	assert.Equal(t, custom, c.Throttles().Policy())

	off := throttle.Disabled()
	c = newEcho(client, command.Options{Name: "echo", Throttling: &off})
	_, ok := c.Throttle("1")
	assert.False(t, ok)
}

func TestOwnersAreNotThrottled(t *testing.T) {
	client := commandtest.NewClient("owner")
	c := newEcho(client, command.Options{Name: "echo"})

	_, ok := c.Throttle("owner")
	assert.False(t, ok)

	state, ok := c.Throttle("user")
	require.True(t, ok)
	assert.Zero(t, state.Usages)
	assert.Equal(t, 1, c.Throttles().Len())
}

func TestBaseAccessors(t *testing.T) {
	client := commandtest.NewClient()
	c := newEcho(client, command.Options{
		Name:        "info",
		Description: "bot information",
		Category:    "General",
		Usage:       "info",
		Aliases:     []string{"botinfo"},
		Guarded:     true,
	})

	assert.Equal(t, "info", c.Name())
	assert.Equal(t, "bot information", c.Description())
	assert.Equal(t, "General", c.Category())
	assert.Equal(t, []string{"botinfo"}, c.Aliases())
	assert.True(t, c.Guarded())
	assert.Same(t, client, c.Client().(*commandtest.Client))
}

func TestRegisterStartsDisabledCommandsOff(t *testing.T) {
	client := commandtest.NewClient()
	reg := cmd.NewRegistry()

	require.NoError(t, command.Register(reg, newEcho(client, command.Options{Name: "on"})))
	require.NoError(t, command.Register(reg, newEcho(client, command.Options{Name: "off", Disabled: true})))

	assert.True(t, reg.Enabled("on"))
	assert.False(t, reg.Enabled("off"))

	err := command.Register(reg, newEcho(client, command.Options{Name: "ON"}))
	assert.ErrorIs(t, err, cmd.ErrNameCollision)
}

func TestRegisterAppliesMiddlewareInOrder(t *testing.T) {
	client := commandtest.NewClient()
	reg := cmd.NewRegistry()

	var order []string
	mark := func(name string) cmd.Middleware {
		return func(c cmd.Command) cmd.Command {
			return cmd.Wrap(c, func(ctx context.Context, inv *cmd.Invocation) error {
				order = append(order, name)
				return c.Run(ctx, inv)
			})
		}
	}
	require.NoError(t, command.Register(reg, newEcho(client, command.Options{Name: "echo"}), mark("a"), mark("b")))

	c, ok := reg.Resolve("echo")
	require.True(t, ok)

	sender := &commandtest.Sender{}
	inv := commandtest.Invocation(client, sender, commandtest.Message("g", "u", "s.echo"), "echo")
	require.NoError(t, c.Run(context.Background(), inv))
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 1, sender.Count())
}

func TestRunRejectsForeignData(t *testing.T) {
	c := newEcho(commandtest.NewClient(), command.Options{Name: "echo"})
	err := c.Run(context.Background(), &cmd.Invocation{Name: "echo", Data: "nope"})
	assert.True(t, errors.Is(err, command.ErrWrongContext))
}

func TestContextReplyReferencesMessage(t *testing.T) {
	sender := &commandtest.Sender{}
	msg := commandtest.Message("g1", "u1", "s.ping")
	ctx := &command.Context{Sender: sender, Message: msg}

	require.NoError(t, ctx.Reply("pong"))
	require.NoError(t, ctx.ReplyEmbed(&discordgo.MessageEmbed{Title: "t"}))

	require.Equal(t, 2, sender.Count())
	first := sender.Sent[0]
	assert.Equal(t, msg.ChannelID, first.ChannelID)
	assert.Equal(t, "pong", first.Data.Content)
	require.NotNil(t, first.Data.Reference)
	assert.Equal(t, msg.ID, first.Data.Reference.MessageID)
	assert.Equal(t, "t", sender.Last().Embeds[0].Title)

	assert.Equal(t, "u1", ctx.UserID())
	assert.Equal(t, "g1", ctx.GuildID())
	assert.True(t, ctx.InGuild())
}

func TestContextWithoutMessage(t *testing.T) {
	ctx := &command.Context{}
	assert.Empty(t, ctx.UserID())
	assert.Empty(t, ctx.Username())
	assert.Empty(t, ctx.GuildID())
	assert.False(t, ctx.InGuild())
}

func TestParse(t *testing.T) {
	cases := []struct {
		content  string
		prefixes []string
		name     string
		args     []string
		ok       bool
	}{
		{"s.ping", []string{"s."}, "ping", []string{}, true},
		{"S.Info  a   b", []string{"s."}, "info", []string{"a", "b"}, true},
		{"<@100> help info", command.MentionPrefixes("100"), "help", []string{"info"}, true},
		{"<@!100>help", command.MentionPrefixes("100"), "help", []string{}, true},
		{"s.", []string{"s."}, "", nil, false},
		{"hello", []string{"s."}, "", nil, false},
		{"s", []string{"s."}, "", nil, false},
		{"s.ping", []string{""}, "", nil, false},
	}
	for _, tc := range cases {
		name, args, ok := command.Parse(tc.content, tc.prefixes...)
		assert.Equal(t, tc.ok, ok, tc.content)
		assert.Equal(t, tc.name, name, tc.content)
		if tc.ok {
			assert.Equal(t, tc.args, args, tc.content)
		}
	}

	assert.Nil(t, command.MentionPrefixes(""))
}
