package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/keshon/suggestions/internal/command"
	"github.com/keshon/suggestions/internal/command/commandtest"
	"github.com/keshon/suggestions/pkg/cmd"
	"github.com/keshon/suggestions/pkg/throttle"
)

type probe struct {
	*command.Base
	runs int
	err  error
}

func (p *probe) Run(context.Context, *cmd.Invocation) error {
	p.runs++
	return p.err
}

func newProbe(client command.Client, opts command.Options) *probe {
	if opts.Name == "" {
		opts.Name = "probe"
	}
	return &probe{Base: command.NewBase(client, opts)}
}

type fixture struct {
	client *commandtest.Client
	sender *commandtest.Sender
}

func newFixture(owners ...string) *fixture {
	return &fixture{client: commandtest.NewClient(owners...), sender: &commandtest.Sender{}}
}

func (f *fixture) run(t *testing.T, c cmd.Command, guildID, userID string) error {
	t.Helper()
	inv := commandtest.Invocation(f.client, f.sender, commandtest.Message(guildID, userID, "s."+c.Name()), c.Name())
	return c.Run(context.Background(), inv)
}

func TestNonChatInvocationsPassThrough(t *testing.T) {
	f := newFixture()
	p := newProbe(f.client, command.Options{OwnerOnly: true})
	c := cmd.Apply(p, Chain(f.client.Registry, Deps{GuildLimiter: throttle.NewGuildLimiter(0, 0)})...)

	require.NoError(t, f.client.Registry.Register(c))
	require.NoError(t, c.Run(context.Background(), &cmd.Invocation{Name: "probe"}))
	assert.Equal(t, 1, p.runs)
}

func TestWithEnabled(t *testing.T) {
	f := newFixture()
	p := newProbe(f.client, command.Options{})
	c := cmd.Apply(p, WithEnabled(f.client.Registry))
	require.NoError(t, f.client.Registry.Register(c))

	require.NoError(t, f.run(t, c, "g", "u"))
	assert.Equal(t, 1, p.runs)

	require.NoError(t, f.client.Registry.SetEnabled("probe", false))
	require.NoError(t, f.run(t, c, "g", "u"))
	assert.Equal(t, 1, p.runs)
	assert.Contains(t, f.sender.Last().Content, "disabled")
}

func TestWithGuildOnly(t *testing.T) {
	f := newFixture()

	guildOnly := newProbe(f.client, command.Options{})
	c := cmd.Apply(guildOnly, WithGuildOnly())
	require.NoError(t, f.run(t, c, "", "u"))
	assert.Zero(t, guildOnly.runs)
	assert.Contains(t, f.sender.Last().Content, "server")

	require.NoError(t, f.run(t, c, "g", "u"))
	assert.Equal(t, 1, guildOnly.runs)

	dm := newProbe(f.client, command.Options{DirectMessages: true})
	require.NoError(t, f.run(t, cmd.Apply(dm, WithGuildOnly()), "", "u"))
	assert.Equal(t, 1, dm.runs)
}

func TestWithPermissionLevel(t *testing.T) {
	f := newFixture("owner")
	f.client.Cfg.Staff = []string{"staff"}
	f.client.Cfg.Support = []string{"support"}
	f.client.Cfg.SuperSecret = []string{"secret"}
	f.client.Admins["g/admin"] = true

	cases := []struct {
		opts    command.Options
		allowed []string
		denied  []string
	}{
		{command.Options{OwnerOnly: true}, []string{"owner"}, []string{"staff", "admin", "user"}},
		{command.Options{StaffOnly: true}, []string{"owner", "staff"}, []string{"support", "admin", "user"}},
		{command.Options{SupportOnly: true}, []string{"owner", "staff", "support"}, []string{"admin", "user"}},
		{command.Options{SuperSecretOnly: true}, []string{"owner", "secret"}, []string{"staff", "user"}},
		{command.Options{AdminOnly: true}, []string{"owner", "staff", "admin"}, []string{"support", "user"}},
		{command.Options{}, []string{"user"}, nil},
	}
	for _, tc := range cases {
		for _, user := range tc.allowed {
			p := newProbe(f.client, tc.opts)
			require.NoError(t, f.run(t, cmd.Apply(p, WithPermissionLevel()), "g", user))
			assert.Equal(t, 1, p.runs, "%+v should allow %s", tc.opts, user)
		}
		for _, user := range tc.denied {
			p := newProbe(f.client, tc.opts)
			before := f.sender.Count()
			require.NoError(t, f.run(t, cmd.Apply(p, WithPermissionLevel()), "g", user))
			assert.Zero(t, p.runs, "%+v should deny %s", tc.opts, user)
			assert.Equal(t, before+1, f.sender.Count())
		}
	}
}

func TestWithBotPermissions(t *testing.T) {
	f := newFixture()
	opts := command.Options{BotPermissions: []int64{discordgo.PermissionAddReactions, discordgo.PermissionEmbedLinks}}

	f.client.Perms = discordgo.PermissionSendMessages | discordgo.PermissionAddReactions
	p := newProbe(f.client, opts)
	c := cmd.Apply(p, WithBotPermissions())
	require.NoError(t, f.run(t, c, "g", "u"))
	assert.Zero(t, p.runs)
	assert.Contains(t, f.sender.Last().Content, "Embed Links")
	assert.NotContains(t, f.sender.Last().Content, "Add Reactions")

	f.client.Perms = discordgo.PermissionAdministrator
	require.NoError(t, f.run(t, c, "g", "u"))
	assert.Equal(t, 1, p.runs)

	f.client.Perms = discordgo.PermissionAddReactions | discordgo.PermissionEmbedLinks
	require.NoError(t, f.run(t, c, "g", "u"))
	assert.Equal(t, 2, p.runs)

	f.client.PermsErr = errors.New("unknown channel")
	assert.Error(t, f.run(t, c, "g", "u"))

	// direct messages have no channel permissions to check
	require.NoError(t, f.run(t, c, "", "u"))
	assert.Equal(t, 3, p.runs)
}

func TestPermissionName(t *testing.T) {
	assert.Equal(t, "Embed Links", PermissionName(discordgo.PermissionEmbedLinks))
	assert.Equal(t, "0x40000000000", PermissionName(1<<42))
}

func TestWithThrottle(t *testing.T) {
	f := newFixture("owner")
	policy := throttle.Policy{Usages: 2, Duration: 5 * time.Second}
	p := newProbe(f.client, command.Options{Throttling: &policy})
	c := cmd.Apply(p, WithThrottle())

	require.NoError(t, f.run(t, c, "g", "u"))
	require.NoError(t, f.run(t, c, "g", "u"))
	require.NoError(t, f.run(t, c, "g", "u"))
	assert.Equal(t, 2, p.runs)
	require.Equal(t, 1, f.sender.Count())
	assert.Contains(t, f.sender.Last().Content, "may not use the `probe` command again")

	require.NoError(t, f.run(t, c, "g", "other"))
	assert.Equal(t, 3, p.runs)

	for range 5 {
		require.NoError(t, f.run(t, c, "g", "owner"))
	}
	assert.Equal(t, 8, p.runs)
}

func TestWithGuildRateLimit(t *testing.T) {
	f := newFixture()
	p := newProbe(f.client, command.Options{})
	c := cmd.Apply(p, WithGuildRateLimit(throttle.NewGuildLimiter(0.001, 2)))

	for range 4 {
		require.NoError(t, f.run(t, c, "g", "u"))
	}
	assert.Equal(t, 2, p.runs)
	assert.Zero(t, f.sender.Count())

	require.NoError(t, f.run(t, c, "other", "u"))
	assert.Equal(t, 3, p.runs)
}

func TestWithCommandLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	f := newFixture()
	p := newProbe(f.client, command.Options{})
	c := cmd.Apply(p, WithCommandLogger(zap.New(core)))

	require.NoError(t, f.run(t, c, "g", "u"))
	p.err = errors.New("boom")
	assert.EqualError(t, f.run(t, c, "g", "u"), "boom")

	ran := logs.FilterMessage("command ran").All()
	require.Len(t, ran, 1)
	assert.Equal(t, "probe", ran[0].ContextMap()["command"])
	assert.Equal(t, "u", ran[0].ContextMap()["user_id"])

	failed := logs.FilterMessage("command failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "boom", failed[0].ContextMap()["error"])
}

func TestChainOrder(t *testing.T) {
	f := newFixture()
	p := newProbe(f.client, command.Options{OwnerOnly: true})
	c := cmd.Apply(p, Chain(f.client.Registry, Deps{})...)
	require.NoError(t, f.client.Registry.Register(c))

	// denied by access level before the throttle counts the attempt
	for range 3 {
		require.NoError(t, f.run(t, c, "g", "u"))
	}
	assert.Zero(t, p.runs)
	assert.Zero(t, p.Throttles().Len())
}
