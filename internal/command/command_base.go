package command

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/keshon/suggestions/internal/config"
	"github.com/keshon/suggestions/pkg/cmd"
	"github.com/keshon/suggestions/pkg/events"
	"github.com/keshon/suggestions/pkg/throttle"
)

// Client is what commands need from the running bot.
type Client interface {
	Config() *config.Config
	Logger() *zap.Logger
	Commands() *cmd.Registry

	IsOwner(userID string) bool
	IsAdmin(guildID, userID string) bool
	// BotPermissions returns the bot's permission mask in a channel.
	BotPermissions(channelID string) (int64, error)
	BotUser() *discordgo.User
	Latency() time.Duration

	ReloadEvents() (events.Result, error)
}

// Options describes a command. The zero value of every flag is the
// common case: enabled, guild only, no extra access level.
type Options struct {
	Name        string
	Description string
	Category    string
	Usage       string
	Aliases     []string

	// Disabled commands are registered but refuse to run until toggled on.
	Disabled bool
	// Guarded commands cannot be disabled.
	Guarded bool
	// DirectMessages allows the command outside guilds.
	DirectMessages bool

	StaffOnly       bool
	AdminOnly       bool
	OwnerOnly       bool
	SuperSecretOnly bool
	SupportOnly     bool

	// BotPermissions the bot needs in the channel to run the command.
	BotPermissions []int64

	// Throttling is the per-user policy. Nil uses the configured default,
	// throttle.Disabled() turns throttling off.
	Throttling *throttle.Policy
}

// Throttled is implemented by commands that own a throttle tracker.
type Throttled interface {
	Throttles() *throttle.Tracker
}

// Described is implemented by commands built on Base.
type Described interface {
	Options() Options
}

// Base carries the options and throttle state of a command. Concrete
// commands embed *Base and implement Run.
type Base struct {
	client    Client
	opts      Options
	throttles *throttle.Tracker
}

// NewBase builds the base of a command. Owners are never throttled.
func NewBase(client Client, opts Options, trackerOpts ...throttle.Option) *Base {
	policy := client.Config().Throttle()
	if opts.Throttling != nil {
		policy = *opts.Throttling
	}
	trackerOpts = append([]throttle.Option{throttle.WithExempt(client.IsOwner)}, trackerOpts...)
	return &Base{
		client:    client,
		opts:      opts,
		throttles: throttle.NewTracker(policy, trackerOpts...),
	}
}

func (b *Base) Name() string        { return b.opts.Name }
func (b *Base) Description() string { return b.opts.Description }
func (b *Base) Aliases() []string   { return b.opts.Aliases }
func (b *Base) Category() string    { return b.opts.Category }
func (b *Base) Usage() string       { return b.opts.Usage }
func (b *Base) Guarded() bool       { return b.opts.Guarded }
func (b *Base) Options() Options    { return b.opts }
func (b *Base) Client() Client      { return b.client }

// Throttles returns the command's throttle tracker.
func (b *Base) Throttles() *throttle.Tracker { return b.throttles }

// Throttle opens (or returns) userID's usage window without counting an
// invocation. ok is false when the user is not throttled at all.
func (b *Base) Throttle(userID string) (state throttle.State, ok bool) {
	return b.throttles.Check(userID)
}

// Register applies middlewares to c and adds it to reg. Commands
// declared Disabled start switched off.
func Register(reg *cmd.Registry, c cmd.Command, mws ...cmd.Middleware) error {
	wrapped := cmd.Apply(c, mws...)
	if err := reg.Register(wrapped); err != nil {
		return err
	}
	if d, ok := cmd.Root(c).(Described); ok && d.Options().Disabled {
		return reg.SetEnabled(c.Name(), false)
	}
	return nil
}
