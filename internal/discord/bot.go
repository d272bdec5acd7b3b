package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/keshon/suggestions/internal/command"
	"github.com/keshon/suggestions/internal/command/general"
	"github.com/keshon/suggestions/internal/command/owner"
	"github.com/keshon/suggestions/internal/config"
	"github.com/keshon/suggestions/internal/handlers"
	"github.com/keshon/suggestions/internal/middleware"
	"github.com/keshon/suggestions/pkg/cmd"
	"github.com/keshon/suggestions/pkg/events"
	"github.com/keshon/suggestions/pkg/jobmgr"
	"github.com/keshon/suggestions/pkg/throttle"
)

const watchJob = "watch-events"

// Bot is the Discord bot. It implements command.Client.
type Bot struct {
	cfg *config.Config
	log *zap.Logger
	fs  afero.Fs

	dg       *discordgo.Session
	commands *cmd.Registry
	events   *events.Registry
	emitter  *events.Emitter
	loader   *events.Loader[command.Client]
	guilds   *throttle.GuildLimiter
	jobs     *jobmgr.Manager
}

var _ command.Client = (*Bot)(nil)

// Option customizes a Bot.
type Option func(*Bot)

// WithFs reads event definitions from fs instead of the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(b *Bot) { b.fs = fs }
}

// New builds the bot and registers its commands. It does not connect.
func New(cfg *config.Config, log *zap.Logger, opts ...Option) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent
	dg.LogLevel = libraryLogLevel(cfg.LogLevel)

	b := &Bot{
		cfg:      cfg,
		log:      log,
		fs:       afero.NewOsFs(),
		dg:       dg,
		commands: cmd.NewRegistry(),
		events:   events.NewRegistry(),
		emitter:  events.NewEmitter(log, cfg.QuietEvents...),
		guilds:   throttle.NewGuildLimiter(rate.Limit(cfg.GuildCommandRate), cfg.GuildCommandBurst),
		jobs:     jobmgr.NewManager(jobmgr.ZapReporter(log)),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.loader = events.NewLoader(b.fs, cfg.EventsDir, command.Client(b), handlers.Factories, b.events, b.emitter,
		events.WithExtensions(cfg.EventExtensions...),
		events.WithQuiet(cfg.QuietEvents...),
		events.WithLogger(log),
	)

	if err := b.registerCommands(); err != nil {
		return nil, err
	}
	dg.AddHandler(b.dispatch)
	return b, nil
}

func (b *Bot) registerCommands() error {
	chain := middleware.Chain(b.commands, middleware.Deps{Logger: b.log, GuildLimiter: b.guilds})

	var all []cmd.Command
	all = append(all, general.Commands(b)...)
	all = append(all, owner.Commands(b)...)
	for _, c := range all {
		if err := command.Register(b.commands, c, chain...); err != nil {
			return fmt.Errorf("register command %s: %w", c.Name(), err)
		}
	}
	b.log.Debug("commands registered", zap.Int("count", len(all)))
	return nil
}

// Run loads the event handlers, connects and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.cfg.RequireToken(); err != nil {
		return err
	}
	if err := b.loadEvents(); err != nil {
		return err
	}

	restore := bridgeLibraryLog(b.emitter)
	defer restore()

	if err := b.dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer b.dg.Close()

	if b.cfg.EventsHotReload {
		if err := b.jobs.StartAsync(ctx, watchJob, b.watchEvents); err != nil {
			b.log.Warn("failed to start event watcher", zap.Error(err))
		}
	}

	<-ctx.Done()
	b.log.Info("shutdown signal received, cleaning up")
	b.jobs.StopAll()
	b.jobs.Wait()
	return nil
}

// Emitter returns the dispatcher the event handlers are bound to.
func (b *Bot) Emitter() *events.Emitter { return b.emitter }

// Events returns the registry of bound event handlers.
func (b *Bot) Events() *events.Registry { return b.events }

func (b *Bot) Config() *config.Config     { return b.cfg }
func (b *Bot) Logger() *zap.Logger        { return b.log }
func (b *Bot) Commands() *cmd.Registry    { return b.commands }
func (b *Bot) IsOwner(userID string) bool { return b.cfg.IsOwner(userID) }
func (b *Bot) Latency() time.Duration     { return b.dg.HeartbeatLatency() }

// BotUser returns the logged in user, or nil before the session is ready.
func (b *Bot) BotUser() *discordgo.User {
	if b.dg.State == nil {
		return nil
	}
	return b.dg.State.User
}

// ReloadEvents rescans the events directory and rebinds every handler.
func (b *Bot) ReloadEvents() (events.Result, error) {
	return b.loader.Load()
}

// loadEvents performs the startup load. Finding no event files leaves
// the bot running without event handlers.
func (b *Bot) loadEvents() error {
	_, err := b.ReloadEvents()
	var de *events.DiscoveryError
	if errors.As(err, &de) {
		b.log.Warn("starting without event handlers", zap.Error(err))
		return nil
	}
	return err
}
