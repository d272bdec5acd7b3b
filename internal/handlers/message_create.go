package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/keshon/suggestions/internal/command"
	"github.com/keshon/suggestions/pkg/cmd"
	"github.com/keshon/suggestions/pkg/events"
)

func init() {
	Factories.Register("messageCreate", newMessageCreate)
}

type messageCreateOptions struct {
	// Mentions lets "@bot command" work alongside the prefix.
	Mentions bool `mapstructure:"mentions"`
	// Timeout bounds a single command run.
	Timeout time.Duration `mapstructure:"timeout"`
}

type messageCreateHandler struct {
	client command.Client
	opts   messageCreateOptions
}

func newMessageCreate(client command.Client, _ string, def events.Definition) (events.Handler, error) {
	h := &messageCreateHandler{
		client: client,
		opts:   messageCreateOptions{Mentions: true, Timeout: 30 * time.Second},
	}
	if err := events.DecodeOptions(def, &h.opts); err != nil {
		return nil, err
	}
	if h.opts.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", h.opts.Timeout)
	}
	return h, nil
}

func (h *messageCreateHandler) Run(args ...any) {
	log := h.client.Logger()
	sender, ok1 := arg[command.Sender](args, 0)
	m, ok2 := arg[*discordgo.MessageCreate](args, 1)
	if !ok1 || !ok2 || m.Message == nil {
		log.Warn(unexpected("messageCreate", args))
		return
	}
	if m.Author == nil || m.Author.Bot {
		return
	}
	if me := h.client.BotUser(); me != nil && m.Author.ID == me.ID {
		return
	}

	prefixes := []string{h.client.Config().Prefix}
	if h.opts.Mentions {
		if me := h.client.BotUser(); me != nil {
			prefixes = append(prefixes, command.MentionPrefixes(me.ID)...)
		}
	}
	name, cmdArgs, ok := command.Parse(m.Content, prefixes...)
	if !ok {
		return
	}
	c, ok := h.client.Commands().Resolve(name)
	if !ok {
		return
	}

	cctx := &command.Context{
		Sender:  sender,
		Message: m.Message,
		Client:  h.client,
		Prefix:  h.client.Config().Prefix,
		Args:    cmdArgs,
	}
	ctx, cancel := context.WithTimeout(context.Background(), h.opts.Timeout)
	defer cancel()

	err := c.Run(ctx, &cmd.Invocation{Name: c.Name(), Args: cmdArgs, Data: cctx})
	if err != nil {
		log.Error("command error",
			zap.String("command", c.Name()),
			zap.String("user_id", cctx.UserID()),
			zap.Error(err))
		if replyErr := cctx.Reply(fmt.Sprintf("Something went wrong while running `%s`.", c.Name())); replyErr != nil {
			log.Warn("failed to report command error", zap.Error(replyErr))
		}
	}
}
