package handlers

import (
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/keshon/suggestions/internal/command"
	"github.com/keshon/suggestions/pkg/events"
)

func init() {
	Factories.Register("ready", newReady)
}

// StatusUpdater is the part of *discordgo.Session the ready handler uses.
type StatusUpdater interface {
	UpdateGameStatus(idle int, name string) error
}

type readyOptions struct {
	// Status is the playing status; empty means "<prefix>help".
	Status string `mapstructure:"status"`
}

type readyHandler struct {
	client command.Client
	opts   readyOptions
}

func newReady(client command.Client, _ string, def events.Definition) (events.Handler, error) {
	h := &readyHandler{client: client}
	if err := events.DecodeOptions(def, &h.opts); err != nil {
		return nil, err
	}
	if h.opts.Status == "" {
		h.opts.Status = client.Config().Prefix + "help"
	}
	return h, nil
}

func (h *readyHandler) Run(args ...any) {
	log := h.client.Logger()
	s, ok1 := arg[StatusUpdater](args, 0)
	r, ok2 := arg[*discordgo.Ready](args, 1)
	if !ok1 || !ok2 {
		log.Warn(unexpected("ready", args))
		return
	}

	fields := []zap.Field{zap.Int("guilds", len(r.Guilds)), zap.Int("commands", len(h.client.Commands().GetAll()))}
	if r.User != nil {
		fields = append(fields, zap.String("user", r.User.Username), zap.String("user_id", r.User.ID))
	}
	log.Info("logged in", fields...)

	if err := s.UpdateGameStatus(0, h.opts.Status); err != nil {
		log.Warn("failed to set status", zap.String("status", h.opts.Status), zap.Error(err))
	}
}
