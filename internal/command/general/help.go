package general

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"

	"github.com/keshon/suggestions/internal/command"
	"github.com/keshon/suggestions/internal/config"
	"github.com/keshon/suggestions/pkg/cmd"
)

type HelpCommand struct {
	*command.Base
}

func NewHelp(client command.Client) *HelpCommand {
	return &HelpCommand{Base: command.NewBase(client, command.Options{
		Name:           "help",
		Category:       category,
		Description:    "View the bot's commands or details about one of them.",
		Usage:          "help [command]",
		Aliases:        []string{"commands"},
		DirectMessages: true,
		Guarded:        true,
	})}
}

func (c *HelpCommand) Run(_ context.Context, inv *cmd.Invocation) error {
	ctx, ok := inv.Data.(*command.Context)
	if !ok {
		return command.ErrWrongContext
	}
	cfg := c.Client().Config()
	color, _ := cfg.Color()
	reg := c.Client().Commands()

	if len(ctx.Args) > 0 {
		target, ok := reg.Resolve(ctx.Args[0])
		if !ok {
			return ctx.Reply(fmt.Sprintf("No command named `%s` was found.", ctx.Args[0]))
		}
		return ctx.ReplyEmbed(buildCommandHelp(cfg, color, target, reg.Enabled(target.Name())))
	}
	return ctx.ReplyEmbed(buildHelpByCategory(cfg, color, reg, c.Client().IsOwner(ctx.UserID())))
}

func buildHelpByCategory(cfg *config.Config, color int, reg *cmd.Registry, owner bool) *discordgo.MessageEmbed {
	categories := make(map[string][]string)
	for _, c := range reg.GetAll() {
		cat := "Other"
		if d, ok := cmd.Root(c).(command.Described); ok {
			o := d.Options()
			if o.OwnerOnly && !owner {
				continue
			}
			if o.Category != "" {
				cat = o.Category
			}
		}
		categories[cat] = append(categories[cat], "`"+c.Name()+"`")
	}

	names := make([]string, 0, len(categories))
	for cat := range categories {
		names = append(names, cat)
	}
	sort.Slice(names, func(i, j int) bool {
		wi, wj := config.CategoryWeight(names[i]), config.CategoryWeight(names[j])
		if wi != wj {
			return wi < wj
		}
		return names[i] < names[j]
	})

	e := embed.NewEmbed().
		SetTitle("Command List").
		SetColor(color).
		SetDescription(fmt.Sprintf("Use `%shelp [command]` to view details about a command.", cfg.Prefix))
	for _, cat := range names {
		e.AddField(cat, strings.Join(categories[cat], " "))
	}
	return e.MessageEmbed
}

func buildCommandHelp(cfg *config.Config, color int, c cmd.Command, enabled bool) *discordgo.MessageEmbed {
	e := embed.NewEmbed().
		SetTitle("Command: " + c.Name()).
		SetColor(color).
		SetDescription(c.Description())

	d, ok := cmd.Root(c).(command.Described)
	if !ok {
		return e.MessageEmbed
	}
	opts := d.Options()

	usage := opts.Usage
	if usage == "" {
		usage = opts.Name
	}
	e.AddField("Category", orNone(opts.Category)).
		AddField("Usage", fmt.Sprintf("`%s%s`", cfg.Prefix, usage))
	if len(opts.Aliases) > 0 {
		e.AddField("Aliases", "`"+strings.Join(opts.Aliases, "`, `")+"`")
	}
	if t, ok := cmd.Root(c).(command.Throttled); ok {
		if p := t.Throttles().Policy(); p.Enabled() {
			e.AddField("Throttling", fmt.Sprintf("%d uses every %s", p.Usages, p.Duration))
		}
	}
	if !enabled {
		e.AddField("Status", "Disabled")
	}
	return e.MessageEmbed
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
