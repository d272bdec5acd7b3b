package general

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"

	"github.com/keshon/suggestions/internal/command"
	"github.com/keshon/suggestions/internal/config"
	"github.com/keshon/suggestions/internal/version"
	"github.com/keshon/suggestions/pkg/cmd"
)

type InfoCommand struct {
	*command.Base
}

func NewInfo(client command.Client) *InfoCommand {
	return &InfoCommand{Base: command.NewBase(client, command.Options{
		Name:           "info",
		Category:       category,
		Description:    "View bot information.",
		Aliases:        []string{"botinfo"},
		BotPermissions: []int64{discordgo.PermissionAddReactions, discordgo.PermissionEmbedLinks},
		DirectMessages: true,
		Guarded:        true,
	})}
}

func (c *InfoCommand) Run(_ context.Context, inv *cmd.Invocation) error {
	ctx, ok := inv.Data.(*command.Context)
	if !ok {
		return command.ErrWrongContext
	}
	msg, err := buildInfoMessage(c.Client().Config(), c.Client().BotUser())
	if err != nil {
		return err
	}
	return ctx.ReplyEmbed(msg)
}

func buildInfoMessage(cfg *config.Config, bot *discordgo.User) (*discordgo.MessageEmbed, error) {
	color, err := cfg.Color()
	if err != nil {
		return nil, err
	}

	e := embed.NewEmbed().
		SetDescription(cfg.Description).
		SetColor(color).
		SetFooter(version.Copyright)
	if bot != nil {
		e.SetTitle(bot.Username)
		e.SetThumbnail(bot.AvatarURL(""))
	}

	authorsTitle := "Bot Author"
	if len(cfg.Owners) > 1 {
		authorsTitle = "Bot Author(s)"
	}
	authors := make([]string, 0, len(cfg.Owners))
	for _, id := range cfg.Owners {
		authors = append(authors, fmt.Sprintf("<@%s> `[%s]`", id, id))
	}
	if len(authors) == 0 {
		authors = append(authors, "unknown")
	}

	e.AddField(authorsTitle, strings.Join(authors, "\n")).
		AddField("Website", link(cfg.Website)).
		AddField("Discord", link(cfg.Discord)).
		AddField("GitHub", link(cfg.GitHub)).
		AddField("Legal", fmt.Sprintf("[Privacy Policy](%s) | [Terms of Service](%s)", cfg.PrivacyURL, cfg.TermsURL)).
		AddField("Version", version.Version)

	return e.MessageEmbed, nil
}

// link renders u as a markdown link labelled with its host and path.
func link(u string) string {
	label := u
	if parsed, err := url.Parse(u); err == nil && parsed.Host != "" {
		label = strings.TrimSuffix(parsed.Host+parsed.Path, "/")
	}
	return fmt.Sprintf("[%s](%s)", label, u)
}
