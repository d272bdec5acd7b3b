package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/keshon/suggestions/internal/command"
	"github.com/keshon/suggestions/pkg/cmd"
)

func newCommandsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the registered chat commands",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			bot, err := root.offlineBot(nil)
			if err != nil {
				return err
			}
			renderCommands(c.OutOrStdout(), bot.Commands())
			return nil
		},
	}
}

func renderCommands(w io.Writer, reg *cmd.Registry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Command", "Aliases", "Category", "Throttle", "Flags"})

	for _, c := range reg.GetAll() {
		row := table.Row{c.Name(), strings.Join(cmd.AliasesOf(c), ", "), "", "off", ""}
		if d, ok := cmd.Root(c).(command.Described); ok {
			row[2] = d.Options().Category
			row[4] = strings.Join(flags(d.Options()), ", ")
		}
		if th, ok := cmd.Root(c).(command.Throttled); ok {
			if p := th.Throttles().Policy(); p.Enabled() {
				row[3] = fmt.Sprintf("%d per %s", p.Usages, p.Duration)
			}
		}
		t.AppendRow(row)
	}
	t.Render()
}

func flags(o command.Options) []string {
	var out []string
	for _, f := range []struct {
		on   bool
		name string
	}{
		{o.Guarded, "guarded"},
		{o.DirectMessages, "dm"},
		{o.OwnerOnly, "owner"},
		{o.StaffOnly, "staff"},
		{o.AdminOnly, "admin"},
		{o.SupportOnly, "support"},
		{o.SuperSecretOnly, "secret"},
		{o.Disabled, "disabled"},
	} {
		if f.on {
			out = append(out, f.name)
		}
	}
	return out
}
