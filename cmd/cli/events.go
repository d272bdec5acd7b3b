package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/keshon/suggestions/internal/config"
	"github.com/keshon/suggestions/pkg/events"
)

func newEventsCmd(root *rootOptions) *cobra.Command {
	var (
		dir  string
		exts []string
	)
	c := &cobra.Command{
		Use:   "events",
		Short: "Load the event handler definitions and show what binds where",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bot, err := root.offlineBot(func(cfg *config.Config) {
				if dir != "" {
					cfg.EventsDir = dir
				}
				if len(exts) > 0 {
					cfg.EventExtensions = exts
				}
			})
			if err != nil {
				return err
			}
			res, err := bot.ReloadEvents()
			if err != nil {
				return err
			}
			renderEvents(cmd.OutOrStdout(), bot.Events(), res)
			if len(res.Failed) > 0 {
				return fmt.Errorf("%d event file(s) failed to load", len(res.Failed))
			}
			return nil
		},
	}
	c.Flags().StringVar(&dir, "dir", "", "events directory (default EVENTS_DIR)")
	c.Flags().StringSliceVar(&exts, "ext", nil, "definition file extensions (default EVENT_EXTENSIONS)")
	return c
}

func renderEvents(w io.Writer, reg *events.Registry, res events.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Footer = text.FormatDefault
	t.AppendHeader(table.Row{"Event", "File", "Handler", "Status"})

	for _, name := range reg.Names() {
		d, _ := reg.Get(name)
		t.AppendRow(table.Row{d.Name, d.Path, d.Key, "loaded"})
	}
	for _, err := range res.Failed {
		path := ""
		var ce *events.ConstructionError
		if errors.As(err, &ce) {
			path = ce.Path
			err = ce.Err
		}
		t.AppendRow(table.Row{"", path, "", "failed: " + err.Error()})
	}
	t.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d loaded, %d failed", reg.Len(), len(res.Failed))})
	t.Render()
}
