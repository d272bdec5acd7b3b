package main

import (
	"github.com/spf13/cobra"

	"github.com/keshon/suggestions/internal/config"
	"github.com/keshon/suggestions/internal/discord"
	"github.com/keshon/suggestions/internal/logging"
	v "github.com/keshon/suggestions/internal/version"
)

type rootOptions struct {
	envFile  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "suggestions",
		Short:         "Inspect the " + v.AppName + " bot without connecting to Discord",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to read before the environment")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level for diagnostics")

	root.AddCommand(
		newEventsCmd(opts),
		newCommandsCmd(opts),
		newVersionCmd(),
	)
	return root
}

// offlineBot builds the bot with its commands and event loader but never
// opens the gateway session.
func (o *rootOptions) offlineBot(mutate func(*config.Config)) (*discord.Bot, error) {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return nil, err
	}
	if mutate != nil {
		mutate(cfg)
	}
	log, err := logging.New(logging.Options{Level: o.logLevel, Format: "console"})
	if err != nil {
		return nil, err
	}
	return discord.New(cfg, log.Named("cli"))
}
