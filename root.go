package main

import (
	"fmt"
	"os"
	"time"

	"catalina/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	logLevel   string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "catalina",
		Short: "Catalina - heuristic Catan player",
		Long: `Catalina scores the build and buy actions of a Catan turn and plays the
one closest to the ideal (TOPSIS). It runs behind the catanatron host engine,
either launched through "catalina play" or served over HTTP by "catalina serve".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setupLogging(flags.logLevel); err != nil {
				return err
			}
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}
			flags.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "catalina.yaml", "config file, defaults apply when missing")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		newPlayCmd(flags),
		newServeCmd(flags),
		newDecideCmd(flags),
		newCompareCmd(flags),
		newPlayersCmd(),
	)
	return root
}

func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	return nil
}
