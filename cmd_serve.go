package main

import (
	"os"
	"os/signal"
	"syscall"

	"catalina/bridge"
	"catalina/config"
	"catalina/metrics"
	"catalina/player"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve players to the host engine over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flags.cfg
			if addr != "" {
				cfg.Server.Addr = addr
			}

			server, collector, err := newBridge(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := server.ListenAndServe(ctx, cfg.Server.Addr); err != nil {
				return err
			}
			return flushRecords(cfg, collector)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

// newBridge builds the configured bridge. The collector is nil unless
// decisions are recorded.
func newBridge(cfg *config.Config) (*bridge.Server, *metrics.Collector, error) {
	opts, err := cfg.Player.Options()
	if err != nil {
		return nil, nil, err
	}
	var collector *metrics.Collector
	if cfg.Record.Dir != "" {
		collector = metrics.NewCollector()
		opts = append(opts, player.WithRecorder(collector))
	}

	server := bridge.NewServer(
		bridge.WithDefaultPlayer(cfg.Player.Name),
		bridge.WithPlayerOptions(opts...),
	)
	return server, collector, nil
}

func flushRecords(cfg *config.Config, collector *metrics.Collector) error {
	if collector == nil {
		return nil
	}
	writer, err := metrics.NewWriter(cfg.Record.Dir)
	if err != nil {
		return err
	}
	if err := writer.Flush(collector); err != nil {
		return err
	}
	log.Info().Str("dir", writer.Dir()).Int("decisions", collector.Summary().Decisions).Msg("decisions recorded")
	return nil
}
