package main

import (
	"fmt"
	"text/tabwriter"

	"catalina/bridge"
	"catalina/experiments"
	"catalina/metrics"
	"catalina/player"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newCompareCmd(flags *rootFlags) *cobra.Command {
	var names []string
	var rounds int

	cmd := &cobra.Command{
		Use:   "compare <request.json>...",
		Short: "Compare players against the configured one on saved requests",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flags.cfg
			requests := make([]bridge.DecideRequest, 0, len(args))
			for _, path := range args {
				req, err := readRequest(cmd, path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				requests = append(requests, req)
			}
			if len(names) == 0 {
				names = player.Names()
			}
			opts, err := cfg.Player.Options()
			if err != nil {
				return err
			}

			collector := metrics.NewCollector()
			results, err := experiments.Compare(requests, names, cfg.Player.Name, rounds, collector, opts...)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PLAYER\tDECISIONS\tAGREEMENT\tFALLBACKS\tMEAN")
			for _, r := range results {
				fmt.Fprintf(w, "%s\t%d\t%.2f\t%d\t%s\n", r.Player, r.Decisions, r.AgreementRate(), r.Fallbacks, r.Mean)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if cfg.Record.Dir == "" {
				return nil
			}
			writer, err := metrics.NewWriter(cfg.Record.Dir)
			if err != nil {
				return err
			}
			if err := writer.Flush(collector); err != nil {
				return err
			}
			log.Info().Str("dir", writer.Dir()).Msg("decisions recorded")
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&names, "players", nil, "players to compare (default: all registered)")
	cmd.Flags().IntVar(&rounds, "rounds", 1, "decisions per request and player")
	return cmd
}
