package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"catalina/bridge"
	"catalina/player"

	"github.com/spf13/cobra"
)

func newDecideCmd(flags *rootFlags) *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "decide <request.json>",
		Short: "Decide once on a saved request, - reads stdin",
		Long: `Reads a decision request ({game_id, player, state, playable_actions}) and
prints the response ({game_id, index, action}). With --server the request is
sent to a running bridge instead of decided in process.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest(cmd, args[0])
			if err != nil {
				return err
			}

			var resp bridge.DecideResponse
			if server != "" {
				resp, err = bridge.NewClient(server, nil).Decide(cmd.Context(), req)
			} else {
				resp, err = decideLocally(flags, req)
			}
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "bridge URL to ask instead of deciding in process")
	return cmd
}

func readRequest(cmd *cobra.Command, path string) (bridge.DecideRequest, error) {
	var req bridge.DecideRequest
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return req, fmt.Errorf("failed to read request: %w", err)
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("failed to parse request: %w", err)
	}
	return req, nil
}

func decideLocally(flags *rootFlags, req bridge.DecideRequest) (bridge.DecideResponse, error) {
	name := req.Player
	if name == "" {
		name = flags.cfg.Player.Name
	}
	opts, err := flags.cfg.Player.Options()
	if err != nil {
		return bridge.DecideResponse{}, err
	}
	p, err := player.New(name, append(opts, player.WithGameID(req.GameID))...)
	if err != nil {
		return bridge.DecideResponse{}, err
	}
	return bridge.Decide(p, req)
}

func newPlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players",
		Short: "List the registered players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range player.Names() {
				marker := ""
				if name == player.Default {
					marker = " (default)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", name, marker)
			}
			return nil
		},
	}
}
