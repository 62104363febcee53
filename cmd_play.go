package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// URLEnv tells the host side player where the bridge listens.
const URLEnv = "CATALINA_URL"

var defaultExec = syscall.Exec

// execFn replaces the current process. Tests swap it out.
var execFn = defaultExec

func defaultRunHost(ctx context.Context, path string, argv, env []string) error {
	cmd := exec.CommandContext(ctx, path, argv[1:]...)
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// runHost runs the host engine as a child and waits for it. Tests swap it out.
var runHost = defaultRunHost

func newPlayCmd(flags *rootFlags) *cobra.Command {
	var dryRun, noBridge bool
	var root, addr string

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Run the host engine with the default Catalina match",
		Long: `Changes to the project root and checks the host side player is there.
Then it starts the bridge, and runs the host executable found on PATH with
the configured match arguments. By default these are
--code=ai/players/catalina.py --players=R,R,R,Catalina --num=10. The host
reaches the bridge through CATALINA_URL.

With --no-bridge the host replaces this process instead, and a bridge
started with "catalina serve" must already be listening.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flags.cfg
			launcher := cfg.Launcher
			if root != "" {
				launcher.Root = root
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			dir, err := projectRoot(launcher.Root)
			if err != nil {
				return err
			}
			if err := os.Chdir(dir); err != nil {
				return fmt.Errorf("failed to change to project root: %w", err)
			}
			if _, err := os.Stat(launcher.Code); err != nil {
				return fmt.Errorf("player code %s not found under %s: %w", launcher.Code, dir, err)
			}

			path, err := exec.LookPath(launcher.Command)
			if err != nil {
				return fmt.Errorf("'%s' not found in PATH. Did you install the experimental extras?", launcher.Command)
			}
			argv := append([]string{path}, launcher.Args()...)

			if dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(argv, " "))
				return nil
			}
			if noBridge {
				log.Debug().Str("dir", dir).Strs("argv", argv).Msg("launching host engine")
				return execFn(path, argv, os.Environ())
			}

			server, collector, err := newBridge(cfg)
			if err != nil {
				return err
			}
			ln, err := net.Listen("tcp", cfg.Server.Addr)
			if err != nil {
				return fmt.Errorf("failed to start bridge: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			serveCtx, cancel := context.WithCancel(ctx)
			defer cancel()
			served := make(chan error, 1)
			go func() {
				served <- server.Serve(serveCtx, ln)
			}()

			env := append(os.Environ(), URLEnv+"=http://"+ln.Addr().String())
			log.Debug().Str("dir", dir).Strs("argv", argv).Str("bridge", ln.Addr().String()).Msg("launching host engine")
			hostErr := runHost(ctx, path, argv, env)

			cancel()
			if err := <-served; err != nil {
				return fmt.Errorf("bridge failed: %w", err)
			}
			if hostErr != nil {
				return fmt.Errorf("host engine failed: %w", hostErr)
			}
			return flushRecords(cfg, collector)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the command instead of running it")
	cmd.Flags().BoolVar(&noBridge, "no-bridge", false, "replace this process with the host, without starting a bridge")
	cmd.Flags().StringVar(&root, "root", "", "project root to run from (default: the executable's directory)")
	cmd.Flags().StringVar(&addr, "addr", "", "bridge listen address (default from config)")
	return cmd
}

// projectRoot is dir when set, else the directory holding the executable.
func projectRoot(dir string) (string, error) {
	if dir != "" {
		return filepath.Abs(dir)
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
