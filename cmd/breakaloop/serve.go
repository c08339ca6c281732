package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/breakaloop/internal/games/breakaloop"
	"github.com/vovakirdan/breakaloop/internal/platform/tui"
	"github.com/vovakirdan/breakaloop/internal/registry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the level picker.
Times are stored per server (all users share the same board).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.breakaloop/host_key

Examples:
  breakaloop serve                           # Listen on :23234
  breakaloop serve --ssh :2222               # Listen on port 2222
  breakaloop serve --host-key ./my_host_key  # Use specific host key
  breakaloop serve --db ./times.db           # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	set, err := loadLevels()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg := loadConfig()

	// Sessions run concurrently, so each game gets its settings as options
	// instead of the package-level setters.
	newGame := func(level int) registry.Game {
		return breakaloop.New(
			breakaloop.WithConfig(cfg),
			breakaloop.WithLevels(set),
			breakaloop.WithStartLevel(level),
			breakaloop.WithLogger(log.Default()),
		)
	}

	serverCfg := tui.DefaultSSHServerConfig()
	serverCfg.Address = flagSSHAddr
	serverCfg.HostKeyPath = flagHostKey
	serverCfg.DBPath = flagDBPath
	serverCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	serverCfg.Runtime = runtimeConfig(cfg)
	serverCfg.Hold = holdWindow(cfg)
	serverCfg.Levels = set
	serverCfg.NewGame = newGame

	server, err := tui.NewSSHServer(serverCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Break a loop! SSH server on %s\n", serverCfg.Address)
	fmt.Printf("Connect with: ssh localhost -p <port> (terminal of at least %dx%d)\n",
		serverCfg.Runtime.ScreenW, serverCfg.Runtime.ScreenH)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
