package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/service-drop/internal/platform/tui"
	"github.com/vovakirdan/service-drop/internal/storage"
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

Each SSH connection gets its own game session sized from its terminal.
Scores are stored per-server (all users share the same scoreboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.servicedrop/host_key

Examples:
  servicedrop serve                           # Listen on :23235 with auto-generated key
  servicedrop serve --ssh :2222               # Listen on port 2222
  servicedrop serve --host-key ./my_host_key  # Use specific host key
  servicedrop serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh -t localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(defaults.IdleTimeout/time.Minute), "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, err := loadGameConfig()
	if err != nil {
		fatalf("%v", err)
	}

	logger, closeLog, err := newLogger("servicedrop-ssh", os.Stderr)
	if err != nil {
		fatalf("%v", err)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		// Continue without storage
		store = nil
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Game:        cfg,
		Logger:      logger,
	}, store)
	if err != nil {
		if store != nil {
			store.Close()
		}
		fatalf("creating server: %v", err)
	}

	fmt.Fprintf(os.Stderr, "Service Drop SSH server listening on %s\n", server.Addr())
	fmt.Fprintf(os.Stderr, "Connect with: ssh -t localhost -p %s\n", portOf(flagSSHAddr))

	serveErr := server.ListenAndServe(cmd.Context())
	if store != nil {
		store.Close()
	}
	if serveErr != nil {
		fatalf("server: %v", serveErr)
	}
}

// portOf extracts the port from a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
