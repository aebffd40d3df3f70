package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/service-drop/internal/config"
	"github.com/vovakirdan/service-drop/internal/game"
	"github.com/vovakirdan/service-drop/internal/session"
	"github.com/vovakirdan/service-drop/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.servicedrop/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Game is the configuration every remote session plays with.
	Game config.GameConfig

	// Logger is optional; a timestamped stderr logger is used when nil.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns the settings serve uses when nothing is given.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		IdleTimeout: 30 * time.Minute,
		Game:        config.DefaultGameConfig(),
	}
}

// withDefaults fills unset fields from DefaultSSHServerConfig.
func (c SSHServerConfig) withDefaults() SSHServerConfig {
	def := DefaultSSHServerConfig()
	if c.Address == "" {
		c.Address = def.Address
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = def.IdleTimeout
	}
	if len(c.Game.Roles) == 0 && len(c.Game.Services) == 0 {
		c.Game = def.Game
	}
	return c
}

// SSHServer wraps a Wish SSH server. Each connection gets its own game session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server. Zero fields in cfg take their
// defaults. The store may be nil, in which case nothing is recorded.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store) (*SSHServer, error) {
	cfg = cfg.withDefaults()

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "servicedrop-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".servicedrop", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a game session and play screen for each SSH connection.
// The game session ends with the SSH session's context.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	if _, _, ok := sshSession.Pty(); !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		wish.Fatalln(sshSession, "service drop needs an interactive terminal (ssh -t)")
		return nil, nil
	}

	sess, err := s.newSession(sshSession.User())
	if err != nil {
		s.logger.Error("cannot create game", "user", sshSession.User(), "err", err)
		wish.Fatalln(sshSession, "cannot start game:", err)
		return nil, nil
	}

	model := NewModel(sess, s.store, OptionsFromConfig(s.config.Game))
	sess.Start(sshSession.Context())

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

func (s *SSHServer) newSession(user string) (*session.Session, error) {
	g, err := game.New(s.config.Game, nil)
	if err != nil {
		return nil, err
	}

	opts := session.Options{
		ID:           fmt.Sprintf("%s-%d", user, time.Now().UnixNano()),
		Player:       user,
		TickInterval: s.config.Game.Timing.TickInterval(),
		ResultDelay:  s.config.Game.Timing.ResultDelay(),
		Logger:       s.logger,
	}
	if s.store != nil {
		opts.Recorder = s.store
	}
	return session.New(g, opts), nil
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("connection opened",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("connection closed",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until an interrupt or ctx is done.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.logger.Error("server error", "err", err)
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// OptionsFromConfig derives play screen options from the game config.
func OptionsFromConfig(cfg config.GameConfig) Options {
	return Options{
		Title:         cfg.UI.Title,
		Author:        cfg.UI.Author,
		Density:       cfg.Display.Density,
		IconSize:      cfg.Display.IconSize,
		DragStep:      cfg.Timing.DragStep,
		ToastDuration: max(cfg.Timing.ResultDelay(), DefaultToastDuration),
	}
}
