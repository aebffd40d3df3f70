package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/service-drop/internal/core"
	"github.com/vovakirdan/service-drop/internal/game"
	"github.com/vovakirdan/service-drop/internal/platform/tui"
	"github.com/vovakirdan/service-drop/internal/session"
	"github.com/vovakirdan/service-drop/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

The terminal size is read once when the game starts and fixes the play area.
Each column is worth display.density pixels and each row twice that.

Controls:
  Mouse drag     - Move the falling service sideways
  Left/Right A/D - Nudge by timing.drag_step pixels
  R              - Restart (score back to zero)
  Tab            - Scoreboard
  Q/Ctrl+C       - Quit

Examples:
  servicedrop play
  servicedrop play --difficulty easy
  servicedrop play --seed 42 --config ./my-servicedrop.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		fatalf("play needs an interactive terminal")
	}

	cfg, err := loadGameConfig()
	if err != nil {
		fatalf("%v", err)
	}

	// Fail early on a terminal that can never fit the zones
	if w, h, termErr := term.GetSize(fd); termErr == nil {
		d := tui.NewLayout(w, h, cfg.Display.Density).Display(cfg.Display.IconSize)
		if err := d.Validate(); errors.Is(err, core.ErrDisplayTooSmall) {
			fatalf("terminal %dx%d is too small (%s, need %d px each way); enlarge the window or lower display.icon_size",
				w, h, d, 2*cfg.Display.IconSize)
		}
	}

	logger, closeLog, err := newLogger("servicedrop", io.Discard)
	if err != nil {
		fatalf("%v", err)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	g, err := game.New(cfg, newRand())
	if err != nil {
		fatalf("%v", err)
	}

	player := currentUser()
	opts := session.Options{
		ID:           sessionID(player),
		Player:       player,
		TickInterval: cfg.Timing.TickInterval(),
		ResultDelay:  cfg.Timing.ResultDelay(),
		Logger:       logger,
	}
	if store != nil {
		opts.Recorder = store
	}
	sess := session.New(g, opts)

	best, hasBest := 0, false
	if store != nil {
		if high, err := store.HighScore(); err == nil {
			best, hasBest = high, true
		}
	}

	runErr := tui.Run(cmd.Context(), sess, store, tui.OptionsFromConfig(cfg))

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fatalf("running game: %v", runErr)
	}

	summary := sess.Summary()
	fmt.Printf("Final score: %d  (%d correct, %d wrong, %d missed)\n",
		summary.Score, summary.Stats.Correct, summary.Stats.Wrong, summary.Stats.Misses)
	if hasBest && summary.Stats.Hits > 0 && summary.Score > best {
		fmt.Printf("New high score! Previous best was %d.\n", best)
	}
	if store != nil && summary.Stats.Ticks > 0 {
		fmt.Printf("Rounds: servicedrop scores --rounds %d --session %s\n", max(summary.Stats.Rounds, 1), sess.ID())
	}
}
