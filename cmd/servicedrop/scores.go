package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/service-drop/internal/platform/tui"
	"github.com/vovakirdan/service-drop/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTUI   bool
	flagScoresClear bool
	flagRounds      int
	flagSession     string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the scoreboard",
	Long: `Display the best sessions and totals across all sessions.

Examples:
  servicedrop scores
  servicedrop scores --limit 25
  servicedrop scores --tui
  servicedrop scores --rounds 20
  servicedrop scores --rounds 10 --session alice-1700000000
  servicedrop scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of sessions to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all recorded sessions and rounds")
	scoresCmd.Flags().IntVar(&flagRounds, "rounds", 0, "Show the latest N recorded rounds instead of the scoreboard")
	scoresCmd.Flags().StringVar(&flagSession, "session", "", "Limit --rounds to one session ID")
}

func runScores(cmd *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatalf("opening scores database: %v", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagScoresClear {
		if err := store.ClearScores(); err != nil {
			fatalf("%v", err)
		}
		fmt.Fprintln(out, "Scores cleared.")
		return
	}

	if flagScoresTUI {
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, width, height); err != nil {
			fatalf("%v", err)
		}
		return
	}

	if flagRounds > 0 {
		if err := printRounds(out, store, flagSession, flagRounds); err != nil {
			fatalf("%v", err)
		}
		return
	}

	if err := printScores(out, store, flagScoresLimit); err != nil {
		fatalf("%v", err)
	}
}

func printScores(out io.Writer, store *storage.Store, limit int) error {
	scores, err := store.TopScores(limit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintln(out, "High Scores - Service Drop")
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'servicedrop play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-14s  %-6s  %-10s  %s\n", "Rank", "Player", "Score", "C/W/M", "Date")
	fmt.Fprintf(out, "  %-4s  %-14s  %-6s  %-10s  %s\n", "----", "------", "-----", "-----", "----")

	for i, e := range scores {
		cwm := fmt.Sprintf("%d/%d/%d", e.Correct, e.Wrong, e.Misses)
		fmt.Fprintf(out, "  %-4d  %-14s  %-6d  %-10s  %s\n", i+1, e.Player, e.Score, cwm, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats()
	if err != nil {
		return nil
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Best: %d   Sessions: %d   Average: %.1f   Accuracy: %.0f%%\n",
		stats.HighScore, stats.Sessions, stats.AvgScore, 100*stats.Accuracy())
	return nil
}

// printRounds lists recorded outcomes, newest first.
func printRounds(out io.Writer, store *storage.Store, sessionID string, limit int) error {
	rounds, err := store.RecentRounds(sessionID, limit)
	if err != nil {
		return fmt.Errorf("retrieving rounds: %w", err)
	}

	fmt.Fprintln(out, "Recent Rounds - Service Drop")
	fmt.Fprintln(out)

	if len(rounds) == 0 {
		fmt.Fprintln(out, "No rounds recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "  %-20s  %-5s  %-4s  %-20s  %-14s  %-5s  %s\n", "Session", "Round", "Kind", "Service", "Zone", "Delta", "Score")
	fmt.Fprintf(out, "  %-20s  %-5s  %-4s  %-20s  %-14s  %-5s  %s\n", "-------", "-----", "----", "-------", "----", "-----", "-----")

	for _, r := range rounds {
		zone := r.ZoneRole
		if zone == "" {
			zone = "-"
		}
		fmt.Fprintf(out, "  %-20s  %-5d  %-4s  %-20s  %-14s  %+-5d  %d\n",
			r.SessionID, r.Round, r.Kind, r.ServiceID, zone, r.Delta, r.Score)
	}
	return nil
}
