// servicedrop is a terminal sorting game: services fall from the top of the
// screen and the player drags each one into the zone of the role it serves.
//
// Usage:
//
//	servicedrop play         - Play in the local terminal
//	servicedrop serve        - Start SSH server for remote play
//	servicedrop scores       - Show the best sessions and totals
//	servicedrop simulate     - Run the game headless with a scripted drag
//	servicedrop config       - Print the effective configuration
//
// Global flags:
//
//	--config <path>      - Custom config YAML
//	--difficulty <name>  - easy, normal or hard
//	--seed <value>       - Set RNG seed for reproducible service order
//	--db <path>          - Set database path (default: ~/.servicedrop/scores.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file instead of stderr
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagLogFile    string
	flagEnvFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "servicedrop",
	Short: "Service Drop - sort falling services into the right role zone",
	Long: `Service Drop is a terminal game. A service icon falls from the top of
the screen; drag it sideways into the zone of the role it serves before it
reaches the bottom. Correct catches score, wrong zones cost a point.

Available commands:
  play      - Play in this terminal
  serve     - Start SSH server for remote play
  scores    - View the scoreboard
  simulate  - Headless run for checking timing and geometry
  config    - Print the effective config as YAML

Examples:
  servicedrop play
  servicedrop play --difficulty hard
  servicedrop serve --ssh :2222
  servicedrop scores --limit 20
  servicedrop simulate --width 1000 --height 2000 --drag -350`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.servicedrop/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Dotenv file with SERVICEDROP_* overrides")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}
