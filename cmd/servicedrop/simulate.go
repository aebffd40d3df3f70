package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/service-drop/internal/core"
	"github.com/vovakirdan/service-drop/internal/game"
)

var (
	flagSimWidth   int
	flagSimHeight  int
	flagSimDensity float64
	flagSimTicks   int
	flagSimRounds  int
	flagSimDrag    int
	flagSimVerbose bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the game headless with a scripted drag",
	Long: `Run the game without a terminal UI. Ticks are stepped back to back,
so the result delay is skipped and each outcome is followed by an
immediate reset.

At the start of every round the icon is dragged by --drag pixels.

Examples:
  servicedrop simulate --width 1000 --height 2000           # Straight drop, misses at tick 85
  servicedrop simulate --width 1000 --height 2000 --drag -350 --rounds 5
  servicedrop simulate --seed 7 --rounds 20`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimWidth, "width", 1080, "Screen width in pixels")
	simulateCmd.Flags().IntVar(&flagSimHeight, "height", 2400, "Screen height in pixels")
	simulateCmd.Flags().Float64Var(&flagSimDensity, "density", 1, "Pixels per density-independent unit")
	simulateCmd.Flags().IntVar(&flagSimTicks, "ticks", 10000, "Maximum number of ticks")
	simulateCmd.Flags().IntVar(&flagSimRounds, "rounds", 1, "Stop after this many outcomes")
	simulateCmd.Flags().IntVar(&flagSimDrag, "drag", 0, "Horizontal drag in pixels applied at the start of each round")
	simulateCmd.Flags().BoolVarP(&flagSimVerbose, "verbose", "v", false, "Print the icon position every tick")
}

func runSimulate(_ *cobra.Command, _ []string) {
	cfg, err := loadGameConfig()
	if err != nil {
		fatalf("%v", err)
	}

	logger, closeLog, err := newLogger("servicedrop-sim", os.Stderr)
	if err != nil {
		fatalf("%v", err)
	}
	defer closeLog()

	g, err := game.New(cfg, newRand())
	if err != nil {
		fatalf("%v", err)
	}

	display := core.Display{Width: flagSimWidth, Height: flagSimHeight, Density: flagSimDensity}
	if err := g.SetDisplay(display); err != nil {
		fatalf("%v", err)
	}

	d := g.Display()
	fmt.Printf("Screen: %s, icon %d px, drop step %d px\n", d, d.IconSize, cfg.Timing.DropStep)
	for _, z := range g.Zones() {
		fmt.Printf("  zone %-11s %-16s [%d,%d %d,%d]\n", z.ID, z.Role.Label,
			z.Rect.Left(), z.Rect.Top(), z.Rect.Right(), z.Rect.Bottom())
	}
	fmt.Println()

	outcomes := 0
	roundStart := true
	for tick := 1; tick <= flagSimTicks && outcomes < flagSimRounds; tick++ {
		if roundStart {
			g.ApplyDrag(flagSimDrag)
			logger.Debug("round started", "round", g.Stats().Rounds, "service", g.Icon().Service.ID, "x", g.Icon().X)
			roundStart = false
		}

		o, fired := g.Step()
		if flagSimVerbose {
			icon := g.Icon()
			fmt.Printf("tick %5d  x=%d y=%d\n", tick, icon.X, icon.Y)
		}
		if !fired {
			continue
		}

		outcomes++
		fmt.Printf("tick %5d  round %d  %-4s  y=%d  %s  (score %d)\n",
			tick, o.Round, o.Kind, g.Icon().Y, o.Message, o.Score)

		g.Reset()
		roundStart = true
	}

	stats := g.Stats()
	fmt.Println()
	fmt.Printf("Score: %d  ticks %d  hits %d  misses %d  correct %d  wrong %d\n",
		g.Score(), stats.Ticks, stats.Hits, stats.Misses, stats.Correct, stats.Wrong)
}
