package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/service-drop/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration the game would run with, after the config file,
.env, SERVICEDROP_* environment variables and the difficulty preset are applied.

Save the output to ~/.servicedrop/configs/servicedrop.yaml or
./configs/servicedrop.yaml to customize it.

Examples:
  servicedrop config
  servicedrop config --difficulty hard
  servicedrop config --defaults > configs/servicedrop.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults instead")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefaults {
		//nolint:errcheck // Best-effort write to stdout
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := loadGameConfig()
	if err != nil {
		fatalf("%v", err)
	}

	out, err := config.Marshal(cfg)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Print(string(out))
}
