package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var (
	flagConfigFormat   string
	flagConfigDefaults bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game config",
	Long: `Print the game config after the search order and the difficulty preset
have been applied. The output can be saved and passed back with --config.

Examples:
  flappy config
  flappy config --difficulty hard --format toml > flappy.toml
  flappy config --defaults`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigFormat, "format", "yaml", "Output format: yaml or toml")
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the embedded default config unchanged")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigDefaults && flagConfigFormat == "yaml" {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	var cfg config.FlappyConfig
	if flagConfigDefaults {
		cfg = config.DefaultFlappyConfig()
	} else {
		var err error
		cfg, err = loadConfig(parseDifficulty())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	switch flagConfigFormat {
	case "yaml", "yml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
			os.Exit(1)
		}
		enc.Close()
	case "toml":
		if err := toml.NewEncoder(os.Stdout).Encode(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q (want yaml or toml)\n", flagConfigFormat)
		os.Exit(1)
	}
}
