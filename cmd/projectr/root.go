package main

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	cfg    = viper.New()

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "projectr",
	Short: "Pack a project directory into a single text container",
	Long: `projectr packs a directory tree of source files into one human-readable
text container, and unpacks such containers back into a directory tree.

Configuration is read from an optional projectr.yaml in the working
directory and from PROJECTR_* environment variables; command-line flags
take precedence over both.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
		initConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
	rootCmd.AddCommand(packCmd, unpackCmd, tocCmd)
}

// initConfig wires the optional projectr.yaml and PROJECTR_* environment
// variables into cfg. A missing config file is not an error.
func initConfig() {
	cfg.SetConfigName("projectr")
	cfg.SetConfigType("yaml")
	cfg.AddConfigPath(".")
	cfg.SetEnvPrefix("PROJECTR")
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()

	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			logger.Warn("ignoring unreadable config file", "err", err)
		}
		return
	}
	logger.Debug("loaded config", "file", cfg.ConfigFileUsed())
}
