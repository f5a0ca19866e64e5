package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/arcanaland/tabletop/internal/config"
	"github.com/arcanaland/tabletop/internal/logging"
)

var logLevel string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "tabletop",
	Short: "Tool for managing and playtesting card game decks",
	Long: `Tabletop is a command-line tool for managing deck lists and playtesting them.
It keeps a library of deck lists, validates them, and plays out draws,
discards and reshuffles against a library, hand and graveyard.`,
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// newLogger builds the command logger from the flag, falling back to the config.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*log.Logger, error) {
	level := logLevel
	if level == "" && cfg != nil {
		level = cfg.LogLevel
	}
	return logging.New(cmd.ErrOrStderr(), level)
}
