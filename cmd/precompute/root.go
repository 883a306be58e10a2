package main

import (
	"log/slog"

	"github.com/phrazzld/wordle-solver-api/internal/platform/logger"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "precompute",
		Short: "Build feedback tables and the starter cache for the Wordle solver",
		Long: `Precompute generates the data the solver server loads lazily at runtime.

The tables command scores every guess in a word list against every secret and
writes one feedback table per guess, either as files or into a badger
database. The starter command ranks the full word list once and stores the
best opening guesses.`,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if *debugLogging {
			level = slog.LevelDebug
		}
		slog.SetDefault(logger.New(cmd.ErrOrStderr(), level))
	}

	cmd.AddCommand(newTablesCommand())
	cmd.AddCommand(newStarterCommand())

	return cmd
}

func execute() error {
	return newRootCommand().Execute()
}

