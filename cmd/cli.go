package cmd

import (
	"github.com/spf13/cobra"

	"remi/cmd/cli"
	"remi/internal/logger"
)

var cliCmd = &cobra.Command{
	Use:   "cli",
	Short: "Start the interactive remote-control interface",
	Long: `Launch the interactive Terminal User Interface (TUI) for Remi.
It walks through pairing with a TV and then presents an on-screen
remote control.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The TUI owns the terminal; keep log output away from it
		// unless debugging.
		if debugFlag {
			logger.SetSilentMode(false)
			logger.SetLevel("debug")
		} else {
			logger.SetSilentMode(true)
		}

		log.Info().
			Bool("debug", debugFlag).
			Msg("Starting Remi CLI interface")

		if err := cli.StartTUI(debugFlag, configPath); err != nil {
			log.Error().Err(err).Msg("Failed to start TUI")
			return err
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(cliCmd)
}
