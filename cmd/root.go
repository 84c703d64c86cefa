package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"remi/internal/config"
	"remi/internal/logger"
)

var (
	debugFlag  bool
	configPath string
	log        = logger.New()
)

var rootCmd = &cobra.Command{
	Use:   "remi",
	Short: "Remi - remote control for Sony Bravia TVs",
	Long: `Remi pairs with Sony Bravia TVs over the local network and sends
remote-control commands to them. Paired TVs are remembered in a device
registry so later commands need no flags.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugFlag {
			logger.SetSilentMode(false)
			logger.SetLevel("debug")
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "Enable debug logging for HTTP requests")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the device registry file")
}

// loadRegistry reads the device registry from the configured path
func loadRegistry() (*config.Registry, error) {
	registry, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load device registry: %w", err)
	}
	return registry, nil
}
