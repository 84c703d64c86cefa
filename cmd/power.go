package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"remi/internal/bravia"
)

var powerCmd = &cobra.Command{
	Use:   "power",
	Short: "Show whether the TV is turned on",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := targetConfig()
		if err != nil {
			return err
		}

		// Power status needs no pairing
		client := bravia.NewClient(cfg, bravia.WithDebug(debugFlag))
		on, err := client.IsOn()
		if err != nil {
			return err
		}

		if on {
			fmt.Println("on")
		} else {
			fmt.Println("off")
		}
		return nil
	},
}

func init() {
	addTargetFlags(powerCmd)
	rootCmd.AddCommand(powerCmd)
}
