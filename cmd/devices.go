package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Manage paired TVs in the device registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := loadRegistry()
		if err != nil {
			return err
		}

		if len(registry.Devices) == 0 {
			fmt.Println("No paired devices. Run 'remi pair --host <ip>' first.")
			return nil
		}

		for _, device := range registry.Devices {
			paired := " "
			if device.Credential != "" {
				paired = "*"
			}
			fmt.Printf("%s %-20s %-20s %s\n", paired, device.Name, device.Host, device.ID)
		}
		return nil
	},
}

var devicesRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove a TV from the device registry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := loadRegistry()
		if err != nil {
			return err
		}

		if err := registry.Remove(args[0]); err != nil {
			return err
		}

		if err := registry.Save(configPath); err != nil {
			return err
		}

		fmt.Printf("Removed %s\n", args[0])
		return nil
	},
}

func init() {
	devicesCmd.AddCommand(devicesRemoveCmd)
	rootCmd.AddCommand(devicesCmd)
}
