package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"remi/internal/bravia"
	"remi/internal/config"
)

var (
	pairHost       string
	pairDeviceName string
	pairName       string
)

var pairCmd = &cobra.Command{
	Use:   "pair",
	Short: "Pair with a TV on the local network",
	Long: `Pair with a Sony Bravia TV. When the TV has not seen this controller
before it displays a pairing code on its screen; enter it when prompted.
The paired TV is saved to the device registry.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := bravia.NewConfig(pairHost, pairDeviceName)

		log.Info().
			Str("host", pairHost).
			Str("device_name", pairDeviceName).
			Msg("Pairing with TV")

		tv, err := bravia.Connect(cfg, promptPincode, bravia.WithDebug(debugFlag))
		if err != nil {
			return err
		}

		name := pairName
		if name == "" {
			name = pairHost
		}

		registry, err := loadRegistry()
		if err != nil {
			return err
		}

		device := config.NewDevice(name, pairHost, pairDeviceName)
		device.Credential = tv.Credential()
		registry.Upsert(device)

		if err := registry.Save(configPath); err != nil {
			return err
		}

		fmt.Printf("Paired with %s (%d commands available), saved as %q\n",
			pairHost, len(tv.Codes()), name)
		return nil
	},
}

// promptPincode asks the user for the pairing code the TV is showing.
// The code is read without echo when stdin is a terminal.
func promptPincode() (string, error) {
	fmt.Fprint(os.Stderr, "Enter the pairing code shown on the TV: ")

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		code, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read pairing code: %w", err)
		}
		return strings.TrimSpace(string(code)), nil
	}

	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read pairing code: %w", err)
	}
	return strings.TrimSpace(code), nil
}

func init() {
	pairCmd.Flags().StringVarP(&pairHost, "host", "H", "", "TV host address (IP or IP:Port)")
	pairCmd.Flags().StringVarP(&pairDeviceName, "name", "n", "remi", "Controller name registered at the TV")
	pairCmd.Flags().StringVar(&pairName, "save-as", "", "Friendly name for the registry entry (defaults to the host)")
	pairCmd.MarkFlagRequired("host")

	rootCmd.AddCommand(pairCmd)
}
