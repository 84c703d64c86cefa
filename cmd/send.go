package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"remi/internal/bravia"
)

var sendRepeat int

var sendCmd = &cobra.Command{
	Use:   "send [command]",
	Short: "Send a remote-control command to the TV",
	Long: `Send a remote-control command to a paired TV.
Volume commands accept --repeat to press the button several times;
other commands are sent once. Run 'remi send list' for the available
command names.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == "list" {
			printCommandList()
			return nil
		}

		command, exists := commandAliases[args[0]]
		if !exists {
			// Fall back to the raw name the TV reports,
			// e.g. "Num1" or "Tv"
			command = bravia.Command(args[0])
		}

		tv, err := connectTarget()
		if err != nil {
			return err
		}

		log.Info().
			Str("command", string(command)).
			Msg("Sending remote-control command")

		switch command {
		case bravia.CommandVolumeUp:
			err = tv.VolumeUp(sendRepeat)
		case bravia.CommandVolumeDown:
			err = tv.VolumeDown(sendRepeat)
		default:
			err = tv.SendCommand(command)
		}
		if err != nil {
			return err
		}

		log.Info().Msg("Command sent successfully")
		return nil
	},
}

func printCommandList() {
	names := make([]string, 0, len(commandAliases))
	for name := range commandAliases {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Available commands:")
	fmt.Println("  " + strings.Join(names, ", "))
	fmt.Println("\nAny other name is sent verbatim; see 'remi codes' for what the TV supports.")
}

func init() {
	addTargetFlags(sendCmd)
	sendCmd.Flags().IntVarP(&sendRepeat, "repeat", "r", 0,
		fmt.Sprintf("Repeat count for volume commands (default %d)", bravia.DefaultVolumeSteps))

	rootCmd.AddCommand(sendCmd)
}
