package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"remi/internal/bravia"
)

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "List the IRCC codes the TV supports",
	Long: `Fetch and list the remote-controller info from the TV: every command
name it understands together with the opaque IRCC code behind it.
This works without pairing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := targetConfig()
		if err != nil {
			return err
		}

		client := bravia.NewClient(cfg, bravia.WithDebug(debugFlag))
		codes, err := client.CommandCodes()
		if err != nil {
			return err
		}

		names := make([]string, 0, len(codes))
		for name := range codes {
			names = append(names, string(name))
		}
		sort.Strings(names)

		for _, name := range names {
			fmt.Printf("%-24s %s\n", name, codes[bravia.Command(name)])
		}
		return nil
	},
}

func init() {
	addTargetFlags(codesCmd)
	rootCmd.AddCommand(codesCmd)
}
