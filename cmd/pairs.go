/*
Copyright © 2025 KJ5DTV
*/
package cmd

import (
	"fmt"
	"os"
	"sort"

	cncport "github.com/kj5dtv/hub4port"
	"github.com/spf13/cobra"
)

// pairsCmd represents the pairs command
var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "List com0com port pairs",
	Long: `List reconstructed com0com port pairs.

Each line shows a primary CNC port and the secondary port it replicates
to. Primary ports whose secondary endpoint is missing from the current
device topology are not shown.`,
	Run: func(cmd *cobra.Command, args []string) {
		ports, err := cncport.Enumerate()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error enumerating ports: %v\n", err)
			os.Exit(1)
		}

		pairs := ports.Pairs()
		if len(pairs) == 0 {
			fmt.Println("No CNC port pairs found")
			return
		}

		sort.Slice(pairs, func(i, j int) bool {
			return pairs[i].Primary.PortName() < pairs[j].Primary.PortName()
		})

		for _, pair := range pairs {
			fmt.Printf("%s (replicates to %s) - %s\n",
				displayName(pair.Primary.PortName()),
				displayName(pair.Secondary.PortName()),
				statusText(pair.Primary.InUse()))
		}
	},
}

func init() {
	rootCmd.AddCommand(pairsCmd)
}
