/*
Copyright © 2025 KJ5DTV
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	cncport "github.com/kj5dtv/hub4port"
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status <port>",
	Short: "Check whether a port is in use",
	Long: `Check whether a named port is currently held open by another process.

The port is probed with a non-destructive exclusive open/close.

Examples:
  hub4port status COM3
  hub4port status COM5`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := strings.ToUpper(args[0])

		ports, err := cncport.Enumerate()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error enumerating ports: %v\n", err)
			os.Exit(1)
		}

		busy, err, found := findAndProbe(ports, name)
		if !found {
			fmt.Fprintf(os.Stderr, "Port %s not found\n", name)
			os.Exit(1)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error probing %s: %v\n", name, err)
			os.Exit(1)
		}

		fmt.Printf("%s is %s\n", name, statusText(busy, nil))
	},
}

func findAndProbe(ports *cncport.PortSet, name string) (busy bool, err error, found bool) {
	for _, p := range ports.PhysicalPorts() {
		if p.PortName() == name {
			busy, err = p.InUse()
			return busy, err, true
		}
	}
	for _, p := range ports.CNCPorts() {
		if p.PortName() == name {
			busy, err = p.InUse()
			return busy, err, true
		}
	}
	return false, nil, false
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
