/*
Copyright © 2025 KJ5DTV
*/
package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	cncport "github.com/kj5dtv/hub4port"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List physical and CNC serial ports",
	Long: `List all healthy serial-port devices on the system.

Devices are classified into:
- Physical ports (real hardware COM ports)
- CNC ports (com0com virtual null-modem endpoints)

CNC bus controllers are shown only with --buses.`,
	Run: func(cmd *cobra.Command, args []string) {
		ports, err := cncport.Enumerate()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error enumerating ports: %v\n", err)
			os.Exit(1)
		}

		tableFormat, _ := cmd.Flags().GetBool("table")
		showBuses, _ := cmd.Flags().GetBool("buses")

		rows := collectRows(ports)
		if len(rows) == 0 {
			fmt.Println("No serial ports found")
			return
		}

		// The engine guarantees no ordering; sort for display
		sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })

		if tableFormat {
			renderTable(rows)
		} else {
			renderSimple(rows)
		}

		if showBuses {
			fmt.Println()
			for _, bus := range ports.Buses() {
				fmt.Printf("bus %s\n", bus.InstanceID())
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("table", "t", false, "Display output in a styled table format")
	listCmd.Flags().BoolP("buses", "b", false, "Also list CNC bus controllers")
}

type portRow struct {
	name        string
	kind        string
	description string
	status      string
}

func collectRows(ports *cncport.PortSet) []portRow {
	var rows []portRow

	for _, p := range ports.PhysicalPorts() {
		rows = append(rows, portRow{
			name:        displayName(p.PortName()),
			kind:        "Physical",
			description: p.Description(),
			status:      statusText(p.InUse()),
		})
	}

	for _, p := range ports.CNCPorts() {
		kind := "CNC secondary"
		if p.IsPrimary() {
			kind = "CNC primary"
		}
		rows = append(rows, portRow{
			name:        displayName(p.PortName()),
			kind:        kind,
			description: p.PortID(),
			status:      statusText(p.InUse()),
		})
	}
	return rows
}

func displayName(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}

func statusText(busy bool, err error) string {
	switch {
	case err != nil:
		return "unknown"
	case busy:
		return "in use"
	default:
		return "not in use"
	}
}

// renderTable renders the port list in a styled static table format
func renderTable(rows []portRow) {
	fmt.Printf("Found %d serial port(s):\n\n", len(rows))

	nameWidth := 12
	kindWidth := 15
	descWidth := 34
	statusWidth := 12

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("240")).
		PaddingBottom(1)

	cellStyle := lipgloss.NewStyle().
		PaddingRight(2)

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s",
		nameWidth, "Port",
		kindWidth, "Kind",
		descWidth, "Description",
		statusWidth, "Status")
	fmt.Println(headerStyle.Render(header))

	for _, row := range rows {
		line := fmt.Sprintf("%-*s %-*s %-*s %-*s",
			nameWidth, row.name,
			kindWidth, row.kind,
			descWidth, row.description,
			statusWidth, row.status)
		fmt.Println(cellStyle.Render(line))
	}
}

// renderSimple renders the port list in simple text format
func renderSimple(rows []portRow) {
	for _, row := range rows {
		fmt.Printf("%s\t%s\t%s\n", row.name, row.kind, row.status)
	}
}
