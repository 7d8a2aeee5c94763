/*
Copyright © 2025 KJ5DTV
*/
package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	cncport "github.com/kj5dtv/hub4port"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	runSource   string
	runReplicas []string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run hub4com to replicate a port",
	Long: `Run hub4com, replicating a source port to one or more replica ports.

The hub4com output is streamed until the process exits or Ctrl+C is
pressed. The hub4com path and baud rate default to the configuration
(hub4com_path, baud) and can be overridden per invocation.

Examples:
  hub4port run --source COM3 --replica COM5
  hub4port run -s COM3 -r COM5 -r COM7 --baud 9600`,
	Run: func(cmd *cobra.Command, args []string) {
		relay := cncport.RelayCommand{
			ExePath:  viper.GetString("hub4com_path"),
			Baud:     viper.GetInt("baud"),
			Source:   strings.ToUpper(runSource),
			Replicas: upperAll(runReplicas),
		}
		if relay.Baud <= 0 {
			fmt.Fprintf(os.Stderr, "Invalid baud rate: %d\n", relay.Baud)
			os.Exit(1)
		}

		cmdline := relay.Args()
		fmt.Println(strings.Join(cmdline, " "))

		if err := streamRelay(cmdline); err != nil {
			fmt.Fprintf(os.Stderr, "hub4com failed: %v\n", err)
			os.Exit(1)
		}
	},
}

// streamRelay launches the relay process and streams its combined
// stdout/stderr line by line until it exits or is interrupted
func streamRelay(cmdline []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		fmt.Println("\nStopping hub4com...")
		cancel()
	}()

	proc := exec.CommandContext(ctx, cmdline[0], cmdline[1:]...)

	pr, pw := io.Pipe()
	proc.Stdout = pw
	proc.Stderr = pw

	if err := proc.Start(); err != nil {
		return err
	}
	fmt.Println("hub4com process started")

	done := make(chan error, 1)
	go func() {
		err := proc.Wait()
		pw.Close()
		done <- err
	}()

	scanner := bufio.NewScanner(pr)
	for scanner.Scan() {
		fmt.Println(scanner.Text())
	}

	err := <-done
	fmt.Println("hub4com process terminated")
	if ctx.Err() != nil {
		// Terminated on request; not a failure
		return nil
	}
	return err
}

func upperAll(names []string) []string {
	upper := make([]string, len(names))
	for i, name := range names {
		upper[i] = strings.ToUpper(name)
	}
	return upper
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runSource, "source", "s", "", "Source port to replicate (e.g. COM3)")
	runCmd.Flags().StringSliceVarP(&runReplicas, "replica", "r", nil, "Replica port (repeatable)")
	runCmd.Flags().Int("baud", defaultBaud, "Baud rate")
	runCmd.Flags().String("hub4com", defaultHub4ComPath, "Path to the hub4com executable")

	runCmd.MarkFlagRequired("source")
	runCmd.MarkFlagRequired("replica")

	viper.BindPFlag("baud", runCmd.Flags().Lookup("baud"))
	viper.BindPFlag("hub4com_path", runCmd.Flags().Lookup("hub4com"))
}
