/*
Copyright © 2025 KJ5DTV
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// defaultHub4ComPath is where the com0com suite installs hub4com
const defaultHub4ComPath = `C:\Program Files (x86)\com0com\hub4com.exe`

const defaultBaud = 115200

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hub4port",
	Short: "Replicate a physical serial port to com0com virtual ports",
	Long: `hub4port is a CLI wrapper around the hub4com utility, part of the
com0com null-modem emulator suite by Vyacheslav Frolov.

It discovers physical COM ports and com0com virtual port pairs, shows
which are free, and runs hub4com to replicate data from a chosen
physical port to one or more virtual ports.

Download and configure com0com from https://com0com.sourceforge.net/.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hub4port.yaml)")

	viper.SetDefault("hub4com_path", defaultHub4ComPath)
	viper.SetDefault("baud", defaultBaud)
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".hub4port")
	}

	viper.SetEnvPrefix("hub4port")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
