package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "ichimoku",
	Short: "Ichimoku signal dashboard",
	Long: `ichimoku serves a read-only dashboard over the Ichimoku Kinko Hyo
analysis snapshot produced by the scheduled analyzer. It covers crypto
and forex instruments, with optional AI commentary per instrument.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
