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
	Use:   "chatprobe",
	Short: "chatprobe - interactive debugger for chat-completion APIs",
	Long: `chatprobe is an interactive command-line debugger for OpenAI-compatible
chat-completion endpoints. It sends messages, shows conversation history,
and prints raw HTTP responses verbatim.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
