package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var transcriptsCmd = &cobra.Command{
	Use:   "transcripts",
	Short: "Transcript archive operations",
}

var transcriptsListCmd = &cobra.Command{
	Use:   "list [prefix]",
	Short: "List archived transcripts",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTranscriptsList,
}

var transcriptsShowCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Print an archived transcript",
	Args:  cobra.ExactArgs(1),
	RunE:  runTranscriptsShow,
}

func init() {
	rootCmd.AddCommand(transcriptsCmd)
	transcriptsCmd.AddCommand(transcriptsListCmd)
	transcriptsCmd.AddCommand(transcriptsShowCmd)
}

func runTranscriptsList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	archiver, err := buildArchiver(cfg)
	if err != nil {
		return err
	}

	prefix := ""
	if len(args) == 1 {
		prefix = args[0]
	}

	keys, err := archiver.List(context.Background(), prefix)
	if err != nil {
		return fmt.Errorf("listing transcripts: %w", err)
	}
	for _, key := range keys {
		fmt.Println(key)
	}
	return nil
}

func runTranscriptsShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	archiver, err := buildArchiver(cfg)
	if err != nil {
		return err
	}

	data, err := archiver.Read(context.Background(), args[0])
	if err != nil {
		return fmt.Errorf("reading transcript: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
