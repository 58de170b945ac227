package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/probekit/chatprobe/internal/catalog"
	"github.com/probekit/chatprobe/internal/core"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models advertised by the endpoint",
	RunE:  runModels,
}

var (
	modelsBaseURL     string
	modelsAPIToken    string
	modelsAPITokenEnv string
)

func init() {
	rootCmd.AddCommand(modelsCmd)

	modelsCmd.Flags().StringVar(&modelsBaseURL, "base-url", "", "API root URL (derived from endpoint.url when omitted)")
	modelsCmd.Flags().StringVar(&modelsAPIToken, "api-token", "", "API token (falls back to --api-token-env)")
	modelsCmd.Flags().StringVar(&modelsAPITokenEnv, "api-token-env", "OPENAI_API_KEY", "Env var used when --api-token is not provided")
}

func runModels(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	f := cmd.Flags()
	if f.Changed("api-token") {
		cfg.Endpoint.APIToken = modelsAPIToken
	}
	if f.Changed("api-token-env") {
		cfg.Endpoint.APITokenEnv = modelsAPITokenEnv
	}

	baseURL := modelsBaseURL
	if baseURL == "" && cfg.Endpoint.URL != "" {
		baseURL = strings.TrimSuffix(cfg.Endpoint.URL, "/chat/completions")
	}
	if baseURL == "" {
		return core.WrapError(core.ErrConfigInvalid, fmt.Errorf("base URL required, use --base-url"))
	}

	token, err := resolveToken(cfg)
	if err != nil {
		return err
	}

	client := catalog.New(baseURL, token, cfg.Endpoint.Timeout)
	ids, err := client.Models(context.Background())
	if err != nil {
		return err
	}

	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}
