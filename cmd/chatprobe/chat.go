package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/probekit/chatprobe/internal/archive"
	"github.com/probekit/chatprobe/internal/chat"
	"github.com/probekit/chatprobe/internal/config"
	"github.com/probekit/chatprobe/internal/core"
	"github.com/probekit/chatprobe/internal/logger"
	"github.com/probekit/chatprobe/internal/transport"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive debugging session",
	RunE:  runChat,
}

var (
	chatURL             string
	chatModel           string
	chatAPIToken        string
	chatAPITokenEnv     string
	chatTemperature     float64
	chatTopP            float64
	chatTopK            int
	chatMaxTokens       int
	chatReasoningEffort string
	chatExtraParams     string
	chatTimeout         time.Duration
	chatInitialInput    string
	chatNoArchive       bool
)

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringVar(&chatURL, "url", "", "Full chat/completions endpoint URL")
	chatCmd.Flags().StringVar(&chatModel, "model", "", "Model name to send in payload")
	chatCmd.Flags().StringVar(&chatAPIToken, "api-token", "", "API token (falls back to --api-token-env)")
	chatCmd.Flags().StringVar(&chatAPITokenEnv, "api-token-env", "OPENAI_API_KEY", "Env var used when --api-token is not provided")
	chatCmd.Flags().Float64Var(&chatTemperature, "temperature", 0.7, "Sampling temperature")
	chatCmd.Flags().Float64Var(&chatTopP, "top-p", 1.0, "Nucleus sampling probability")
	chatCmd.Flags().IntVar(&chatTopK, "top-k", 0, "Provider-specific top_k (0 omits it)")
	chatCmd.Flags().IntVar(&chatMaxTokens, "max-tokens", 512, "Maximum completion tokens")
	chatCmd.Flags().StringVar(&chatReasoningEffort, "reasoning-effort", "", "Provider-specific reasoning effort (low, medium, high)")
	chatCmd.Flags().StringVar(&chatExtraParams, "extra-params", "", "JSON object merged into every request payload")
	chatCmd.Flags().DurationVar(&chatTimeout, "timeout", 60*time.Second, "Per-request timeout")
	chatCmd.Flags().StringVar(&chatInitialInput, "initial-input", "", "Message sent before entering interactive mode")
	chatCmd.Flags().BoolVar(&chatNoArchive, "no-archive", false, "Disable the /save transcript archive")
}

func runChat(cmd *cobra.Command, args []string) error {
	// A .env alongside the invocation is a convenience for tokens; absence
	// is not an error.
	_ = godotenv.Load()

	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyChatFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Endpoint.URL == "" {
		return core.WrapError(core.ErrConfigInvalid, fmt.Errorf("endpoint URL required, use --url"))
	}
	if cfg.Request.Model == "" {
		return core.WrapError(core.ErrConfigInvalid, fmt.Errorf("model required, use --model"))
	}

	token, err := resolveToken(cfg)
	if err != nil {
		return err
	}

	extra, err := config.ParseExtraParams(cfg.Request.ExtraParams)
	if err != nil {
		return err
	}

	params := chat.Params{
		Model:           cfg.Request.Model,
		Temperature:     cfg.Request.Temperature,
		TopP:            cfg.Request.TopP,
		MaxTokens:       cfg.Request.MaxTokens,
		ReasoningEffort: cfg.Request.ReasoningEffort,
		Extra:           extra,
	}
	if cfg.Request.TopK > 0 {
		topK := cfg.Request.TopK
		params.TopK = &topK
	}

	var archiver archive.Storage
	if !chatNoArchive {
		archiver, err = buildArchiver(cfg)
		if err != nil {
			// The debugger still works without /save.
			log.Warn("transcript archive unavailable", zap.Error(err))
			archiver = nil
		}
	}

	fmt.Println("chatprobe session started.")
	fmt.Printf("Endpoint: %s\n", cfg.Endpoint.URL)
	fmt.Printf("Model: %s\n", cfg.Request.Model)
	fmt.Print(chat.Help())

	session := chat.NewSession(chat.Options{
		Params:   params,
		Poster:   transport.New(cfg.Endpoint.URL, token, cfg.Endpoint.Timeout),
		Source:   chat.NewLineSource(os.Stdin, chatInitialInput),
		Out:      os.Stdout,
		Archiver: archiver,
		Logger:   log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return session.Run(ctx)
}

// applyChatFlags overlays explicitly set flags on the file config, so the
// command line always wins.
func applyChatFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("url") || cfg.Endpoint.URL == "" {
		cfg.Endpoint.URL = chatURL
	}
	if f.Changed("model") || cfg.Request.Model == "" {
		cfg.Request.Model = chatModel
	}
	if f.Changed("api-token") {
		cfg.Endpoint.APIToken = chatAPIToken
	}
	if f.Changed("api-token-env") {
		cfg.Endpoint.APITokenEnv = chatAPITokenEnv
	}
	if f.Changed("temperature") {
		cfg.Request.Temperature = chatTemperature
	}
	if f.Changed("top-p") {
		cfg.Request.TopP = chatTopP
	}
	if f.Changed("top-k") {
		cfg.Request.TopK = chatTopK
	}
	if f.Changed("max-tokens") {
		cfg.Request.MaxTokens = chatMaxTokens
	}
	if f.Changed("reasoning-effort") {
		cfg.Request.ReasoningEffort = chatReasoningEffort
	}
	if f.Changed("extra-params") {
		cfg.Request.ExtraParams = chatExtraParams
	}
	if f.Changed("timeout") {
		cfg.Endpoint.Timeout = chatTimeout
	}
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Defaults(), nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func resolveToken(cfg *config.Config) (string, error) {
	if cfg.Endpoint.APIToken != "" {
		return cfg.Endpoint.APIToken, nil
	}
	if token := os.Getenv(cfg.Endpoint.APITokenEnv); token != "" {
		return token, nil
	}
	return "", core.WrapError(core.ErrTokenMissing,
		fmt.Errorf("use --api-token or $%s", cfg.Endpoint.APITokenEnv))
}

func buildArchiver(cfg *config.Config) (archive.Storage, error) {
	switch cfg.Archive.Type {
	case "s3":
		return archive.NewS3(archive.S3Config{
			Bucket:    cfg.Archive.S3.Bucket,
			Endpoint:  cfg.Archive.S3.Endpoint,
			Region:    cfg.Archive.S3.Region,
			AccessKey: cfg.Archive.S3.AccessKey,
			SecretKey: cfg.Archive.S3.SecretKey,
			Prefix:    cfg.Archive.S3.Prefix,
		})
	case "", "localfs":
		path := cfg.Archive.Path
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("resolving home dir: %w", err)
			}
			path = filepath.Join(home, ".chatprobe", "transcripts")
		}
		return archive.NewLocalFS(path)
	default:
		return nil, fmt.Errorf("unknown archive type: %s", cfg.Archive.Type)
	}
}
