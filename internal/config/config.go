package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/probekit/chatprobe/internal/core"
	"github.com/spf13/viper"
)

type Config struct {
	Endpoint EndpointConfig `mapstructure:"endpoint"`
	Request  RequestConfig  `mapstructure:"request"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
}

type EndpointConfig struct {
	URL         string        `mapstructure:"url"`
	APIToken    string        `mapstructure:"api_token"`
	APITokenEnv string        `mapstructure:"api_token_env"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type RequestConfig struct {
	Model           string  `mapstructure:"model"`
	Temperature     float64 `mapstructure:"temperature"`
	TopP            float64 `mapstructure:"top_p"`
	TopK            int     `mapstructure:"top_k"` // 0 means omit from payload
	MaxTokens       int     `mapstructure:"max_tokens"`
	ReasoningEffort string  `mapstructure:"reasoning_effort"`
	ExtraParams     string  `mapstructure:"extra_params"` // raw JSON object merged into every payload
}

type ArchiveConfig struct {
	Type string   `mapstructure:"type"` // "localfs" or "s3"
	Path string   `mapstructure:"path"` // For localfs
	S3   S3Config `mapstructure:"s3"`   // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("endpoint.api_token_env", "OPENAI_API_KEY")
	v.SetDefault("endpoint.timeout", 60*time.Second)
	v.SetDefault("request.temperature", 0.7)
	v.SetDefault("request.top_p", 1.0)
	v.SetDefault("request.max_tokens", 512)
	v.SetDefault("archive.type", "localfs")
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Endpoint: EndpointConfig{
			APITokenEnv: "OPENAI_API_KEY",
			Timeout:     60 * time.Second,
		},
		Request: RequestConfig{
			Temperature: 0.7,
			TopP:        1.0,
			MaxTokens:   512,
		},
		Archive: ArchiveConfig{
			Type: "localfs",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Endpoint.Timeout <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("timeout must be positive, got %v", c.Endpoint.Timeout))
	}

	if c.Request.Temperature < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("temperature cannot be negative, got %f", c.Request.Temperature))
	}
	if c.Request.TopP < 0 || c.Request.TopP > 1 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("top_p must be between 0 and 1, got %f", c.Request.TopP))
	}
	if c.Request.TopK < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("top_k cannot be negative, got %d", c.Request.TopK))
	}
	if c.Request.MaxTokens <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("max_tokens must be positive, got %d", c.Request.MaxTokens))
	}

	switch c.Request.ReasoningEffort {
	case "", "low", "medium", "high":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("reasoning_effort must be low, medium or high, got %q", c.Request.ReasoningEffort))
	}

	switch c.Archive.Type {
	case "", "localfs", "s3":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown archive type %q", c.Archive.Type))
	}

	return nil
}

// ParseExtraParams decodes the extra-params JSON object merged into every
// request payload. Empty input yields an empty map.
func ParseExtraParams(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("extra params must be a JSON object: %w", err))
	}
	return parsed, nil
}
