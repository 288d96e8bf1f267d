package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	OpenAI      OpenAIConfig
	HuggingFace HuggingFaceConfig
	Search      SearchConfig
	Cache       CacheConfig
	Storage     StorageConfig
	Pipeline    PipelineConfig
	Log         LogConfig
}

type ServerConfig struct {
	Port    int
	MCPPort int
	// AdminToken guards the document ingest API. Empty disables it.
	AdminToken string
}

type OpenAIConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
}

type HuggingFaceConfig struct {
	APIKey        string
	Model         string
	FallbackModel string
	// Primary routes generative calls to Hugging Face before OpenAI.
	Primary bool
}

type SearchConfig struct {
	SerperAPIKey string
}

type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
}

type StorageConfig struct {
	DataDir string
}

type PipelineConfig struct {
	ProviderTimeout time.Duration
	TopK            int
	// Rerank re-scores retrieved documents with the generative backend
	// before prompt composition. Off by default to save a round trip.
	Rerank bool
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:    8001,
			MCPPort: 8002,
		},
		OpenAI: OpenAIConfig{
			Model:       "gpt-3.5-turbo",
			Temperature: 0.2,
			MaxTokens:   512,
		},
		HuggingFace: HuggingFaceConfig{
			Model:         "meta-llama/Llama-3.2-3B-Instruct",
			FallbackModel: "mistralai/Mistral-7B-Instruct-v0.3",
		},
		Cache: CacheConfig{
			RedisURL: "redis://localhost:6379/0",
			TTL:      30 * time.Minute,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Pipeline: PipelineConfig{
			ProviderTimeout: 10 * time.Second,
			TopK:            4,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a .env file (if present) and environment
// variables, on top of built-in defaults. API keys are optional: a missing
// key disables the providers that need it rather than failing startup.
func Load() (Config, error) {
	// Best effort; a missing .env file is not an error.
	_ = godotenv.Load()

	cfg := defaults()
	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setInt(&cfg.Server.Port, "FAQBOT_PORT")
	setInt(&cfg.Server.MCPPort, "FAQBOT_MCP_PORT")
	setString(&cfg.Server.AdminToken, "FAQBOT_ADMIN_TOKEN")

	setString(&cfg.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&cfg.OpenAI.Model, "FAQBOT_OPENAI_MODEL")
	setFloat32(&cfg.OpenAI.Temperature, "FAQBOT_TEMPERATURE")
	setInt(&cfg.OpenAI.MaxTokens, "FAQBOT_MAX_TOKENS")

	setString(&cfg.HuggingFace.APIKey, "HUGGINGFACE_API_KEY")
	setString(&cfg.HuggingFace.Model, "FAQBOT_HF_MODEL")
	setString(&cfg.HuggingFace.FallbackModel, "FAQBOT_HF_FALLBACK_MODEL")
	setBool(&cfg.HuggingFace.Primary, "USE_HUGGINGFACE")

	setString(&cfg.Search.SerperAPIKey, "SERPER_API_KEY")

	setString(&cfg.Cache.RedisURL, "REDIS_URL")
	setDuration(&cfg.Cache.TTL, "FAQBOT_CACHE_TTL")

	setString(&cfg.Storage.DataDir, "FAQBOT_DATA_DIR")

	setDuration(&cfg.Pipeline.ProviderTimeout, "FAQBOT_PROVIDER_TIMEOUT")
	setInt(&cfg.Pipeline.TopK, "FAQBOT_TOP_K")
	setBool(&cfg.Pipeline.Rerank, "FAQBOT_RERANK")

	setString(&cfg.Log.Level, "FAQBOT_LOG_LEVEL")
}

func (c Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %v", c.Cache.TTL)
	}
	if c.Pipeline.ProviderTimeout <= 0 {
		return fmt.Errorf("provider timeout must be positive, got %v", c.Pipeline.ProviderTimeout)
	}
	if c.Pipeline.TopK <= 0 {
		return fmt.Errorf("top-K must be positive, got %d", c.Pipeline.TopK)
	}
	if c.OpenAI.Temperature < 0 || c.OpenAI.Temperature > 2 {
		return fmt.Errorf("temperature must be 0-2, got %v", c.OpenAI.Temperature)
	}
	if c.HuggingFace.Primary && c.HuggingFace.APIKey == "" {
		return fmt.Errorf("USE_HUGGINGFACE is set but HUGGINGFACE_API_KEY is empty")
	}
	return nil
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "faqbot")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".faqbot"
	}
	return filepath.Join(home, ".local", "share", "faqbot")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat32(dst *float32, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			*dst = float32(f)
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = strings.EqualFold(v, "true") || v == "1"
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
