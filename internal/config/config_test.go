package config

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := defaults()

	if cfg.Server.Port != 8001 {
		t.Errorf("Port = %d, want 8001", cfg.Server.Port)
	}
	if cfg.Cache.TTL != 30*time.Minute {
		t.Errorf("Cache.TTL = %v, want 30m", cfg.Cache.TTL)
	}
	if cfg.OpenAI.Model != "gpt-3.5-turbo" {
		t.Errorf("OpenAI.Model = %q", cfg.OpenAI.Model)
	}
	if cfg.HuggingFace.Primary {
		t.Error("HuggingFace.Primary should default to false")
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FAQBOT_PORT", "9000")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("FAQBOT_CACHE_TTL", "5m")
	t.Setenv("USE_HUGGINGFACE", "true")
	t.Setenv("HUGGINGFACE_API_KEY", "hf-test")
	t.Setenv("FAQBOT_TEMPERATURE", "0.7")

	cfg := defaults()
	applyEnv(&cfg)

	if cfg.Server.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("APIKey = %q, want sk-test", cfg.OpenAI.APIKey)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("TTL = %v, want 5m", cfg.Cache.TTL)
	}
	if !cfg.HuggingFace.Primary {
		t.Error("Primary should be true")
	}
	if cfg.OpenAI.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", cfg.OpenAI.Temperature)
	}
	if err := cfg.validate(); err != nil {
		t.Errorf("validate() = %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Server.Port = 0 }},
		{"negative ttl", func(c *Config) { c.Cache.TTL = -time.Second }},
		{"zero timeout", func(c *Config) { c.Pipeline.ProviderTimeout = 0 }},
		{"zero topk", func(c *Config) { c.Pipeline.TopK = 0 }},
		{"temperature out of range", func(c *Config) { c.OpenAI.Temperature = 3 }},
		{"hf primary without key", func(c *Config) { c.HuggingFace.Primary = true; c.HuggingFace.APIKey = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(&cfg)
			if err := cfg.validate(); err == nil {
				t.Error("validate() = nil, want error")
			}
		})
	}
}
