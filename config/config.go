package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds credentials and endpoints for the remote services.
type Config struct {
	LLM        LLMConfig    `yaml:"llm"`
	Search     SearchConfig `yaml:"search"`
	ServerAddr string       `yaml:"server_addr"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Mode     string `yaml:"mode"`
}

type SearchConfig struct {
	APIKey   string `yaml:"api_key"`
	Endpoint string `yaml:"endpoint"`
	Market   string `yaml:"market"`
}

// Load reads the optional YAML file at path, then lets the environment (and a .env file) override it.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Config{
		LLM:        LLMConfig{Provider: "openai"},
		ServerAddr: ":8080",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to unmarshal yaml: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg.LLM.Provider = getEnv("LLM_PROVIDER", cfg.LLM.Provider)
	cfg.LLM.Model = getEnv("OPENAI_COMPLETION_MODEL", cfg.LLM.Model)
	cfg.LLM.APIKey = getEnv("OPENAI_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.BaseURL = getEnv("OPENAI_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.Mode = getEnv("LLM_MODE", cfg.LLM.Mode)
	cfg.Search.APIKey = getEnv("BING_API_KEY", cfg.Search.APIKey)
	cfg.Search.Endpoint = getEnv("BING_ENDPOINT", cfg.Search.Endpoint)
	cfg.Search.Market = getEnv("BING_MARKET", cfg.Search.Market)
	cfg.ServerAddr = getEnv("SERVER_ADDR", cfg.ServerAddr)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
