// Package config loads solace configuration from a JSON file with
// environment-variable overrides (SOLACE_*).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server     ServerConfig     `json:"server"`
	Generation GenerationConfig `json:"generation"`
	Sentiment  SentimentConfig  `json:"sentiment"`
	Storage    StorageConfig    `json:"storage"`
	Log        LogConfig        `json:"log"`
}

type ServerConfig struct {
	Port int `json:"port" env:"SOLACE_SERVER_PORT"`
	// APIToken guards the profile/history management endpoints.
	// Empty leaves them open (local single-user setups).
	APIToken string `json:"api_token" env:"SOLACE_API_TOKEN"`
}

type GenerationConfig struct {
	Provider      string `json:"provider" env:"SOLACE_GENERATION_PROVIDER"`
	Model         string `json:"model" env:"SOLACE_GENERATION_MODEL"`
	GeminiAPIKey  string `json:"gemini_api_key" env:"SOLACE_GEMINI_API_KEY"`
	OpenAIAPIKey  string `json:"openai_api_key" env:"SOLACE_OPENAI_API_KEY"`
	OllamaBaseURL string `json:"ollama_base_url" env:"SOLACE_OLLAMA_BASE_URL"`
	// Persona overrides the built-in counselor preamble when non-empty.
	Persona string `json:"persona" env:"SOLACE_PERSONA"`
}

type SentimentConfig struct {
	// Model is the fast local model used for sentiment scoring.
	Model string `json:"model" env:"SOLACE_SENTIMENT_MODEL"`
}

type StorageConfig struct {
	Backend string `json:"backend" env:"SOLACE_STORAGE_BACKEND"`
	DataDir string `json:"data_dir" env:"SOLACE_STORAGE_DATA_DIR"`
}

type LogConfig struct {
	Level string `json:"level" env:"SOLACE_LOG_LEVEL"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 5000,
		},
		Generation: GenerationConfig{
			Provider:      "gemini",
			Model:         "gemini-2.0-flash",
			OllamaBaseURL: "http://localhost:11434",
		},
		Sentiment: SentimentConfig{
			Model: "phi3.5",
		},
		Storage: StorageConfig{
			Backend: "file",
			DataDir: defaultDataDir(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the config file at $XDG_CONFIG_HOME/solace/config.json (if
// present) over the defaults, then applies SOLACE_* environment overrides.
func Load() (Config, error) {
	return loadFrom(FilePath())
}

func loadFrom(path string) (Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("applying environment overrides: %w", err)
	}

	return cfg, nil
}

// FilePath returns the location of the JSON config file.
func FilePath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".config")
		} else {
			dir = "."
		}
	}
	return filepath.Join(dir, "solace", "config.json")
}

func defaultDataDir() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".local", "share")
		} else {
			return "solace-data"
		}
	}
	return filepath.Join(dir, "solace")
}
