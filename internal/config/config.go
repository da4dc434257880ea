package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Defaults applied when the config file is absent or leaves a field empty.
const (
	DefaultServerAddress   = ":8000"
	DefaultAllowedOrigin   = "http://localhost:5173"
	DefaultHistoryBackend  = "file"
	DefaultHistoryPath     = "chat_history.json"
	DefaultLanguage        = "english"
	DefaultWorkerCount     = 4
	DefaultProvider        = "openai"
	DefaultProviderBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel           = "llama-3.1-8b-instant"
)

// APIKeyEnv names the environment variable holding the completion
// provider key, conventionally supplied through a local .env file.
const APIKeyEnv = "GROQ_API_KEY"

// Config represents runtime configuration for the service.
type Config struct {
	BasicConfig BasicConfig               `json:"basic_config"`
	Providers   map[string]ProviderConfig `json:"providers"`
	Redis       RedisConfig               `json:"redis"`
}

type BasicConfig struct {
	ServerAddress   string `json:"server_address"`
	AllowedOrigin   string `json:"allowed_origin"`
	HistoryBackend  string `json:"history_backend"`
	HistoryPath     string `json:"history_path"`
	DefaultLanguage string `json:"default_language"`
	WorkerCount     int    `json:"worker_count"`
	Provider        string `json:"provider"`
}

type ProviderConfig struct {
	BaseURL string `json:"base_url"`
	Model   string `json:"model"`
	APIKey  string `json:"api_key"`
}

type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	DB       int    `json:"db"`
}

// Load reads configuration from the provided path. An empty path or a
// missing file yields the built-in defaults, so the service runs with
// no config file at all.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
		file, err := os.Open(absPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("open config %s: %w", absPath, err)
			}
		} else {
			defer file.Close()
			if err := json.NewDecoder(file).Decode(cfg); err != nil {
				return nil, fmt.Errorf("decode config: %w", err)
			}
			if cfg.BasicConfig.HistoryPath != "" && !filepath.IsAbs(cfg.BasicConfig.HistoryPath) {
				cfg.BasicConfig.HistoryPath = filepath.Join(filepath.Dir(absPath), cfg.BasicConfig.HistoryPath)
			}
		}
	}

	applyDefaults(cfg)
	applyEnv(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	bc := &cfg.BasicConfig
	if bc.ServerAddress == "" {
		bc.ServerAddress = DefaultServerAddress
	}
	if bc.AllowedOrigin == "" {
		bc.AllowedOrigin = DefaultAllowedOrigin
	}
	if bc.HistoryBackend == "" {
		bc.HistoryBackend = DefaultHistoryBackend
	}
	if bc.HistoryPath == "" {
		bc.HistoryPath = DefaultHistoryPath
	}
	if bc.DefaultLanguage == "" {
		bc.DefaultLanguage = DefaultLanguage
	}
	if bc.WorkerCount <= 0 {
		bc.WorkerCount = DefaultWorkerCount
	}
	if bc.Provider == "" {
		bc.Provider = DefaultProvider
	}

	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}
	if bc.Provider == DefaultProvider {
		prov := cfg.Providers[bc.Provider]
		if prov.BaseURL == "" {
			prov.BaseURL = DefaultProviderBaseURL
		}
		if prov.Model == "" {
			prov.Model = DefaultModel
		}
		cfg.Providers[bc.Provider] = prov
	}
}

// applyEnv overlays the provider API key from the environment. The env
// value wins over any key committed to the config file.
func applyEnv(cfg *Config) {
	key := os.Getenv(APIKeyEnv)
	if key == "" {
		return
	}
	prov := cfg.Providers[cfg.BasicConfig.Provider]
	prov.APIKey = key
	cfg.Providers[cfg.BasicConfig.Provider] = prov
}

// Provider returns the configuration of the active completion provider.
func (c *Config) Provider() (ProviderConfig, error) {
	prov, ok := c.Providers[c.BasicConfig.Provider]
	if !ok {
		return ProviderConfig{}, fmt.Errorf("provider %s not configured", c.BasicConfig.Provider)
	}
	return prov, nil
}
