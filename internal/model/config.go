package model

import "time"

// Config holds all process-wide configuration. It is constructed once at
// startup from defaults, the config file, and environment variables, then
// passed into each collaborator constructor. Nothing reads the environment
// after startup.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http" mapstructure:"http"`
	LLM     LLMConfig     `yaml:"llm" mapstructure:"llm"`
	Search  SearchConfig  `yaml:"search" mapstructure:"search"`
	YouTube YouTubeConfig `yaml:"youtube" mapstructure:"youtube"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Auth    AuthConfig    `yaml:"auth" mapstructure:"auth"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
}

// HTTPConfig controls outbound content fetches.
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// LLMConfig configures the text-generation provider.
type LLMConfig struct {
	Provider    string `yaml:"provider" mapstructure:"provider"` // "groq" or "openai"
	Model       string `yaml:"model" mapstructure:"model"`
	APIKey      string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL     string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs int    `yaml:"timeout" mapstructure:"timeout"`
}

// SearchConfig configures the web-search provider.
type SearchConfig struct {
	APIKey     string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL    string        `yaml:"base_url" mapstructure:"base_url"`
	MaxResults int           `yaml:"max_results" mapstructure:"max_results"`
	RatePerSec float64       `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	CacheTTL   time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
	Workers    int           `yaml:"workers" mapstructure:"workers"`
}

// YouTubeConfig configures the video metadata fallback.
type YouTubeConfig struct {
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr      string `yaml:"addr" mapstructure:"addr"`
	StaticDir string `yaml:"static_dir" mapstructure:"static_dir"`
}

// AuthConfig configures bearer-token verification.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

// StoreConfig configures the relational store for the education workflow.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // SQLite path; empty disables the store
}

// DefaultConfig returns sensible defaults for all settings.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      15 * time.Second,
			UserAgent:    "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			MaxBodyBytes: 5 << 20,
		},
		LLM: LLMConfig{
			Provider:    "groq",
			Model:       "llama-3.3-70b-versatile",
			TimeoutSecs: 30,
		},
		Search: SearchConfig{
			BaseURL:    "https://api.tavily.com",
			MaxResults: 5,
			RatePerSec: 2,
			CacheTTL:   10 * time.Minute,
			Workers:    4,
		},
		Server: ServerConfig{
			Addr:      ":8000",
			StaticDir: "static",
		},
	}
}
