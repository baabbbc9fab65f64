package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI   = "openai"
	ProviderGroq     = "groq"
	ProviderDeepSeek = "deepseek"

	defaultConfigPath    = "config.yaml"
	defaultOutputDir     = "./output"
	defaultImageCacheDir = "./.cache/images"
	defaultDriveToken    = "./drive_token.json"
	defaultProvider      = ProviderOpenAI
	defaultOpenAIModel   = "gpt-4o-mini"
	defaultBatchModel    = "gpt-4o-2024-08-06"
	defaultGroqModel     = "llama-3.3-70b-versatile"
	defaultDeepSeekModel = "deepseek-chat"
	defaultHTMLStyle     = "vibrant"
	defaultSlideCount    = 10
	defaultKeepImages    = 20
	defaultGCSPrefix     = "decks"
)

type Config struct {
	OpenAIAPIKey      string
	GroqAPIKey        string
	DeepSeekAPIKey    string
	PexelsAPIKey      string
	DriveClientID     string
	DriveClientSecret string
	DriveTokenPath    string
	GCSBucket         string
	GCPProject        string

	LLM    LLMConfig    `yaml:"llm"`
	Slides SlidesConfig `yaml:"slides"`
	Output OutputConfig `yaml:"output"`
	Images ImagesConfig `yaml:"images"`
	GCS    GCSConfig    `yaml:"gcs"`
	Drive  DriveConfig  `yaml:"drive"`
}

type LLMConfig struct {
	Provider   string `yaml:"provider"` // "openai", "groq" or "deepseek"
	Model      string `yaml:"model"`
	BatchModel string `yaml:"batch_model"`
}

type SlidesConfig struct {
	Count     int    `yaml:"count"`
	Theme     string `yaml:"theme"` // empty picks a theme per topic
	HTMLStyle string `yaml:"html_style"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

type ImagesConfig struct {
	CacheDir   string `yaml:"cache_dir"`
	KeepRecent int    `yaml:"keep_recent"`
}

type GCSConfig struct {
	Prefix string `yaml:"prefix"`
}

type DriveConfig struct {
	Folder string `yaml:"folder"`
}

// Load reads .env, environment variables and an optional config.yaml,
// then fills API keys left empty from Secret Manager when a GCP project
// is configured.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		GroqAPIKey:        os.Getenv("GROQ_API_KEY"),
		DeepSeekAPIKey:    os.Getenv("DEEPSEEK_API_KEY"),
		PexelsAPIKey:      os.Getenv("PEXELS_API_KEY"),
		DriveClientID:     os.Getenv("DRIVE_CLIENT_ID"),
		DriveClientSecret: os.Getenv("DRIVE_CLIENT_SECRET"),
		DriveTokenPath:    getEnvOrDefault("DRIVE_TOKEN_PATH", defaultDriveToken),
		GCSBucket:         os.Getenv("GCS_BUCKET"),
		GCPProject:        os.Getenv("GOOGLE_CLOUD_PROJECT"),
	}

	if err := loadYAMLConfig(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	resolveSecrets(ctx, cfg)

	return cfg, nil
}

// LLMKey returns the API key for the configured text provider, or an
// error when it is missing. Generation cannot run without one.
func (c *Config) LLMKey() (string, error) {
	switch c.LLM.Provider {
	case ProviderGroq:
		if c.GroqAPIKey == "" {
			return "", errors.New("GROQ_API_KEY is not set")
		}
		return c.GroqAPIKey, nil
	case ProviderDeepSeek:
		if c.DeepSeekAPIKey == "" {
			return "", errors.New("DEEPSEEK_API_KEY is not set")
		}
		return c.DeepSeekAPIKey, nil
	default:
		if c.OpenAIAPIKey == "" {
			return "", errors.New("OPENAI_API_KEY is not set")
		}
		return c.OpenAIAPIKey, nil
	}
}

// ImagesEnabled reports whether stock photos can be fetched.
func (c *Config) ImagesEnabled() bool {
	return c.PexelsAPIKey != ""
}

func loadYAMLConfig(cfg *Config) error {
	data, err := os.ReadFile(defaultConfigPath)
	if err != nil {
		slog.Warn("No config.yaml found, using defaults")
		return nil
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", defaultConfigPath, err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	applyLLMDefaults(cfg)
	applySlidesDefaults(cfg)
	applyOutputDefaults(cfg)
	applyImagesDefaults(cfg)
	applyGCSDefaults(cfg)
}

func applyLLMDefaults(cfg *Config) {
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = defaultProvider
	}
	if cfg.LLM.Model == "" {
		switch cfg.LLM.Provider {
		case ProviderGroq:
			cfg.LLM.Model = defaultGroqModel
		case ProviderDeepSeek:
			cfg.LLM.Model = defaultDeepSeekModel
		default:
			cfg.LLM.Model = defaultOpenAIModel
		}
	}
	if cfg.LLM.BatchModel == "" {
		if cfg.LLM.Provider == ProviderOpenAI {
			cfg.LLM.BatchModel = defaultBatchModel
		} else {
			cfg.LLM.BatchModel = cfg.LLM.Model
		}
	}
}

func applySlidesDefaults(cfg *Config) {
	if cfg.Slides.Count == 0 {
		cfg.Slides.Count = defaultSlideCount
	}
	if cfg.Slides.HTMLStyle == "" {
		cfg.Slides.HTMLStyle = defaultHTMLStyle
	}
}

func applyOutputDefaults(cfg *Config) {
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = defaultOutputDir
	}
}

func applyImagesDefaults(cfg *Config) {
	if cfg.Images.CacheDir == "" {
		cfg.Images.CacheDir = defaultImageCacheDir
	}
	if cfg.Images.KeepRecent == 0 {
		cfg.Images.KeepRecent = defaultKeepImages
	}
}

func applyGCSDefaults(cfg *Config) {
	if cfg.GCS.Prefix == "" {
		cfg.GCS.Prefix = defaultGCSPrefix
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
