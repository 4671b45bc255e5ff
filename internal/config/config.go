package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the complete listingforge configuration
type Config struct {
	Gen       GenConfig       `mapstructure:"gen"`
	Output    OutputConfig    `mapstructure:"output"`
	PrintPrep PrintPrepConfig `mapstructure:"printprep"`
	Mockup    MockupConfig    `mapstructure:"mockup"`
	Approval  ApprovalConfig  `mapstructure:"approval"`
	Batch     BatchConfig     `mapstructure:"batch"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// GenConfig controls the text and image generation backends
type GenConfig struct {
	// APIKey is the Gemini API key. Falls back to the GEMINI_API_KEY
	// environment variable when unset.
	APIKey string `mapstructure:"api_key"`
	// TextModel is the model used for concept, prompt, and SEO generation
	TextModel string `mapstructure:"text_model"`
	// ImageModel is the model used for artwork generation
	ImageModel string `mapstructure:"image_model"`
	// Temperature controls text generation randomness
	Temperature float64 `mapstructure:"temperature"`
	// Seed makes image generation reproducible when non-zero
	Seed int `mapstructure:"seed"`
	// GuidanceScale controls how closely the image follows the prompt
	// (0 uses the model default)
	GuidanceScale float64 `mapstructure:"guidance_scale"`
	// PortraitRatio is the provider aspect-ratio value for portrait artwork
	PortraitRatio string `mapstructure:"portrait_ratio"`
	// LandscapeRatio is the provider aspect-ratio value for landscape artwork
	LandscapeRatio string `mapstructure:"landscape_ratio"`
}

// OutputConfig controls where run artifacts are written
type OutputConfig struct {
	// Dir is the root output directory for all runs
	Dir string `mapstructure:"dir"`
	// CleanupSources deletes staged source files after a listing directory
	// is organized (the originals are copied into the listing directory first)
	CleanupSources bool `mapstructure:"cleanup_sources"`
}

// PrintPrepConfig controls print asset preparation
type PrintPrepConfig struct {
	// Scale is the upscaling factor applied before rendering print sizes
	Scale int `mapstructure:"scale"`
	// FillCanvas crops the image to fill each print canvas; when false the
	// image is fitted with white borders instead
	FillCanvas bool `mapstructure:"fill_canvas"`
	// Sharpen is the sharpening sigma applied after upscaling (0 disables)
	Sharpen float64 `mapstructure:"sharpen"`
	// Contrast is the percentage contrast adjustment after upscaling
	Contrast float64 `mapstructure:"contrast"`
	// Saturation is the percentage saturation adjustment after upscaling
	Saturation float64 `mapstructure:"saturation"`
}

// MockupConfig controls mockup rendering
type MockupConfig struct {
	// APIKey authenticates against the mockup rendering API. When empty,
	// mockups are composited locally instead.
	APIKey string `mapstructure:"api_key"`
	// BaseURL is the mockup API endpoint
	BaseURL string `mapstructure:"base_url"`
	// TimeoutSeconds bounds each mockup API request
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// ApprovalConfig controls the human approval gates
type ApprovalConfig struct {
	// MaxAttempts bounds the regenerate loop per gate (0 = unbounded,
	// matching the original behavior)
	MaxAttempts int `mapstructure:"max_attempts"`
	// AutoApprove accepts every candidate without prompting. Intended for
	// unattended batch runs.
	AutoApprove bool `mapstructure:"auto_approve"`
}

// BatchConfig controls batch processing of multiple listings
type BatchConfig struct {
	// Workers is the bounded worker pool size for batch runs
	Workers int `mapstructure:"workers"`
}

// LoggingConfig controls structured logging
type LoggingConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR
	Level string `mapstructure:"level"`
	// Dir is where log files are written; empty logs to stderr
	Dir string `mapstructure:"dir"`
}

// SetDefaults registers default values for all configuration keys
func SetDefaults() {
	viper.SetDefault("gen.text_model", "gemini-2.5-flash")
	viper.SetDefault("gen.image_model", "imagen-4.0-generate-001")
	viper.SetDefault("gen.temperature", 0.9)
	viper.SetDefault("gen.seed", 0)
	viper.SetDefault("gen.guidance_scale", 0)
	viper.SetDefault("gen.portrait_ratio", "3:4")
	viper.SetDefault("gen.landscape_ratio", "4:3")

	viper.SetDefault("output.dir", "output")
	viper.SetDefault("output.cleanup_sources", true)

	viper.SetDefault("printprep.scale", 4)
	viper.SetDefault("printprep.fill_canvas", true)
	viper.SetDefault("printprep.sharpen", 1.0)
	viper.SetDefault("printprep.contrast", 10)
	viper.SetDefault("printprep.saturation", 5)

	viper.SetDefault("mockup.base_url", "https://api.dynamicmockups.com/v1")
	viper.SetDefault("mockup.timeout_seconds", 60)

	viper.SetDefault("approval.max_attempts", 0)
	viper.SetDefault("approval.auto_approve", false)

	viper.SetDefault("batch.workers", 2)

	viper.SetDefault("logging.level", "INFO")
	viper.SetDefault("logging.dir", "")
}

// Load unmarshals the current viper state into a Config.
// SetDefaults should have been called first.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Gen.APIKey == "" {
		cfg.Gen.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.Mockup.APIKey == "" {
		cfg.Mockup.APIKey = os.Getenv("DYNAMIC_MOCKUPS_API_KEY")
	}

	return &cfg, nil
}

// ConfigDir returns the directory where the config file is expected,
// honoring XDG_CONFIG_HOME.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "listingforge")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "listingforge")
}
