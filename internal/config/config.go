package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds all tunable settings for the extraction pipeline.
type Config struct {
	// Scene detection
	SceneChangeThreshold   float64 `json:"scene_change_threshold"`
	HistogramThreshold     float64 `json:"histogram_threshold"`
	MinTimeBetweenCaptures float64 `json:"min_time_between_captures"`
	SkipIntroOutro         bool    `json:"skip_intro_outro"`
	IntroOutroDuration     float64 `json:"intro_outro_duration"`

	// Video processing
	VideoQuality string  `json:"video_quality"`
	FrameRate    float64 `json:"frame_rate"`
	FrameWidth   int     `json:"frame_width"`
	FrameHeight  int     `json:"frame_height"`

	// Slide building
	TimeLimitPerSlide float64 `json:"time_limit_per_slide"`

	// Screenshots
	ScreenshotFormat string `json:"screenshot_format"`
	OutputDirectory  string `json:"output_directory"`

	// Document generation
	OutputFormat      string `json:"output_format"`
	IncludeTimestamps bool   `json:"include_timestamps"`
	IncludeNavigation bool   `json:"include_navigation"`

	// LLM enhancement
	EnableEnhancement   bool    `json:"enable_enhancement"`
	EnhancementLevel    string  `json:"enhancement_level"`
	AnthropicModel      string  `json:"anthropic_model"`
	MaxTokensPerRequest int     `json:"max_tokens_per_request"`
	MaxCostPerVideo     float64 `json:"max_cost_per_video"`
	CacheEnhanced       bool    `json:"cache_enhanced_results"`
	CacheFile           string  `json:"cache_file"`

	// Batching
	BatchTargetTokens int  `json:"batch_target_tokens"`
	EnableBatching    bool `json:"enable_batching"`

	// Error handling
	MaxRetries     int `json:"max_retries"`
	TimeoutSeconds int `json:"timeout"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		SceneChangeThreshold:   0.3,
		HistogramThreshold:     0.15,
		MinTimeBetweenCaptures: 2.0,
		SkipIntroOutro:         true,
		IntroOutroDuration:     30.0,

		VideoQuality: "720p",
		FrameRate:    1.0,
		FrameWidth:   640,
		FrameHeight:  360,

		TimeLimitPerSlide: 300.0,

		ScreenshotFormat: "png",
		OutputDirectory:  "output",

		OutputFormat:      "html",
		IncludeTimestamps: true,
		IncludeNavigation: true,

		EnableEnhancement:   false,
		EnhancementLevel:    "detailed",
		AnthropicModel:      "claude-3-7-sonnet-20250219",
		MaxTokensPerRequest: 4000,
		MaxCostPerVideo:     5.0,
		CacheEnhanced:       true,
		CacheFile:           "enhancement_cache.json",

		BatchTargetTokens: 1500,
		EnableBatching:    true,

		MaxRetries:     3,
		TimeoutSeconds: 30,
	}
}

// LoadFromFile reads configuration from a JSON file. Missing fields keep
// their defaults.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveToFile writes the configuration to a JSON file.
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
