package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/artified/mosaic/internal/core/timeline"
)

// FileConfig is the optional on-disk configuration (mosaic.yaml). Values
// fill defaults under the CLI flags; the engine itself still receives one
// explicit parameter structure per run.
type FileConfig struct {
	Timezone      string          `mapstructure:"timezone"`
	DayRoot       string          `mapstructure:"day_root"`
	OutputDir     string          `mapstructure:"output_dir"`
	ClassifierURL string          `mapstructure:"classifier_url"`
	Concurrency   int             `mapstructure:"concurrency"`
	Segmentation  timeline.Config `mapstructure:"segmentation"`
}

// Default returns the stock configuration.
func Default() *FileConfig {
	return &FileConfig{
		Timezone:     "Local",
		Segmentation: timeline.DefaultConfig(),
	}
}

// Load reads the configuration file at path. An empty path searches the
// working directory and ~/.mosaic for mosaic.yaml; a missing file is not
// an error, the defaults apply.
func Load(path string) (*FileConfig, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	seg := timeline.DefaultConfig()
	v.SetDefault("timezone", "Local")
	v.SetDefault("concurrency", 0)
	v.SetDefault("segmentation.default_interval_minutes", seg.DefaultIntervalMinutes)
	v.SetDefault("segmentation.idle_gap_minutes", seg.IdleGapMinutes)
	v.SetDefault("segmentation.idle_similarity_threshold", seg.IdleSimilarityThreshold)
	v.SetDefault("segmentation.idle_margin_minutes", seg.IdleMarginMinutes)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("mosaic")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".mosaic"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && path == "" {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg FileConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}
