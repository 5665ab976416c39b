package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/artified/mosaic/internal/classifier"
	"github.com/artified/mosaic/internal/config"
	"github.com/artified/mosaic/internal/core/timeline"
	"github.com/artified/mosaic/internal/data/archive"
	"github.com/artified/mosaic/internal/engine"
	"github.com/artified/mosaic/internal/presentation/formatter"
	"github.com/artified/mosaic/internal/util"
)

var (
	// Logging related
	debug bool

	// Data paths
	dayRoot    string
	outputDir  string
	configPath string

	// Run parameters
	dateArg       string
	timezone      string
	outputFormat  string
	classifierURL string
	concurrency   int
	archiveOutput bool

	// Segmentation thresholds
	intervalMinutes float64
	idleGapMinutes  float64
	idleThreshold   float64
	idleMargin      float64

	rootCmd = &cobra.Command{
		Use:   "mosaic [flags]",
		Short: "Screen capture timeline builder",
		Long: `mosaic compresses a day of labeled screen captures into a contiguous
timeline of activity segments plus per-surface and per-activity totals.

Examples:
  mosaic                                          # Build today's timeline
  mosaic --date 2025-03-11                        # Build a specific day
  mosaic --dir ~/captures --output json           # JSON artifact on stdout
  mosaic --output-dir ~/timelines --archive       # Persist and compress
  mosaic serve --addr :8787                       # Publish artifacts over HTTP
  mosaic watch                                    # Rebuild as captures arrive`,
		RunE: runBuild,
	}
)

const (
	defaultLogFile = "~/.mosaic/logs/app.log"
	defaultDayRoot = "~/.mosaic/captures"
)

func init() {
	rootCmd.PersistentFlags().StringVar(&dayRoot, "dir", defaultDayRoot,
		"Capture root directory containing one subdirectory per day")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "",
		"Directory for persisted timeline artifacts")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file path (default: ./mosaic.yaml, ~/.mosaic/mosaic.yaml)")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "",
		"Timezone setting (e.g., Asia/Shanghai, UTC)")
	rootCmd.PersistentFlags().StringVar(&classifierURL, "classifier-url", "",
		"Frame classifier endpoint URL")
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 0,
		"Classifier request concurrency (0 = number of CPUs)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")

	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, lines)")
	rootCmd.PersistentFlags().BoolVar(&archiveOutput, "archive", false,
		"Compress the persisted artifact with zstd")

	rootCmd.Flags().StringVar(&dateArg, "date", "",
		"Day to build, formatted as YYYY-MM-DD (default: today)")
	rootCmd.PersistentFlags().Float64Var(&intervalMinutes, "interval-minutes", 0,
		"Fallback capture interval in minutes when the day has too few frames")
	rootCmd.PersistentFlags().Float64Var(&idleGapMinutes, "idle-gap", 0,
		"Minimum gap in minutes before an idle check")
	rootCmd.PersistentFlags().Float64Var(&idleThreshold, "idle-threshold", 0,
		"Frame similarity required to classify a gap as idle")
	rootCmd.PersistentFlags().Float64Var(&idleMargin, "idle-margin", 0,
		"Activity margin in minutes kept on each side of an idle window")
}

// runSetup loads the config file, applies flag overrides, and initializes
// the logger and time provider. Shared by build, serve, and watch.
func runSetup(cmd *cobra.Command) (*config.FileConfig, error) {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	logFile := expandPath(defaultLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err == nil {
		util.InitLogger(logLevel, logFile, debug)
	} else {
		util.InitLogger(logLevel, "", debug)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	// Flags override file values only when set on the command line.
	if cmd.Flags().Changed("dir") || cfg.DayRoot == "" {
		cfg.DayRoot = dayRoot
	}
	if cmd.Flags().Changed("output-dir") || cfg.OutputDir == "" {
		cfg.OutputDir = outputDir
	}
	if timezone != "" {
		cfg.Timezone = timezone
	}
	if classifierURL != "" {
		cfg.ClassifierURL = classifierURL
	}
	if concurrency != 0 {
		cfg.Concurrency = concurrency
	}
	applySegmentationFlags(cmd.Flags(), &cfg.Segmentation)

	if err := util.InitializeTimeProvider(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	cfg.DayRoot = expandPath(cfg.DayRoot)
	if cfg.OutputDir != "" {
		cfg.OutputDir = expandPath(cfg.OutputDir)
	}
	return cfg, nil
}

func applySegmentationFlags(flags *pflag.FlagSet, seg *timeline.Config) {
	if flags.Changed("interval-minutes") {
		seg.DefaultIntervalMinutes = intervalMinutes
	}
	if flags.Changed("idle-gap") {
		seg.IdleGapMinutes = idleGapMinutes
	}
	if flags.Changed("idle-threshold") {
		seg.IdleSimilarityThreshold = idleThreshold
	}
	if flags.Changed("idle-margin") {
		seg.IdleMarginMinutes = idleMargin
	}
}

func resolveDate(cfg *config.FileConfig) (time.Time, error) {
	if dateArg == "" {
		now := util.GetTimeProvider().Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	d, err := time.ParseInLocation("2006-01-02", dateArg, util.GetTimeProvider().Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", dateArg)
	}
	return d, nil
}

func buildArtifact(ctx context.Context, cfg *config.FileConfig, date time.Time) (string, error) {
	if cfg.ClassifierURL == "" {
		return "", fmt.Errorf("no classifier endpoint configured; pass --classifier-url or set classifier_url in mosaic.yaml")
	}

	dayDir := filepath.Join(cfg.DayRoot, date.Format("2006-01-02"))

	eng := engine.New(&engine.Config{
		DayDir:       dayDir,
		Date:         date,
		Timezone:     cfg.Timezone,
		Concurrency:  cfg.Concurrency,
		Segmentation: cfg.Segmentation,
	}, classifier.NewHTTPClassifier(cfg.ClassifierURL, cfg.Concurrency), classifier.NewFrameDiffOracle())

	artifact, err := eng.Run(ctx)
	if err != nil {
		return "", err
	}

	var persistedPath string
	if cfg.OutputDir != "" {
		path, err := formatter.NewJSONFormatter().WriteFile(artifact, cfg.OutputDir)
		if err != nil {
			return "", fmt.Errorf("failed to persist artifact: %w", err)
		}
		persistedPath = path
		util.LogInfof("Artifact written to %s", path)

		if archiveOutput {
			archived, err := archive.Compress(path, cfg.OutputDir)
			if err != nil {
				return "", fmt.Errorf("failed to archive artifact: %w", err)
			}
			util.LogInfof("Artifact archived to %s", archived)
		}
	}

	switch outputFormat {
	case "json":
		if err := formatter.NewJSONFormatter().Format(os.Stdout, artifact); err != nil {
			return "", err
		}
		fmt.Println()
	case "lines":
		for _, line := range artifact.TimelineHumanReadable {
			fmt.Println(line)
		}
	case "table":
		if err := formatter.NewTableFormatter().Format(os.Stdout, artifact); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("unknown output format: %s (expected table, json, or lines)", outputFormat)
	}

	return persistedPath, nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := runSetup(cmd)
	if err != nil {
		return err
	}

	date, err := resolveDate(cfg)
	if err != nil {
		return err
	}

	_, err = buildArtifact(cmd.Context(), cfg, date)
	return err
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
