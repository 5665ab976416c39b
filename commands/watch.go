package commands

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/artified/mosaic/internal/data/watcher"
	"github.com/artified/mosaic/internal/util"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild timelines as new captures arrive",
	Long: `watch follows the capture root directory and rebuilds the affected
day's timeline after each burst of new frames. Rebuilds are debounced so a
rapid capture sequence triggers a single run.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 5*time.Second,
		"Quiet period after the last capture event before rebuilding")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := runSetup(cmd)
	if err != nil {
		return err
	}

	dw, err := watcher.NewDirWatcher(cfg.DayRoot)
	if err != nil {
		return err
	}
	defer dw.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	util.LogInfof("Watching %s for new captures", cfg.DayRoot)

	var timer *time.Timer
	var timerCh <-chan time.Time
	pending := make(map[string]bool)

	for {
		select {
		case ev := <-dw.Events():
			// The day is the capture's parent directory name.
			day := filepath.Base(filepath.Dir(ev.Path))
			if _, err := time.Parse("2006-01-02", day); err != nil {
				continue
			}
			pending[day] = true
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil
			for day := range pending {
				date, err := time.ParseInLocation("2006-01-02", day, util.GetTimeProvider().Location())
				if err != nil {
					continue
				}
				if _, err := buildArtifact(cmd.Context(), cfg, date); err != nil {
					util.LogErrorf("Rebuild for %s failed: %v", day, err)
				}
			}
			pending = make(map[string]bool)

		case sig := <-sigCh:
			util.LogInfof("Received %v, stopping watch", sig)
			return nil
		}
	}
}
