package watcher

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/artified/mosaic/internal/util"
)

// CaptureEvent reports one filesystem change inside a watched day
// directory.
type CaptureEvent struct {
	Path      string
	Operation string
}

// DirWatcher follows a capture directory tree and reports changes to
// frame images so a consumer can rebuild the day's timeline.
type DirWatcher struct {
	watcher *fsnotify.Watcher
	events  chan CaptureEvent
}

// NewDirWatcher starts watching root recursively.
func NewDirWatcher(root string) (*DirWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dw := &DirWatcher{
		watcher: w,
		events:  make(chan CaptureEvent, 100),
	}

	if err := dw.addPath(root); err != nil {
		w.Close()
		return nil, err
	}

	go dw.processEvents()

	return dw, nil
}

func (dw *DirWatcher) addPath(path string) error {
	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return dw.watcher.Add(p)
		}
		return nil
	})
}

func isCaptureFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

func (dw *DirWatcher) processEvents() {
	for {
		select {
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}

			// New day directories need their own watch entry.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = dw.watcher.Add(event.Name)
					continue
				}
			}

			if isCaptureFile(event.Name) {
				dw.events <- CaptureEvent{
					Path:      event.Name,
					Operation: event.Op.String(),
				}
			}

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("Capture directory watch error: " + err.Error())
		}
	}
}

// Events returns the stream of capture file changes.
func (dw *DirWatcher) Events() <-chan CaptureEvent {
	return dw.events
}

func (dw *DirWatcher) Close() error {
	return dw.watcher.Close()
}
