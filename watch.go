package noteshub

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/radovskyb/watcher"
	"github.com/sigroup/noteshub/logfields"
)

// StopWatching stops a watcher started with StartWatching.
func (s *Site) StopWatching() {
	if s.reloadWatcher != nil {
		s.reloadWatcher.Close()
		s.reloadWatcher = nil
	}
}

// StartWatching watches the content root and runs a full rebuild (at most
// once every BuildFrequency) after anything under it changes.  onBuild, if
// given, is called with the result of every rebuild.  Watching stops when
// ctx is done.
func (s *Site) StartWatching(ctx context.Context, onBuild func(*BuildResult, error)) error {
	if !s.initialized {
		s.Init()
	}
	if s.reloadWatcher != nil {
		return nil
	}
	w := watcher.New()
	w.IgnoreHiddenFiles(true)
	w.AddFilterHook(func(info os.FileInfo, fullPath string) error {
		if s.isOutputPath(fullPath) {
			return watcher.ErrSkip
		}
		return nil
	})
	if err := w.AddRecursive(s.ContentRoot); err != nil {
		return err
	}
	s.reloadWatcher = w

	go func() {
		buildFreq := s.BuildFrequency
		if buildFreq <= 0 {
			buildFreq = 1000 * time.Millisecond
		}
		ticker := time.NewTicker(buildFreq)
		defer ticker.Stop()

		changed := 0
		for {
			select {
			case event := <-w.Event:
				slog.Debug("Change detected", logfields.Path(event.Path), slog.String("op", event.Op.String()))
				changed++
			case err := <-w.Error:
				slog.Error("Watcher error", logfields.Error(err))
			case <-w.Closed:
				return
			case <-ctx.Done():
				w.Close()
				return
			case <-ticker.C:
				if changed == 0 {
					continue
				}
				slog.Info("Rebuilding", logfields.Count(changed))
				changed = 0
				result, err := s.Build(ctx)
				if onBuild != nil {
					onBuild(result, err)
				}
			}
		}
	}()

	go func() {
		slog.Info("Watching for changes", logfields.Path(s.ContentRoot))
		if err := w.Start(time.Millisecond * 100); err != nil {
			slog.Error("Error starting watcher", logfields.Error(err))
		}
	}()
	return nil
}

func (s *Site) isOutputPath(fullPath string) bool {
	rel, err := filepath.Rel(s.OutputDir, fullPath)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
