// Package watcher reruns the organizer when watched Scala sources change.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/siyuan-infoblox/scala-imports-organizer/pkg/utils"
)

const debounceDelay = 500 * time.Millisecond

// FileWatcher watches a file or directory tree for Scala source changes and
// invokes OnChange after a debounce window, so bursts of writes trigger one
// reorganization.
type FileWatcher struct {
	root     string
	onChange func() error
	watcher  *fsnotify.Watcher
	logger   *zap.Logger

	mu       sync.Mutex
	debounce *time.Timer
}

// New builds a watcher rooted at path.
func New(root string, onChange func() error, logger *zap.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileWatcher{root: root, onChange: onChange, watcher: w, logger: logger}, nil
}

// Watch blocks, dispatching debounced change callbacks until the watcher is
// closed or its event channel fails.
func (fw *FileWatcher) Watch() error {
	if err := fw.addWatchersRecursively(fw.root); err != nil {
		return fmt.Errorf("failed to add watchers: %w", err)
	}

	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if fw.shouldExcludePath(event.Name) {
				continue
			}
			fw.logger.Debug("file event",
				zap.String("op", event.Op.String()),
				zap.String("path", event.Name),
			)

			if event.Has(fsnotify.Create) {
				if stat, err := os.Stat(event.Name); err == nil && stat.IsDir() {
					_ = fw.watcher.Add(event.Name)
				}
			}

			if utils.IsScalaFile(event.Name) && (event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				fw.scheduleChange()
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			fw.logger.Error("watcher error", zap.Error(err))
		}
	}
}

func (fw *FileWatcher) scheduleChange() {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.debounce != nil {
		fw.debounce.Stop()
	}
	fw.debounce = time.AfterFunc(debounceDelay, func() {
		fw.logger.Debug("changes detected, reorganizing")
		if err := fw.onChange(); err != nil {
			fw.logger.Error("reorganization failed", zap.Error(err))
		}
	})
}

// Close stops the watcher and any pending debounce.
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.debounce != nil {
		fw.debounce.Stop()
	}
	return fw.watcher.Close()
}

func (fw *FileWatcher) shouldExcludePath(path string) bool {
	base := filepath.Base(path)
	return base == "target" || strings.HasPrefix(base, ".")
}

func (fw *FileWatcher) addWatchersRecursively(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fw.watcher.Add(filepath.Dir(root))
	}
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && fw.shouldExcludePath(path) {
				return filepath.SkipDir
			}
			return fw.watcher.Add(path)
		}
		return nil
	})
}
