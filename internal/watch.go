package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	tt "github.com/fmtlint/fmtlint/internal/types"
)

// debounce groups the burst of write events editors emit on save into a
// single re-check.
const debounce = 100 * time.Millisecond

type watchState struct {
	watcher *fsnotify.Watcher

	// isWatching is read by the watch loop goroutine while StartWatching and
	// StopWatching flip it from the caller's goroutine.
	isWatching atomic.Bool
}

// StartWatching re-checks files under dirs whenever they change and hands
// the resulting issues to report.
func (e *Engine) StartWatching(dirs []string, report func(filename string, issues []tt.Issue)) error {
	if e.isWatching.Load() {
		return fmt.Errorf("already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}

	for _, dir := range dirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			watcher.Close()
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	e.watcher = watcher
	e.isWatching.Store(true)
	go e.watchLoop(report)
	return nil
}

// StopWatching shuts the watch loop down.
func (e *Engine) StopWatching() error {
	if !e.isWatching.Swap(false) {
		return nil
	}
	return e.watcher.Close()
}

func (e *Engine) watchLoop(report func(string, []tt.Issue)) {
	for e.isWatching.Load() {
		select {
		case event, ok := <-e.watcher.Events:
			if !ok {
				return
			}
			e.handleFileEvent(event, report)
		case err, ok := <-e.watcher.Errors:
			if !ok {
				return
			}
			if e.logger != nil {
				e.logger.Error("Watcher error", zap.Error(err))
			}
		}
	}
}

func (e *Engine) handleFileEvent(event fsnotify.Event, report func(string, []tt.Issue)) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !e.ShouldCheck(event.Name) {
		return
	}

	// wait for the write burst to settle before re-checking
	time.Sleep(debounce)

	issues, err := e.Run(context.Background(), event.Name)
	if err != nil {
		if e.logger != nil {
			e.logger.Error("Error re-checking changed file", zap.String("file", event.Name), zap.Error(err))
		}
		return
	}
	report(event.Name, issues)
}

