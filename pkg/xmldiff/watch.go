// watch.go - filesystem watch mode.
//
// Re-runs Diff whenever either input file changes on disk, using
// github.com/fsnotify/fsnotify to drive a reload loop off filesystem events.
package xmldiff

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fsnotify/fsnotify"
)

// RunWatch watches expectedPath and actualPath and prints a fresh diff each
// time either changes, until ctx is cancelled.
func RunWatch(ctx context.Context, expectedPath, actualPath string, cfg *Config, out io.Writer, logger Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("xmldiff: watch: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(expectedPath); err != nil {
		return fmt.Errorf("xmldiff: watch: %w", err)
	}
	if err := watcher.Add(actualPath); err != nil {
		return fmt.Errorf("xmldiff: watch: %w", err)
	}

	if err := runOnce(expectedPath, actualPath, cfg, out, logger); err != nil {
		logger.Error("initial diff failed", F("error", err.Error()))
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			logger.Debug("file changed", F("path", event.Name))
			if err := runOnce(expectedPath, actualPath, cfg, out, logger); err != nil {
				logger.Error("diff failed", F("error", err.Error()))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", F("error", err.Error()))
		}
	}
}

func runOnce(expectedPath, actualPath string, cfg *Config, out io.Writer, logger Logger) error {
	expectedData, err := os.ReadFile(expectedPath)
	if err != nil {
		return err
	}
	actualData, err := os.ReadFile(actualPath)
	if err != nil {
		return err
	}

	opts, _ := cfg.ToOptions()
	opts.Logger = logger
	edits, err := Diff(expectedData, actualData, opts)
	if err != nil {
		return err
	}

	formatter, err := GetFormatter(cfg.OutputFormat)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, formatter.Format(edits, DefaultFormatOptions()))
	return err
}
