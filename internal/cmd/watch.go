package cmd

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/Alia5/matrixfw/internal/log"

	"github.com/fsnotify/fsnotify"
)

var errWatchNoScenario = errors.New("--watch needs a scenario file")

// watchSettle collapses the burst of events editors produce on save.
const watchSettle = 100 * time.Millisecond

// watch replays the scenario once and then every time its file is written,
// until ctx is done. Failing replays are logged and do not stop watching.
func (r *Run) watch(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	if r.Scenario == "" {
		return errWatchNoScenario
	}
	path, err := filepath.Abs(r.Scenario)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// Watch the directory: editors often replace the file instead of
	// writing it in place.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	replay := func() {
		_ = r.simulateLogged(ctx, logger, rawLogger)
		logger.Info("watching scenario", "file", path)
	}
	replay()

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug("scenario changed", "file", ev.Name, "op", ev.Op.String())
			settle = time.After(watchSettle)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		case <-settle:
			settle = nil
			replay()
		}
	}
}
