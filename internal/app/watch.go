package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watch reconvertit le fichier à chaque écriture. On surveille le répertoire
// parent plutôt que le fichier lui-même : beaucoup d'éditeurs sauvegardent
// par renommage, ce qui invaliderait un watch posé directement sur le fichier.
func (a *App) watch(ctx context.Context, inputPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(inputPath)
	if dir == "" {
		dir = "."
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	// première conversion immédiate
	if err := a.convertOnce(ctx, inputPath); err != nil {
		a.ui.PrintError(ctx, fmt.Sprintf("conversion: %v", err))
	}
	a.ui.PrintInfo(ctx, fmt.Sprintf("Surveillance de %s (Ctrl+C pour quitter)", inputPath))

	// regroupe les écritures rapprochées (sauvegardes en plusieurs étapes)
	debounce := time.Duration(a.cfg.WatchDebounceMs) * time.Millisecond
	var timer *time.Timer
	var fire <-chan time.Time

	target := filepath.Clean(inputPath)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				timer.Reset(debounce)
			}

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.ui.PrintError(ctx, fmt.Sprintf("watcher: %v", werr))

		case <-fire:
			if err := a.convertOnce(ctx, inputPath); err != nil {
				a.ui.PrintError(ctx, fmt.Sprintf("conversion: %v", err))
			}
		}
	}
}
