package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"blockcanvas/internal/eventbus"
)

const reloadDebounce = 200 * time.Millisecond

// Watch reloads the config file at path whenever it changes on disk and
// publishes a ConfigChangedEvent carrying the new *Config. The containing
// directory is watched so editors that save by rename are seen.
// Watching stops when ctx is done.
func Watch(ctx context.Context, path string, svc ConfigService, bus eventbus.EventBus) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	go func() {
		defer watcher.Close()

		var mu sync.Mutex
		var debounceTimer *time.Timer
		defer func() {
			mu.Lock()
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			mu.Unlock()
		}()

		reload := func() {
			cfg, err := svc.LoadFromPath(target)
			if err != nil {
				log.Printf("Config reload failed: %v", err)
				bus.Publish(eventbus.ErrorEvent{Message: "config reload failed", Err: err})
				return
			}
			log.Printf("Config reloaded from %s", target)
			bus.Publish(eventbus.ConfigChangedEvent{Path: target, Config: cfg})
		}

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}

				mu.Lock()
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(reloadDebounce, func() {
					if ctx.Err() != nil {
						return
					}
					reload()
				})
				mu.Unlock()

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Config watcher error: %v", err)
			}
		}
	}()

	return nil
}
