// Package watcher notices when another process writes the payload database,
// so a viewer can reload what `dbug serve` stored.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/dbug/internal/log"
	"github.com/zjrosen/dbug/internal/pubsub"
)

// Kind distinguishes watcher notices.
type Kind int

const (
	// DBChanged means the database or its WAL was written.
	DBChanged Kind = iota
	// WatcherError carries an fsnotify error; watching continues.
	WatcherError
)

// Notice is published on the watcher's broker.
type Notice struct {
	Kind Kind
	Err  error
}

// Watcher monitors a SQLite database file and publishes debounced notices.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dbPath    string
	debounce  time.Duration
	broker    *pubsub.Broker[Notice]
	done      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
}

// Config holds watcher configuration options.
type Config struct {
	DBPath      string
	DebounceDur time.Duration
}

// DefaultConfig debounces bursts of writes into one notice per 300ms.
func DefaultConfig(dbPath string) Config {
	return Config{
		DBPath:      dbPath,
		DebounceDur: 300 * time.Millisecond,
	}
}

// New creates a watcher. Nothing is watched until Start.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		dbPath:    cfg.DBPath,
		debounce:  cfg.DebounceDur,
		broker:    pubsub.NewBroker[Notice](),
		done:      make(chan struct{}),
	}, nil
}

// Subscribe streams notices until ctx is cancelled or the watcher stops.
func (w *Watcher) Subscribe(ctx context.Context) <-chan pubsub.Event[Notice] {
	return w.broker.Subscribe(ctx)
}

// Start begins watching the directory holding the database. SQLite
// replaces the WAL file, so the directory is watched rather than the file.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.dbPath)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	log.Debug(log.CatWatcher, "Watching database directory", "dir", dir)

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop terminates the watcher and closes every subscription.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
		w.wg.Wait()
		w.broker.Close()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			log.Debug(log.CatWatcher, "Database changed", "path", w.dbPath)
			w.broker.Publish(pubsub.UpdatedEvent, Notice{Kind: DBChanged})

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "Watch error", err)
			w.broker.Publish(pubsub.UpdatedEvent, Notice{Kind: WatcherError, Err: err})

		case <-w.done:
			return
		}
	}
}

// isRelevantEvent keeps writes and creates of the database and its WAL.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	base := filepath.Base(event.Name)
	db := filepath.Base(w.dbPath)
	return base == db || base == db+"-wal"
}
