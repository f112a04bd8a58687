package state

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// StoreChangedMsg is delivered to the running program whenever the
// database file is written by another process, such as the HTTP API.
type StoreChangedMsg struct {
	Path string
}

type StoreWatcherErrMsg struct {
	Err error
}

// StoreWatcher watches the directory containing the database file so the
// outline view can reload when the data changes underneath it. The
// directory is watched rather than the file itself because SQLite swaps
// journal files in and out during commits.
type StoreWatcher struct {
	watcher *fsnotify.Watcher
	dbPath  string
	done    chan struct{}
	once    sync.Once
}

func NewStoreWatcher(dbPath string) (*StoreWatcher, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, errors.New("database path cannot be empty")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &StoreWatcher{
		watcher: w,
		dbPath:  filepath.Clean(dbPath),
		done:    make(chan struct{}),
	}

	if err := w.Add(filepath.Dir(watcher.dbPath)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return watcher, nil
}

// Start returns a command that blocks until the database changes on disk
// or the watcher is closed. Re-issue it after each received message.
func (w *StoreWatcher) Start() tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		for {
			select {
			case <-w.done:
				return nil
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if !w.isRelevant(event) {
					continue
				}
				return StoreChangedMsg{Path: event.Name}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil {
					return StoreWatcherErrMsg{Err: err}
				}
			}
		}
	}
}

func (w *StoreWatcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
	})

	return closeErr
}

func (w *StoreWatcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}

	name := filepath.Clean(event.Name)
	if name == w.dbPath {
		return true
	}

	// WAL and journal writes land before the main file is touched.
	base := filepath.Base(w.dbPath)
	return strings.HasPrefix(filepath.Base(name), base+"-")
}
