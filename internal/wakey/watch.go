package wakey

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// SettingsWatcher reports edits to the settings file so management
// mode can pick up a new server address or pointer offsets without a
// restart. Editors write in bursts; events within the debounce window
// collapse into one.
type SettingsWatcher struct {
	watcher *fsnotify.Watcher
	name    string
	Events  chan struct{}
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewSettingsWatcher(path string) (*SettingsWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors that replace the file atomically
	// would otherwise drop the watch on the old inode.
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}

	sw := &SettingsWatcher{
		watcher: w,
		name:    filepath.Base(path),
		Events:  make(chan struct{}, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go sw.run()
	return sw, nil
}

func (sw *SettingsWatcher) Close() error {
	var err error
	sw.once.Do(func() {
		close(sw.closeCh)
		err = sw.watcher.Close()
	})
	return err
}

func (sw *SettingsWatcher) run() {
	var last time.Time
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != sw.name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if time.Since(last) < 200*time.Millisecond {
				continue
			}
			last = time.Now()
			select {
			case sw.Events <- struct{}{}:
			default:
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			select {
			case sw.Errors <- err:
			default:
			}
		case <-sw.closeCh:
			return
		}
	}
}

// Pending drains the watcher without blocking and reports whether any
// edit arrived since the last call.
func (sw *SettingsWatcher) Pending() bool {
	changed := false
	for {
		select {
		case <-sw.Events:
			changed = true
		default:
			return changed
		}
	}
}
