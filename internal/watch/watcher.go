package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"vimpi/internal/log"

	"github.com/fsnotify/fsnotify"
)

// Change reports that the listing of Dir changed.
type Change struct {
	Dir       string
	Path      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Watcher monitors directories for entries being added, removed or renamed
type Watcher struct {
	// Directories being watched
	directories []string

	// Channels to deliver listing changes and watch failures
	changes chan Change
	errs    chan error

	// Channel to signal stop, and to report the event loop has exited
	stopChan chan struct{}
	done     chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	mutex   sync.RWMutex
	running bool
}

// New creates a new directory watcher using fsnotify
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		directories: []string{},
		changes:     make(chan Change, 16),
		errs:        make(chan error, 4),
		stopChan:    make(chan struct{}),
		done:        make(chan struct{}),
		fsWatcher:   fsWatcher,
	}, nil
}

// AddDirectory adds a directory to watch using fsnotify
func (w *Watcher) AddDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	for _, existing := range w.directories {
		if existing == dir {
			return nil
		}
	}

	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add directory %s to watcher: %w", dir, err)
	}
	w.directories = append(w.directories, dir)

	log.LogWithFields(log.F("directory", dir)).Debug("Watching directory")
	return nil
}

// RemoveDirectory stops watching dir. Unknown directories are ignored.
func (w *Watcher) RemoveDirectory(dir string) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	for i, existing := range w.directories {
		if existing != dir {
			continue
		}
		w.directories = append(w.directories[:i], w.directories[i+1:]...)
		// The directory may already be gone, in which case fsnotify dropped it.
		if err := w.fsWatcher.Remove(dir); err != nil {
			log.LogWithFields(log.F("directory", dir), log.F("error", err)).Debug("Remove watch")
		}
		return nil
	}
	return nil
}

// Changes returns the channel that delivers listing changes. It is closed
// when the watcher stops.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Errors returns the channel that delivers fsnotify failures. It is closed
// when the watcher stops.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Start begins the event loop
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return fmt.Errorf("watcher already running")
	}
	select {
	case <-w.stopChan:
		return fmt.Errorf("watcher already stopped")
	default:
	}
	w.running = true

	go w.loop()

	log.Debug("Watcher started.")
	return nil
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.errs)
	defer close(w.changes)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			// Writes do not change a listing.
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
				continue
			}

			change := Change{
				Dir:       filepath.Dir(event.Name),
				Path:      event.Name,
				Op:        event.Op,
				Timestamp: time.Now(),
			}

			select {
			case w.changes <- change:
			case <-w.stopChan:
				return
			default:
				log.LogWithFields(log.F("path", event.Name)).Warn("Change channel is full, dropped event")
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

			select {
			case w.errs <- err:
			case <-w.stopChan:
				return
			default:
			}

		case <-w.stopChan:
			return
		}
	}
}

// Stop halts the watcher and waits for its event loop to exit
func (w *Watcher) Stop() {
	w.mutex.Lock()
	if !w.running {
		w.mutex.Unlock()
		// Never started, or already stopped. fsnotify's Close is idempotent.
		w.fsWatcher.Close()
		return
	}
	w.running = false
	close(w.stopChan)
	w.mutex.Unlock()

	<-w.done

	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}

	log.Debug("Watcher stopped.")
}

// IsRunning returns whether the watcher is currently active
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// Directories returns the list of directories being watched
func (w *Watcher) Directories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	dirsCopy := make([]string, len(w.directories))
	copy(dirsCopy, w.directories)
	return dirsCopy
}
