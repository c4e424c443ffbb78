package workspace

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

// ChangeFunc is called with the path of a tree document after the
// workspace picked up its new content. removed is set when the file is
// gone.
type ChangeFunc func(path string, removed bool)

// Watcher keeps a workspace in sync with tree documents on disk.
type Watcher struct {
	ws       *Workspace
	watcher  *fsnotify.Watcher
	onChange ChangeFunc
	debounce time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewWatcher watches the given files, or the directories containing them.
// Events for paths that are not tree documents are ignored.
func NewWatcher(ws *Workspace, paths []string, onChange ChangeFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create file watcher")
	}
	// A watch on a file is lost when an editor replaces it on save.
	dirs := make(map[string]bool)
	for _, p := range paths {
		dir := p
		if IsTreeDocument(p) {
			dir = filepath.Dir(p)
		}
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "watch %s", dir)
		}
	}
	return &Watcher{
		ws:       ws,
		watcher:  fw,
		onChange: onChange,
		debounce: 100 * time.Millisecond,
		pending:  make(map[string]*time.Timer),
	}, nil
}

// Run handles file events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			w.stopPending()
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if IsTreeDocument(event.Name) {
				w.schedule(event)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watch: %s", err)
		}
	}
}

func (w *Watcher) schedule(event fsnotify.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	// Events under a watched "." arrive as "./name".
	path := filepath.Clean(event.Name)
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		w.apply(path)
	})
}

func (w *Watcher) apply(path string) {
	if err := w.ws.ScanFile(path); err != nil {
		log.Debugf("removed %s", path)
		w.ws.RemoveFile(path)
		if w.onChange != nil {
			w.onChange(path, true)
		}
		return
	}
	if w.onChange != nil {
		w.onChange(path, false)
	}
}

func (w *Watcher) stopPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}
