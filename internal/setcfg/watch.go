package setcfg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Watcher reports changes to set config files through fsnotify. It watches
// the sets directory and every profiles directory that exists at start.
type Watcher struct {
	onChange func(string) // called with path that changed

	fs       *fsnotify.Watcher
	stopOnce sync.Once
	done     chan struct{}
}

// NewWatcher creates a watcher over a loader's config tree.
func NewWatcher(p Paths, onChange func(string)) (*Watcher, error) {
	dirs := []string{p.SetsDir()}
	profiles, err := filepath.Glob(filepath.Join(p.SetsDir(), "*", "profiles"))
	if err != nil {
		return nil, err
	}
	dirs = append(dirs, profiles...)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	for _, d := range dirs {
		if _, err := os.Stat(d); err != nil {
			continue
		}
		if err := fw.Add(d); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("watch %s: %w", d, err)
		}
	}
	return &Watcher{
		onChange: onChange,
		fs:       fw,
		done:     make(chan struct{}),
	}, nil
}

// Start processes events in a goroutine until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	go func() {
		defer close(w.done)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.fs.Events:
				if !ok {
					return
				}
				if !relevant(ev) {
					continue
				}
				log.Debug().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("set config changed")
				if w.onChange != nil {
					w.onChange(ev.Name)
				}
			case err, ok := <-w.fs.Errors:
				if !ok {
					return
				}
				log.Warn().Err(err).Msg("set config watcher error")
			}
		}
	}()
}

// Stop closes the underlying watcher; a started event loop then exits and
// closes Done. Calling Stop twice is allowed.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		err = w.fs.Close()
	})
	return err
}

// Done is closed once the event loop has exited.
func (w *Watcher) Done() <-chan struct{} { return w.done }

func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
		!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return slices.Contains(extensions, filepath.Ext(ev.Name))
}
