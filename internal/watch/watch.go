// Package watch reports changes to a single file as bubbletea messages.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"geoedit/internal/logging"
)

// ChangedMsg is sent when the watched file was written or recreated.
type ChangedMsg struct {
	Path string
}

// ErrMsg carries a watcher error into the program.
type ErrMsg struct {
	Err error
}

// debounce collapses the burst of events most editors produce on save.
const debounce = 100 * time.Millisecond

// Watcher watches the directory of one file, so the watch survives
// editors that replace the file by renaming over it.
type Watcher struct {
	w    *fsnotify.Watcher
	path string
	msgs chan tea.Msg
	done chan struct{}
	once sync.Once

	mu   sync.Mutex
	last time.Time
}

// New starts watching path.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}
	w := &Watcher{
		w:    fw,
		path: abs,
		msgs: make(chan tea.Msg, 1),
		done: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if !w.due(time.Now()) {
				continue
			}
			logging.L().Debug().Str("path", w.path).Str("op", ev.Op.String()).Msg("watched file changed")
			w.send(ChangedMsg{Path: w.path})
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			logging.L().Warn().Err(err).Str("path", w.path).Msg("watcher error")
			w.send(ErrMsg{Err: err})
		}
	}
}

func (w *Watcher) due(now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if now.Sub(w.last) < debounce {
		return false
	}
	w.last = now
	return true
}

// send drops the message when one is already pending; the reader
// reloads the whole file either way.
func (w *Watcher) send(msg tea.Msg) {
	select {
	case w.msgs <- msg:
	default:
	}
}

// Wait returns a command that blocks until the next change. The program
// must issue it again after each message it receives.
func (w *Watcher) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-w.msgs:
			return msg
		case <-w.done:
			return nil
		}
	}
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.w.Close()
	})
	return err
}
