package tui

import (
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/minio/highwayhash"
)

// settleDelay groups the burst of events a single save produces
const settleDelay = 200 * time.Millisecond

var fingerprintKey = []byte("dsaudit-snapshot-fingerprint-key")

// fingerprint hashes the file content so saves that change nothing do not
// trigger a new analysis
func fingerprint(path string) (uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	hash, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// watcher reports changes to one file. The parent directory is watched so
// editors that save by renaming a temp file are still seen.
type watcher struct {
	fs     *fsnotify.Watcher
	path   string
	digest uint64
}

type watcherStartedMsg struct {
	watcher *watcher
}

type documentChangedMsg struct{}

type watchErrMsg struct {
	err error
}

func startWatcher(path string) tea.Cmd {
	return func() tea.Msg {
		abs, err := filepath.Abs(path)
		if err != nil {
			return errMsg{err}
		}
		fs, err := fsnotify.NewWatcher()
		if err != nil {
			return errMsg{err}
		}
		if err := fs.Add(filepath.Dir(abs)); err != nil {
			fs.Close()
			return errMsg{err}
		}
		w := &watcher{fs: fs, path: abs}
		w.digest, _ = fingerprint(abs)
		return watcherStartedMsg{watcher: w}
	}
}

// wait blocks until the watched file's content changed
func (w *watcher) wait() tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.fs.Events:
				if !ok {
					return nil
				}
				if !w.relevant(event) {
					continue
				}
				w.drain()
				if w.changed() {
					return documentChangedMsg{}
				}
			case err, ok := <-w.fs.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err}
			}
		}
	}
}

func (w *watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// changed compares the content against the last seen fingerprint. A file
// that cannot be read (mid-rename, deleted) is not reported.
func (w *watcher) changed() bool {
	digest, err := fingerprint(w.path)
	if err != nil || digest == w.digest {
		return false
	}
	w.digest = digest
	return true
}

// drain swallows the rest of a save burst
func (w *watcher) drain() {
	timer := time.NewTimer(settleDelay)
	defer timer.Stop()
	for {
		select {
		case _, ok := <-w.fs.Events:
			if !ok {
				return
			}
		case <-timer.C:
			return
		}
	}
}

// Close stops watching
func (w *watcher) Close() error {
	return w.fs.Close()
}
