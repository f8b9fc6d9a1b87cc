//go:build darwin

package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// kqueueWatcher is the Darwin backend, adapted from the teacher's
// FileWatcher in filewatcher_darwin.go: kqueue/EVFILT_VNODE in place of
// inotify, same debounce shape as the Linux backend.
type kqueueWatcher struct {
	kq          int
	watchMap    map[int]string
	mu          sync.Mutex
	debounceMap map[string]*time.Timer
	onChange    func(string)
	verbose     bool
}

// New returns the Darwin kqueue-backed Watcher.
func New(onChange func(string), verbose bool) (Watcher, error) {
	kq, err := unix.Kqueue()
	if err != nil {
		return nil, fmt.Errorf("kqueue failed: %v", err)
	}
	return &kqueueWatcher{
		kq:          kq,
		watchMap:    make(map[int]string),
		debounceMap: make(map[string]*time.Timer),
		onChange:    onChange,
		verbose:     verbose,
	}, nil
}

func (w *kqueueWatcher) AddFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	fd, err := unix.Open(absPath, unix.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open %s: %v", absPath, err)
	}

	event := unix.Kevent_t{
		Ident:  uint64(fd),
		Filter: unix.EVFILT_VNODE,
		Flags:  unix.EV_ADD | unix.EV_CLEAR,
		Fflags: unix.NOTE_WRITE | unix.NOTE_ATTRIB,
	}
	if _, err := unix.Kevent(w.kq, []unix.Kevent_t{event}, nil, nil); err != nil {
		unix.Close(fd)
		return fmt.Errorf("failed to add kevent for %s: %v", absPath, err)
	}

	w.mu.Lock()
	w.watchMap[fd] = absPath
	w.mu.Unlock()
	return nil
}

func (w *kqueueWatcher) Watch() {
	events := make([]unix.Kevent_t, 10)

	for {
		n, err := unix.Kevent(w.kq, nil, events, nil)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			time.Sleep(100 * time.Millisecond)
			continue
		}

		for i := 0; i < n; i++ {
			fd := int(events[i].Ident)
			w.mu.Lock()
			path := w.watchMap[fd]
			w.mu.Unlock()
			if path != "" {
				w.debouncedCallback(path)
			}
		}
	}
}

func (w *kqueueWatcher) debouncedCallback(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, exists := w.debounceMap[path]; exists {
		timer.Stop()
	}
	w.debounceMap[path] = time.AfterFunc(500*time.Millisecond, func() {
		w.onChange(path)
		w.mu.Lock()
		delete(w.debounceMap, path)
		w.mu.Unlock()
	})
}

func (w *kqueueWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for fd := range w.watchMap {
		unix.Close(fd)
	}
	return unix.Close(w.kq)
}
