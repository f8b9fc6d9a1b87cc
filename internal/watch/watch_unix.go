//go:build linux

package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// inotifyWatcher is the Linux backend, adapted from the teacher's
// FileWatcher in filewatcher_unix.go: same inotify-plus-debounce shape,
// generalized to carry its own verbose flag instead of reading a
// package-level global.
type inotifyWatcher struct {
	fd          int
	watchMap    map[int]string
	mu          sync.Mutex
	debounceMap map[string]*time.Timer
	onChange    func(string)
	verbose     bool
}

// New returns the Linux inotify-backed Watcher. onChange is called,
// debounced by 500ms, whenever a watched file is modified or closed
// after a write.
func New(onChange func(string), verbose bool) (Watcher, error) {
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("inotify_init failed: %v", err)
	}
	return &inotifyWatcher{
		fd:          fd,
		watchMap:    make(map[int]string),
		debounceMap: make(map[string]*time.Timer),
		onChange:    onChange,
		verbose:     verbose,
	}, nil
}

func (w *inotifyWatcher) AddFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	wd, err := unix.InotifyAddWatch(w.fd, absPath, unix.IN_MODIFY|unix.IN_CLOSE_WRITE)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %v", absPath, err)
	}
	w.mu.Lock()
	w.watchMap[wd] = absPath
	w.mu.Unlock()
	return nil
}

func (w *inotifyWatcher) Watch() {
	buf := make([]byte, unix.SizeofInotifyEvent*10)

	for {
		n, err := unix.Read(w.fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				time.Sleep(100 * time.Millisecond)
				continue
			}
			continue
		}

		offset := 0
		for offset < n {
			event := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
			offset += unix.SizeofInotifyEvent + int(event.Len)

			if event.Mask&(unix.IN_MODIFY|unix.IN_CLOSE_WRITE) != 0 {
				w.mu.Lock()
				path := w.watchMap[int(event.Wd)]
				w.mu.Unlock()
				if path != "" {
					w.debouncedCallback(path)
				}
			}
		}
	}
}

func (w *inotifyWatcher) debouncedCallback(path string) {
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

func (w *inotifyWatcher) Close() error {
	return unix.Close(w.fd)
}
