package logging

import (
	"io"
	"sync"
	"sync/atomic"
)

// queueSize is the capacity of the async write channel.
const queueSize = 1024

// asyncWriter hands lines to a drain goroutine so callers never wait on disk.
// The drain goroutine is the sole writer to w.
type asyncWriter struct {
	w         io.WriteCloser
	ch        chan []byte
	dropped   atomic.Uint64 // lines dropped due to full channel or write error
	closed    atomic.Bool   // true after Close(); prevents send-on-closed-channel panic
	mu        sync.RWMutex  // held for read while sending, for write while closing
	done      chan struct{}
	closeOnce sync.Once
}

func newAsyncWriter(w io.WriteCloser) *asyncWriter {
	a := &asyncWriter{
		w:    w,
		ch:   make(chan []byte, queueSize),
		done: make(chan struct{}),
	}
	go a.drain()
	return a
}

// Write queues a copy of p. It always reports success.
func (a *asyncWriter) Write(p []byte) (int, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed.Load() {
		a.dropped.Add(1)
		return len(p), nil
	}
	line := make([]byte, len(p))
	copy(line, p)
	select {
	case a.ch <- line:
	default:
		a.dropped.Add(1)
	}
	return len(p), nil
}

func (a *asyncWriter) drain() {
	defer close(a.done)
	for line := range a.ch {
		if _, err := a.w.Write(line); err != nil {
			a.dropped.Add(1)
		}
	}
	a.w.Close()
}

// Close stops accepting lines, flushes the queue and closes w.
func (a *asyncWriter) Close() {
	a.closeOnce.Do(func() {
		a.mu.Lock()
		a.closed.Store(true)
		close(a.ch)
		a.mu.Unlock()
		<-a.done
	})
}

// Dropped returns the number of lines that never reached w.
func (a *asyncWriter) Dropped() uint64 {
	return a.dropped.Load()
}
