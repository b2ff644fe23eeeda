package logging

import (
	"strings"
	"sync"
)

// DefaultRingSize is how many recent lines the debug overlay can show.
const DefaultRingSize = 256

// Ring is a fixed-size circular buffer of log lines.
// Goroutine-safe for concurrent Write and read operations.
type Ring struct {
	mu    sync.Mutex
	buf   []string
	size  int
	head  int // next write position
	count int // number of valid entries (0..size)
}

// NewRing creates a ring with the given capacity.
func NewRing(size int) *Ring {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Ring{buf: make([]string, size), size: size}
}

// Write stores each non-empty line of p, overwriting the oldest when full.
func (r *Ring) Write(p []byte) (int, error) {
	lines := strings.Split(strings.TrimRight(string(p), "\n"), "\n")
	r.mu.Lock()
	for _, line := range lines {
		if line == "" {
			continue
		}
		r.buf[r.head] = line
		r.head = (r.head + 1) % r.size
		if r.count < r.size {
			r.count++
		}
	}
	r.mu.Unlock()
	return len(p), nil
}

// Last returns the n most recent lines in chronological order.
// If n > count, returns all lines. If n <= 0, returns nil.
func (r *Ring) Last(n int) []string {
	if n <= 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count == 0 {
		return nil
	}
	if n > r.count {
		n = r.count
	}

	result := make([]string, n)
	start := (r.head - n + r.size) % r.size
	if start+n <= r.size {
		copy(result, r.buf[start:start+n])
	} else {
		first := r.size - start
		copy(result, r.buf[start:])
		copy(result[first:], r.buf[:n-first])
	}
	return result
}

// Len returns the number of lines currently held.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}
