package logging

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestLoggingInit(t *testing.T) {
	dir := t.TempDir()
	if err := Init(Options{Dir: dir, Prefix: "hn-test"}); err != nil {
		t.Fatalf("Failed to initialize logging: %v", err)
	}

	Info("Test info message", "key", "value")
	Debug("Test debug message", "count", 42)
	Warn("Test warning message", "source", "test")
	Error("Test error message", "error", "test error")
	Close()

	name := fmt.Sprintf("hn-test-%s", time.Now().Format("20060102"))
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("log file %s not written: %v", name, err)
	}
	if !strings.Contains(string(data), "Test warning message") {
		t.Errorf("log file missing warning line:\n%s", data)
	}

	lines := Recent(10)
	if len(lines) == 0 || !strings.Contains(lines[len(lines)-1], "shutting down") {
		t.Errorf("Recent should end with the shutdown line, got %v", lines)
	}
}

func TestLoggingInitBadLevel(t *testing.T) {
	if err := Init(Options{Dir: t.TempDir(), Level: "chatty"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestDailyFileRotates(t *testing.T) {
	dir := t.TempDir()
	d := newDailyFile(dir, "hn-cli")
	day := time.Date(2024, 3, 9, 23, 59, 0, 0, time.Local)
	d.now = func() time.Time { return day }

	if _, err := d.Write([]byte("first\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	day = day.Add(2 * time.Minute)
	if _, err := d.Write([]byte("second\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	d.Close()

	first, err := os.ReadFile(filepath.Join(dir, "hn-cli-20240309"))
	if err != nil || string(first) != "first\n" {
		t.Errorf("hn-cli-20240309 = %q, %v", first, err)
	}
	second, err := os.ReadFile(filepath.Join(dir, "hn-cli-20240310"))
	if err != nil || string(second) != "second\n" {
		t.Errorf("hn-cli-20240310 = %q, %v", second, err)
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("disk full") }
func (failingWriter) Close() error                { return nil }

func TestAsyncWriterSwallowsErrors(t *testing.T) {
	a := newAsyncWriter(failingWriter{})
	n, err := a.Write([]byte("line\n"))
	if err != nil || n != 5 {
		t.Fatalf("Write = %d, %v; want 5, nil", n, err)
	}
	a.Close()
	if a.Dropped() != 1 {
		t.Errorf("Dropped = %d, want 1", a.Dropped())
	}

	// Writes after Close are dropped, never panic.
	if _, err := a.Write([]byte("late\n")); err != nil {
		t.Errorf("late write returned %v", err)
	}
	if a.Dropped() != 2 {
		t.Errorf("Dropped = %d, want 2", a.Dropped())
	}
}

// blockingWriter holds every Write until release is closed.
type blockingWriter struct {
	release chan struct{}
	written atomic.Int64
}

func (b *blockingWriter) Write(p []byte) (int, error) {
	<-b.release
	b.written.Add(1)
	return len(p), nil
}

func (b *blockingWriter) Close() error { return nil }

func TestAsyncWriterDropsWhenQueueFull(t *testing.T) {
	w := &blockingWriter{release: make(chan struct{})}
	a := newAsyncWriter(w)

	const extra = 10
	total := queueSize + extra
	start := time.Now()
	for i := 0; i < total; i++ {
		if n, err := a.Write([]byte("line\n")); err != nil || n != 5 {
			t.Fatalf("Write = %d, %v; want 5, nil", n, err)
		}
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("writes blocked on a stuck file: %v", elapsed)
	}

	// The drain goroutine may hold one line, the rest of the overflow is lost.
	if d := a.Dropped(); d < extra-1 || d > extra {
		t.Errorf("Dropped = %d, want %d or %d", d, extra-1, extra)
	}

	close(w.release)
	a.Close()
	if got := uint64(w.written.Load()) + a.Dropped(); got != uint64(total) {
		t.Errorf("written + dropped = %d, want %d", got, total)
	}
}

func TestLogBeforeInitIsNoop(t *testing.T) {
	saved := Logger
	Logger = nil
	defer func() { Logger = saved }()

	Info("nobody listens")
	Debug("nobody listens", "id", 42)
	Warn("nobody listens", "err", errors.New("x"))
	Error("nobody listens", "err", errors.New("x"))
}

func TestRingWrapAround(t *testing.T) {
	r := NewRing(4)
	for i := 0; i < 8; i++ {
		fmt.Fprintf(r, "line %d\n", i)
	}

	got := r.Last(10)
	if len(got) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(got))
	}
	for i, line := range got {
		want := fmt.Sprintf("line %d", i+4)
		if line != want {
			t.Errorf("got[%d]=%q, want %q", i, line, want)
		}
	}
	if r.Last(0) != nil {
		t.Error("Last(0) should be nil")
	}
}

func TestRingSplitsLines(t *testing.T) {
	r := NewRing(8)
	r.Write([]byte("a\nb\n\nc\n"))
	if r.Len() != 3 {
		t.Fatalf("Len = %d, want 3", r.Len())
	}
	got := r.Last(2)
	if got[0] != "b" || got[1] != "c" {
		t.Errorf("Last(2) = %v", got)
	}
}
