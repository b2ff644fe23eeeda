package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/hncli/internal/logging"
)

func TestDebugOverlayNilSource(t *testing.T) {
	result := debugOverlay(nil, 80, 24)
	if result != "" {
		t.Errorf("debugOverlay(nil) should return empty string, got %q", result)
	}
}

func TestDebugOverlayRendersLines(t *testing.T) {
	ring := logging.NewRing(16)
	fmt.Fprintln(ring, "INFO top story ids fetched count=500")
	fmt.Fprintln(ring, "ERRO failed to load page page=3")

	result := debugOverlay(ring.Last, 80, 24)

	if !strings.Contains(result, "Recent Log") {
		t.Error("overlay should contain 'Recent Log' header")
	}
	if !strings.Contains(result, "count=500") {
		t.Errorf("overlay should show log lines, got:\n%s", result)
	}
	if !strings.Contains(result, "page=3") {
		t.Errorf("overlay should show the newest line, got:\n%s", result)
	}
}

func TestDebugOverlayEmpty(t *testing.T) {
	result := debugOverlay(logging.NewRing(4).Last, 80, 24)
	if !strings.Contains(result, "(empty)") {
		t.Errorf("empty ring should say so, got:\n%s", result)
	}
}

func TestDebugOverlayTruncation(t *testing.T) {
	ring := logging.NewRing(64)
	for i := 0; i < 30; i++ {
		fmt.Fprintf(ring, "line %d\n", i)
	}

	// Very small height should still render without panic.
	result := debugOverlay(ring.Last, 80, 10)
	if result == "" {
		t.Error("overlay should still render with small height")
	}
	if strings.Contains(result, "line 24") {
		t.Error("oldest lines should be cut when the terminal is short")
	}
	if !strings.Contains(result, "line 29") {
		t.Errorf("newest line should be kept, got:\n%s", result)
	}

	lines := strings.Count(result, "\n")
	// height=10 leaves 5 content lines plus border and padding.
	if lines > 10 {
		t.Errorf("overlay should be truncated, got %d lines", lines)
	}
}

func TestDebugToggle(t *testing.T) {
	ring := logging.NewRing(16)
	fmt.Fprintln(ring, "INFO hello")
	app := NewAppWithConfig(AppConfig{RecentLogs: ring.Last})
	app.width = 80
	app.height = 24

	if app.showDebug {
		t.Error("debug should be hidden initially")
	}

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'D'}})
	updated := model.(App)
	if !updated.showDebug {
		t.Error("D should show debug overlay")
	}

	view := updated.View()
	if !strings.Contains(view, "[DEBUG]") {
		t.Errorf("debug view should contain '[DEBUG]', got:\n%s", view)
	}
	if !strings.Contains(view, "INFO hello") {
		t.Errorf("debug view should show recent log lines, got:\n%s", view)
	}

	model, _ = updated.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'D'}})
	updated = model.(App)
	if updated.showDebug {
		t.Error("second D should hide debug overlay")
	}
}
