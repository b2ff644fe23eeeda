package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// debugPanelChrome is the number of terminal lines consumed by DebugPanel's
// border (top + bottom = 2) and vertical padding (top + bottom = 2).
// Must be updated if DebugPanel style changes.
const debugPanelChrome = 4

// debugLogLines is how many recent log lines the overlay asks for.
const debugLogLines = 50

// debugOverlay renders the most recent diagnostic log lines, newest last.
// Returns empty string if recent is nil.
func debugOverlay(recent func(n int) []string, width, height int) string {
	if recent == nil {
		return ""
	}

	// One line for the header.
	maxLines := height - debugPanelChrome - 1
	if maxLines < 1 {
		maxLines = 1
	}
	if maxLines > debugLogLines {
		maxLines = debugLogLines
	}

	panelWidth := width - 4
	if panelWidth < 20 {
		panelWidth = 20
	}

	lines := []string{DebugHeaderStyle.Render("Recent Log")}
	logLines := recent(maxLines)
	if len(logLines) == 0 {
		lines = append(lines, "  (empty)")
	}
	for _, l := range logLines {
		lines = append(lines, runewidth.Truncate(l, panelWidth-4, "..."))
	}

	return DebugPanel.Width(panelWidth).Render(strings.Join(lines, "\n"))
}

// debugStatusBar renders the status bar for the debug overlay.
func debugStatusBar(width int) string {
	keys := StatusBarKey.Render("D") + StatusBarText.Render(":close")
	return RenderStatusBar("[DEBUG]  "+keys, width)
}
