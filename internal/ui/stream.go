package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/abelbrown/hncli/internal/hn"
	"github.com/abelbrown/hncli/internal/page"
)

// minLineWidth keeps lines readable before the first WindowSizeMsg arrives.
const minLineWidth = 20

// RenderTitle renders " Hacker News <list>, page N" with an optional spinner.
func RenderTitle(list string, pageNum int, spin string, width int) string {
	title := "Hacker News " + hn.ListTitle(list)
	if pageNum > 0 {
		title += fmt.Sprintf(", page %d", pageNum)
	}
	if spin != "" {
		title += " " + spin
	}
	style := TitleBar
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(title)
}

// RenderMenu renders one line per item, labelled with its global rank.
// start is the global offset of items[0].
func RenderMenu(items []hn.Item, start, focus, width int) string {
	if len(items) == 0 {
		return HelpStyle.Render("No stories on this page. Press 'r' to reload.") + "\n"
	}

	var b strings.Builder
	for i, label := range page.Labels(start, items) {
		b.WriteString(renderItemLine(label, items[i], i == focus, width))
		b.WriteString("\n")
	}
	return b.String()
}

func renderItemLine(label string, item hn.Item, selected bool, width int) string {
	// Account for the style padding.
	avail := width - 2
	if avail < minLineWidth {
		avail = minLineWidth
	}
	label = runewidth.Truncate(label, avail, "...")

	var style lipgloss.Style
	switch {
	case selected:
		style = SelectedItem
	case item.IsPlaceholder():
		style = PlaceholderItem
	default:
		style = NormalItem
	}
	return style.Render(label)
}

// RenderMeta renders the focused item's details. Placeholders have none.
func RenderMeta(item hn.Item, now time.Time, width int) string {
	if item.IsPlaceholder() {
		return ""
	}
	posted := item.Posted()
	line := fmt.Sprintf("by %s, at %s (%s), score: %d, comments: %d",
		item.By,
		posted.Format("2006-01-02 15:04"),
		humanize.RelTime(posted, now, "ago", "from now"),
		item.Score,
		item.Descendants,
	)
	avail := width - 2
	if avail < minLineWidth {
		avail = minLineWidth
	}
	return MetaLine.Render(runewidth.Truncate(line, avail, "..."))
}

// RenderStatusBar renders a one-line message at the bottom of the screen.
func RenderStatusBar(msg string, width int) string {
	style := StatusBar
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(msg)
}
