// Package hn holds the Hacker News data model shared by the fetch layer,
// the pagination engine and the UI.
package hn

import (
	"fmt"
	"time"
)

// PlaceholderTitle is shown in place of an item that was deleted
// or came back from the upstream database as null.
const PlaceholderTitle = "[unavailable]"

// DiscussionURLFormat builds the news.ycombinator.com discussion page for an id.
const DiscussionURLFormat = "https://news.ycombinator.com/item?id=%d"

// StoryID identifies a story upstream. Zero means "no id".
type StoryID int

// Item is either a resolved story or a placeholder. A placeholder keeps its
// slot in a page so ranks stay stable; it has a zero ID.
type Item struct {
	ID          StoryID `json:"id"`
	Type        string  `json:"type,omitempty"`
	Title       string  `json:"title"`
	URL         string  `json:"url,omitempty"` // empty for Ask HN style posts
	Text        string  `json:"text,omitempty"`
	By          string  `json:"by"`
	Time        int64   `json:"time"`
	Score       int     `json:"score"`
	Descendants int     `json:"descendants"` // comment count
	Deleted     bool    `json:"deleted,omitempty"`
	Dead        bool    `json:"dead,omitempty"`
}

// Placeholder returns the canonical stand-in for a missing item.
func Placeholder() Item {
	return Item{Title: PlaceholderTitle}
}

// IsPlaceholder reports whether the item stands in for a missing story.
func (it Item) IsPlaceholder() bool {
	return it.ID == 0
}

// Posted returns the submission time.
func (it Item) Posted() time.Time {
	return time.Unix(it.Time, 0)
}

// DiscussionURL returns the comments page for the item, or "" for placeholders.
func (it Item) DiscussionURL() string {
	if it.IsPlaceholder() {
		return ""
	}
	return DiscussionURL(it.ID)
}

// Link returns the story URL, falling back to the discussion page for
// text posts that have none.
func (it Item) Link() string {
	if it.IsPlaceholder() {
		return ""
	}
	if it.URL != "" {
		return it.URL
	}
	return it.DiscussionURL()
}

// DiscussionURL formats the discussion page URL for id.
func DiscussionURL(id StoryID) string {
	return fmt.Sprintf(DiscussionURLFormat, id)
}

// Normalize turns an upstream payload into the item the UI should see.
// nil, deleted and id-less payloads become placeholders. Dead stories keep
// their title and URL and stay openable.
func Normalize(raw *Item) Item {
	if raw == nil || raw.Deleted || raw.ID == 0 {
		return Placeholder()
	}
	return *raw
}
