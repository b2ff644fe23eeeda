// Package ui provides the Bubble Tea TUI for hn.
//
// App is the navigation state machine. Every input reaches it as a message:
// key presses from Bubble Tea, and the results of the fetch and open
// commands defined below.
package ui

import "github.com/abelbrown/hncli/internal/hn"

// TopStoriesLoaded is sent once the ranked id list arrives (or fails).
type TopStoriesLoaded struct {
	IDs []hn.StoryID
	Err error
}

// PageResolved is sent when a page's items have been fetched.
// Generation identifies the request; results from superseded requests
// are dropped.
type PageResolved struct {
	Page       int
	Generation int
	Items      []hn.Item
	Err        error
}

// LinkOpened is sent after the browser launcher returns.
type LinkOpened struct {
	URL string
	Err error
}
