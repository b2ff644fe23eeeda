package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/hncli/internal/hn"
	"github.com/abelbrown/hncli/internal/page"
	"github.com/abelbrown/hncli/internal/ui"
)

// storySource is the part of *fetch.Gateway the UI commands need.
type storySource interface {
	TopStories(ctx context.Context, list string) ([]hn.StoryID, error)
	page.ItemFetcher
}

// urlOpener is satisfied by *browser.Opener.
type urlOpener interface {
	Open(url string) error
}

// commands turns gateway and browser calls into tea.Cmds for the App.
type commands struct {
	ctx    context.Context
	src    storySource
	opener urlOpener
	list   string
}

func (c commands) loadTopStories() tea.Cmd {
	return func() tea.Msg {
		ids, err := c.src.TopStories(c.ctx, c.list)
		return ui.TopStoriesLoaded{IDs: ids, Err: err}
	}
}

func (c commands) resolvePage(ids []hn.StoryID, pageNum, generation int) tea.Cmd {
	return func() tea.Msg {
		items, err := page.Resolve(c.ctx, c.src, ids, page.Size, pageNum)
		return ui.PageResolved{Page: pageNum, Generation: generation, Items: items, Err: err}
	}
}

func (c commands) openURL(url string) tea.Cmd {
	return func() tea.Msg {
		return ui.LinkOpened{URL: url, Err: c.opener.Open(url)}
	}
}

func (c commands) appConfig(recent func(n int) []string) ui.AppConfig {
	return ui.AppConfig{
		List:           c.list,
		LoadTopStories: c.loadTopStories,
		ResolvePage:    c.resolvePage,
		OpenURL:        c.openURL,
		RecentLogs:     recent,
	}
}
