package hn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		raw         *Item
		placeholder bool
	}{
		{name: "null payload", raw: nil, placeholder: true},
		{name: "deleted", raw: &Item{ID: 7, Deleted: true}, placeholder: true},
		{name: "dead", raw: &Item{ID: 7, Dead: true, Title: "spam"}, placeholder: false},
		{name: "missing id", raw: &Item{Title: "odd"}, placeholder: true},
		{name: "story", raw: &Item{ID: 7, Title: "Show HN: thing"}, placeholder: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			assert.Equal(t, tt.placeholder, got.IsPlaceholder())
			if tt.placeholder {
				assert.Equal(t, PlaceholderTitle, got.Title)
			}
		})
	}
}

func TestLinkFallsBackToDiscussion(t *testing.T) {
	ask := Item{ID: 42, Title: "Ask HN: anything"}
	assert.Equal(t, "https://news.ycombinator.com/item?id=42", ask.Link())
	assert.Equal(t, "https://news.ycombinator.com/item?id=42", ask.DiscussionURL())

	story := Item{ID: 43, Title: "A link", URL: "https://example.com/a"}
	assert.Equal(t, "https://example.com/a", story.Link())
	assert.Equal(t, "https://news.ycombinator.com/item?id=43", story.DiscussionURL())
}

func TestPlaceholderHasNoLinks(t *testing.T) {
	p := Placeholder()
	assert.Empty(t, p.Link())
	assert.Empty(t, p.DiscussionURL())
}

func TestValidList(t *testing.T) {
	assert.True(t, ValidList("topstories"))
	assert.True(t, ValidList("askstories"))
	assert.False(t, ValidList("item"))
	assert.Equal(t, "Top Stories", ListTitle(DefaultList))
	assert.Equal(t, "weird", ListTitle("weird"))
}
