package hn

import "github.com/samber/lo"

// DefaultList is the ranked list browsed when none is configured.
const DefaultList = "topstories"

// Lists are the ranked story lists the Firebase API publishes.
var Lists = []string{
	"topstories",
	"newstories",
	"beststories",
	"askstories",
	"showstories",
	"jobstories",
}

// listTitles maps each list to the heading shown above the menu.
var listTitles = map[string]string{
	"topstories":  "Top Stories",
	"newstories":  "New Stories",
	"beststories": "Best Stories",
	"askstories":  "Ask HN",
	"showstories": "Show HN",
	"jobstories":  "Jobs",
}

// ValidList reports whether name is a list the API serves.
func ValidList(name string) bool {
	return lo.Contains(Lists, name)
}

// ListTitle returns the display heading for a list name.
func ListTitle(name string) string {
	if t, ok := listTitles[name]; ok {
		return t
	}
	return name
}
