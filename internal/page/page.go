// Package page slices the ranked story list into fixed-size pages and
// resolves a page's ids into items.
package page

import (
	"context"
	"fmt"
	"strconv"

	"github.com/samber/lo"

	"github.com/abelbrown/hncli/internal/hn"
)

// Size is the number of stories on a page.
const Size = 10

// ItemFetcher resolves ids to items in order. *fetch.Gateway implements it.
type ItemFetcher interface {
	FetchItems(ctx context.Context, ids []hn.StoryID) ([]hn.Item, error)
}

// LastPage returns ceil(n/size), the number of pages n ids fill.
func LastPage(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Bounds returns the half-open range [start, end) of page within n ids.
// Pages past the end give an empty range at n.
func Bounds(page, size, n int) (start, end int) {
	start = (page - 1) * size
	end = page * size
	if end > n {
		end = n
	}
	if start > n {
		start = n
	}
	return start, end
}

// Slice returns the ids on page. Callers must keep page within [1, LastPage];
// out-of-range pages simply yield an empty slice.
func Slice(ids []hn.StoryID, size, page int) []hn.StoryID {
	start, end := Bounds(page, size, len(ids))
	return ids[start:end]
}

// Resolve fetches the items for page in list order.
func Resolve(ctx context.Context, f ItemFetcher, ids []hn.StoryID, size, page int) ([]hn.Item, error) {
	return f.FetchItems(ctx, Slice(ids, size, page))
}

// Ranks returns the 1-based global ranks start+1 .. start+count, each padded
// on the left to the width of the largest one.
func Ranks(start, count int) []string {
	if count <= 0 {
		return nil
	}
	width := len(strconv.Itoa(start + count))
	return lo.Times(count, func(i int) string {
		return fmt.Sprintf("%*d", width, start+i+1)
	})
}

// Labels builds the menu entries "<rank>) <title>" for items on a page
// starting at global offset start.
func Labels(start int, items []hn.Item) []string {
	ranks := Ranks(start, len(items))
	return lo.Map(items, func(it hn.Item, i int) string {
		return ranks[i] + ") " + it.Title
	})
}
