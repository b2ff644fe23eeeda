package fetch

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/hncli/internal/cache"
	"github.com/abelbrown/hncli/internal/hn"
	"github.com/abelbrown/hncli/internal/logging"
)

// DefaultMaxConcurrency limits parallel item reads within one FetchItems call.
const DefaultMaxConcurrency = 10

// Source is the upstream key-value API. *Fetcher implements it.
type Source interface {
	List(ctx context.Context, name string) ([]hn.StoryID, error)
	Item(ctx context.Context, id hn.StoryID) (*hn.Item, error)
}

// Gateway resolves story ids to items through the cache.
type Gateway struct {
	src            Source
	cache          cache.Cache
	maxConcurrency int
	metrics        *Metrics
}

// NewGateway creates a Gateway. A nil metrics gets an unregistered set;
// maxConcurrency <= 0 selects DefaultMaxConcurrency.
func NewGateway(src Source, c cache.Cache, maxConcurrency int, m *Metrics) *Gateway {
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultMaxConcurrency
	}
	if m == nil {
		m = NewMetrics(nil)
	}
	return &Gateway{src: src, cache: c, maxConcurrency: maxConcurrency, metrics: m}
}

// TopStories reads the named ranked list. It is not cached.
func (g *Gateway) TopStories(ctx context.Context, list string) ([]hn.StoryID, error) {
	ids, err := g.src.List(ctx, list)
	if err != nil {
		return nil, &FetchError{Op: list, Err: err}
	}
	logging.Info("story ids fetched", "list", list, "count", len(ids))
	return ids, nil
}

// FetchItem returns the item for id, from cache when possible. An empty
// upstream answer is cached as a placeholder; a failed read is not cached.
func (g *Gateway) FetchItem(ctx context.Context, id hn.StoryID) (hn.Item, error) {
	if it, ok := g.cache.Get(id); ok {
		g.metrics.CacheHits.Inc()
		logging.Debug("hitting item in cache", "id", id)
		return it, nil
	}

	g.metrics.CacheMisses.Inc()
	logging.Debug("fetching item", "id", id)

	raw, err := g.src.Item(ctx, id)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			g.metrics.FetchErrors.Inc()
		}
		return hn.Item{}, &FetchError{Op: "item", ID: id, Err: err}
	}

	it := hn.Normalize(raw)
	if it.IsPlaceholder() {
		g.metrics.Placeholders.Inc()
		logging.Debug("item unavailable, caching placeholder", "id", id)
	}
	g.cache.Put(id, it)
	return it, nil
}

// FetchItems resolves ids concurrently. The result has the same order as
// ids. If any read fails, the first error is returned and no items are.
func (g *Gateway) FetchItems(ctx context.Context, ids []hn.StoryID) ([]hn.Item, error) {
	if len(ids) == 0 {
		return []hn.Item{}, nil
	}

	items := make([]hn.Item, len(ids))
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(g.maxConcurrency)

	for i, id := range ids {
		grp.Go(func() error {
			it, err := g.FetchItem(gctx, id)
			if err != nil {
				return err
			}
			items[i] = it
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

// Cached reports how many ids the cache holds.
func (g *Gateway) Cached() int {
	return g.cache.Len()
}
