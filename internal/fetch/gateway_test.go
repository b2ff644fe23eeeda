package fetch

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abelbrown/hncli/internal/cache"
	"github.com/abelbrown/hncli/internal/hn"
)

// fakeSource is an in-memory upstream that records every remote read.
type fakeSource struct {
	mu     sync.Mutex
	ids    []hn.StoryID
	items  map[hn.StoryID]*hn.Item
	fail   map[hn.StoryID]error
	calls  map[hn.StoryID]int
	jitter bool
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		items: make(map[hn.StoryID]*hn.Item),
		fail:  make(map[hn.StoryID]error),
		calls: make(map[hn.StoryID]int),
	}
}

func (s *fakeSource) add(ids ...hn.StoryID) {
	for _, id := range ids {
		s.items[id] = &hn.Item{ID: id, Title: "story", By: "pg", Time: 1700000000}
	}
}

func (s *fakeSource) List(ctx context.Context, name string) ([]hn.StoryID, error) {
	if err := s.fail[0]; err != nil {
		return nil, err
	}
	return s.ids, nil
}

func (s *fakeSource) Item(ctx context.Context, id hn.StoryID) (*hn.Item, error) {
	if s.jitter {
		time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[id]++
	if err := s.fail[id]; err != nil {
		return nil, err
	}
	return s.items[id], nil
}

func (s *fakeSource) callCount(id hn.StoryID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[id]
}

func TestFetchItemTwiceIssuesOneRemoteCall(t *testing.T) {
	src := newFakeSource()
	src.add(42)
	m := NewMetrics(nil)
	g := NewGateway(src, cache.NewMemory(), 0, m)

	first, err := g.FetchItem(context.Background(), 42)
	require.NoError(t, err)
	second, err := g.FetchItem(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.callCount(42))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheMisses))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHits))
}

func TestFetchItemNullCachedAsPlaceholder(t *testing.T) {
	src := newFakeSource()
	m := NewMetrics(nil)
	g := NewGateway(src, cache.NewMemory(), 0, m)

	it, err := g.FetchItem(context.Background(), 9)
	require.NoError(t, err)
	assert.True(t, it.IsPlaceholder())
	assert.Equal(t, hn.PlaceholderTitle, it.Title)

	_, err = g.FetchItem(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 1, src.callCount(9), "placeholder must short-circuit the second lookup")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Placeholders))
}

func TestFetchItemErrorNotCached(t *testing.T) {
	src := newFakeSource()
	src.add(5)
	src.fail[5] = errors.New("connection reset")
	m := NewMetrics(nil)
	c := cache.NewMemory()
	g := NewGateway(src, c, 0, m)

	_, err := g.FetchItem(context.Background(), 5)
	require.Error(t, err)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, hn.StoryID(5), fe.ID)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FetchErrors))

	// The next access retries the remote call.
	delete(src.fail, 5)
	it, err := g.FetchItem(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, hn.StoryID(5), it.ID)
	assert.Equal(t, 2, src.callCount(5))
}

func TestFetchItemsPreservesOrder(t *testing.T) {
	src := newFakeSource()
	src.jitter = true
	ids := make([]hn.StoryID, 30)
	for i := range ids {
		ids[i] = hn.StoryID(1000 - i)
	}
	src.add(ids...)
	g := NewGateway(src, cache.NewMemory(), 4, nil)

	items, err := g.FetchItems(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, items, len(ids))
	for i, it := range items {
		assert.Equal(t, ids[i], it.ID, "position %d", i)
	}
}

func TestFetchItemsKeepsPlaceholderPosition(t *testing.T) {
	src := newFakeSource()
	src.add(1, 3)
	g := NewGateway(src, cache.NewMemory(), 0, nil)

	items, err := g.FetchItems(context.Background(), []hn.StoryID{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, hn.StoryID(1), items[0].ID)
	assert.True(t, items[1].IsPlaceholder())
	assert.Equal(t, hn.StoryID(3), items[2].ID)
}

func TestFetchItemsEmpty(t *testing.T) {
	src := newFakeSource()
	m := NewMetrics(nil)
	g := NewGateway(src, cache.NewMemory(), 0, m)

	items, err := g.FetchItems(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CacheMisses))
}

func TestFetchItemsFailsAsAWhole(t *testing.T) {
	src := newFakeSource()
	src.add(1, 2, 3)
	src.fail[2] = errors.New("boom")
	g := NewGateway(src, cache.NewMemory(), 0, nil)

	items, err := g.FetchItems(context.Background(), []hn.StoryID{1, 2, 3})
	require.Error(t, err)
	assert.Nil(t, items, "no partial results")

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, hn.StoryID(2), fe.ID)
}

func TestTopStories(t *testing.T) {
	src := newFakeSource()
	src.ids = []hn.StoryID{3, 1, 2}
	g := NewGateway(src, cache.NewMemory(), 0, nil)

	ids, err := g.TopStories(context.Background(), "topstories")
	require.NoError(t, err)
	assert.Equal(t, []hn.StoryID{3, 1, 2}, ids)

	src.fail[0] = errors.New("offline")
	_, err = g.TopStories(context.Background(), "topstories")
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "topstories", fe.Op)
	assert.Contains(t, err.Error(), "fetch topstories: offline")
}

func TestMetricsRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 4)
}

func TestGatewayOverHTTP(t *testing.T) {
	server, hits := newFirebase(t, map[string]string{
		"/item/1.json": `{"id":1,"title":"one","by":"a","time":1}`,
		"/item/2.json": `{"id":2,"deleted":true}`,
	})
	g := NewGateway(NewFetcher(Options{BaseURL: server.URL}), cache.NewMemory(), 0, nil)

	items, err := g.FetchItems(context.Background(), []hn.StoryID{1, 2})
	require.NoError(t, err)
	assert.Equal(t, "one", items[0].Title)
	assert.True(t, items[1].IsPlaceholder())

	_, err = g.FetchItems(context.Background(), []hn.StoryID{1, 2})
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits.Load(), "warm cache should not touch the server")
	assert.Equal(t, 2, g.Cached())
}
