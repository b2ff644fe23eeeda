package fetch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts gateway traffic. Every cache miss is one remote read.
type Metrics struct {
	CacheHits    prometheus.Counter
	CacheMisses  prometheus.Counter
	FetchErrors  prometheus.Counter
	Placeholders prometheus.Counter
}

// NewMetrics creates the gateway counters on reg. A nil reg leaves them
// unregistered, which is what tests want.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "hn_item_cache_hits_total",
			Help: "Item reads answered from the in-process cache",
		}),
		CacheMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "hn_item_cache_misses_total",
			Help: "Item reads that went to the Firebase API",
		}),
		FetchErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "hn_item_fetch_errors_total",
			Help: "Item reads that failed and were not cached",
		}),
		Placeholders: f.NewCounter(prometheus.CounterOpts{
			Name: "hn_item_placeholders_total",
			Help: "Item reads that came back null or deleted",
		}),
	}
}
