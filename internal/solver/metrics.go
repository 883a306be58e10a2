package solver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// cacheLookups counts feedback lookups by whether a precomputed entry served them.
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordle_feedback_cache_lookups_total",
		Help: "Feedback lookups by result (hit or miss)",
	}, []string{"result"})

	// tableLoads counts per-guess table loads by outcome.
	tableLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordle_feedback_table_loads_total",
		Help: "Per-guess table loads by outcome (present, absent, error)",
	}, []string{"outcome"})

	// rankDuration tracks how long live rankings take.
	rankDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wordle_rank_duration_seconds",
		Help:    "Duration of live entropy rankings in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 16), // 1ms to ~33s
	})

	// searchSpaceSize tracks how many guesses each live ranking scored.
	searchSpaceSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wordle_rank_search_space_size",
		Help:    "Number of guesses scored per live ranking",
		Buckets: []float64{1, 5, 10, 30, 100, 1000, 5000, 15000},
	})

	// starterShortcuts counts rankings answered from the starter set.
	starterShortcuts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordle_rank_starter_shortcuts_total",
		Help: "Rankings answered from the precomputed starter set",
	})
)

func recordLookups(hits, misses int) {
	if hits > 0 {
		cacheLookups.WithLabelValues("hit").Add(float64(hits))
	}
	if misses > 0 {
		cacheLookups.WithLabelValues("miss").Add(float64(misses))
	}
}
