package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	SearchRequests    atomic.Int64
	StatsRequests     atomic.Int64
	QuotaErrors       atomic.Int64
	CommentRequests   atomic.Int64
	CaptionAttempts   atomic.Int64
	CaptionFailures   atomic.Int64
	EmbeddingRequests atomic.Int64
	Rankings          atomic.Int64
}

// metricsCache is the cache whose hit/miss counters are reported.
var metricsCache atomic.Pointer[Cache]

// ReportCache registers c as the cache reported by GetMetrics.
func ReportCache(c *Cache) { metricsCache.Store(c) }

var metricKeys = []string{
	"search_requests", "stats_requests", "quota_errors",
	"comment_requests",
	"caption_attempts", "caption_failures",
	"embedding_requests", "rankings",
	"cache_hits", "cache_misses",
}

// GetMetrics returns a snapshot of all metrics including cache stats.
func GetMetrics() map[string]int64 {
	hits, misses := metricsCache.Load().Stats()
	return map[string]int64{
		"search_requests":    metrics.SearchRequests.Load(),
		"stats_requests":     metrics.StatsRequests.Load(),
		"quota_errors":       metrics.QuotaErrors.Load(),
		"comment_requests":   metrics.CommentRequests.Load(),
		"caption_attempts":   metrics.CaptionAttempts.Load(),
		"caption_failures":   metrics.CaptionFailures.Load(),
		"embedding_requests": metrics.EmbeddingRequests.Load(),
		"rankings":           metrics.Rankings.Load(),
		"cache_hits":         hits,
		"cache_misses":       misses,
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the sources/ and videos/ sub-packages.
func IncrSearch() { metrics.SearchRequests.Add(1) }
func IncrStats() { metrics.StatsRequests.Add(1) }
func IncrQuotaErrors() { metrics.QuotaErrors.Add(1) }
func IncrComments() { metrics.CommentRequests.Add(1) }
func IncrCaptionAttempt() { metrics.CaptionAttempts.Add(1) }
func IncrCaptionFailure() { metrics.CaptionFailures.Add(1) }
func IncrEmbedding() { metrics.EmbeddingRequests.Add(1) }
func IncrRankings() { metrics.Rankings.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, threshold time.Duration, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	if elapsed := time.Since(start); elapsed > threshold {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
