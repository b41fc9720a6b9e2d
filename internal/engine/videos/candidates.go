package videos

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/anatolykoptev/go_vidrank/internal/engine"
)

// SearchSource runs video searches and statistics lookups.
type SearchSource interface {
	SearchVideos(ctx context.Context, query string, maxResults int) ([]engine.CandidateVideo, error)
	VideoStats(ctx context.Context, videoID string) (likes, views int64, err error)
}

// Provider produces candidate videos with engagement counters.
type Provider struct {
	Source   SearchSource
	Cache    *engine.Cache // nil disables caching
	DelayMin time.Duration
	DelayMax time.Duration
}

// NewProvider builds a Provider using the configured pacing.
func NewProvider(src SearchSource, cache *engine.Cache, c engine.Config) *Provider {
	return &Provider{Source: src, Cache: cache, DelayMin: c.CandidateDelayMin, DelayMax: c.CandidateDelayMax}
}

// Search returns up to maxResults candidates in search order. A quota error on
// one video's statistics skips that video; other statistics errors fail the call.
// Complete results are cached per (query, maxResults).
func (p *Provider) Search(ctx context.Context, query string, maxResults int) ([]engine.CandidateVideo, error) {
	videos, _, err := p.search(ctx, query, maxResults)
	return videos, err
}

// search is Search that also reports how many hits were dropped on quota.
// A degraded result is not cached, and a search whose every hit was dropped
// fails with ErrQuotaExceeded.
func (p *Provider) search(ctx context.Context, query string, maxResults int) ([]engine.CandidateVideo, int, error) {
	key := engine.CacheKey("search", query, strconv.Itoa(maxResults))
	if cached, ok := engine.CacheLoadJSON[[]engine.CandidateVideo](ctx, p.Cache, key); ok {
		slog.Debug("candidate cache hit", slog.String("query", query))
		return cached, 0, nil
	}

	hits, err := p.Source.SearchVideos(ctx, query, maxResults)
	if err != nil {
		if engine.IsQuota(err) {
			return nil, 0, fmt.Errorf("%w: %w", engine.ErrQuotaExceeded, err)
		}
		return nil, 0, err
	}

	videos := make([]engine.CandidateVideo, 0, len(hits))
	skipped := 0
	for i, v := range hits {
		if i > 0 {
			if err := engine.Sleep(ctx, jitter(p.DelayMin, p.DelayMax)); err != nil {
				return nil, 0, err
			}
		}
		likes, views, err := p.Source.VideoStats(ctx, v.ID)
		if err != nil {
			if engine.IsQuota(err) {
				slog.Error("quota exceeded while fetching stats, skipping video",
					slog.String("video", v.ID), slog.Any("error", err))
				skipped++
				continue
			}
			return nil, 0, fmt.Errorf("stats %s: %w", v.ID, err)
		}
		v.LikeCount, v.ViewCount = likes, views
		videos = append(videos, v)
	}

	if skipped > 0 {
		if len(videos) == 0 {
			return nil, skipped, fmt.Errorf("%w: statistics unavailable for all %d results", engine.ErrQuotaExceeded, skipped)
		}
		slog.Warn("partial candidate set, not cached",
			slog.String("query", query), slog.Int("skipped", skipped), slog.Int("kept", len(videos)))
		return videos, skipped, nil
	}

	engine.CacheStoreJSON(ctx, p.Cache, key, videos)
	return videos, 0, nil
}

// jitter returns a uniformly random duration in [lo, hi].
func jitter(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	return lo + rand.N(hi-lo+1)
}
