package videos

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/anatolykoptev/go_vidrank/internal/engine"
)

// Recommender runs search and ranking for one query.
type Recommender struct {
	Candidates    *Provider
	Ranker        *Engine
	SearchResults int
}

// Recommend searches for query and returns the ranked top videos.
func (r *Recommender) Recommend(ctx context.Context, query string) ([]engine.EnrichedVideo, error) {
	return r.RecommendWith(ctx, query, r.SearchResults, "")
}

// RecommendWith is Recommend with an explicit candidate count and caption language.
func (r *Recommender) RecommendWith(ctx context.Context, query string, maxResults int, lang string) ([]engine.EnrichedVideo, error) {
	rec, err := r.Run(ctx, query, maxResults, lang)
	return rec.Videos, err
}

// Recommendation is a ranked result set. QuotaSkipped counts search hits
// dropped because their statistics hit the API quota; such a result is
// incomplete and should not be cached.
type Recommendation struct {
	Videos       []engine.EnrichedVideo
	QuotaSkipped int
}

// Run searches and ranks like RecommendWith and also reports quota skips.
func (r *Recommender) Run(ctx context.Context, query string, maxResults int, lang string) (Recommendation, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Recommendation{}, engine.ErrEmptyQuery
	}
	if maxResults <= 0 {
		maxResults = 5
	}
	if lang == "" {
		lang = r.Ranker.Lang
	}

	candidates, skipped, err := r.Candidates.search(ctx, query, maxResults)
	if err != nil {
		return Recommendation{QuotaSkipped: skipped}, fmt.Errorf("search: %w", err)
	}
	if len(candidates) == 0 {
		return Recommendation{}, engine.ErrNoCandidates
	}
	ranked, err := r.Ranker.RankLang(ctx, query, candidates, lang)
	return Recommendation{Videos: ranked, QuotaSkipped: skipped}, err
}

// ToCards converts ranked videos into result cards with 1-based ranks.
func ToCards(videos []engine.EnrichedVideo) []engine.VideoCard {
	cards := make([]engine.VideoCard, 0, len(videos))
	for i, v := range videos {
		cards = append(cards, engine.VideoCard{
			Rank:           i + 1,
			ID:             v.ID,
			Title:          v.Title,
			URL:            engine.WatchURL(v.ID),
			Thumbnail:      engine.ThumbnailURL(v.ID),
			Description:    engine.TruncateRunes(v.Description, 150, "..."),
			RelevanceScore: round2(v.RelevanceScore),
			CompositeScore: round2(v.CompositeScore),
			Likes:          v.LikeCount,
			Views:          v.ViewCount,
			PositiveRatio:  round2(v.PositiveCommentRatio),
			TopComment:     engine.TruncateRunes(v.TopComment, 100, "..."),
			UsedTranscript: v.UsedTranscript,
		})
	}
	return cards
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
