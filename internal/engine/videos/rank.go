package videos

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/anatolykoptev/go_vidrank/internal/engine"
	"github.com/google/uuid"
)

// Composite score weights.
const (
	weightRelevance  = 0.6
	weightEngagement = 0.2
	weightPositive   = 0.2
)

// SignalExtractor yields comment-derived signals for a video.
type SignalExtractor interface {
	ExtractSignals(ctx context.Context, videoID string) (float64, string)
}

// TranscriptSource yields a normalized transcript, "" when unavailable.
type TranscriptSource interface {
	FetchTranscript(ctx context.Context, videoID, lang string) string
}

// Engine enriches candidates and orders them by composite score.
type Engine struct {
	Comments    SignalExtractor
	Transcripts TranscriptSource
	Embedder    Embedder
	Lang        string
	MaxFinal    int
	DelayMin    time.Duration // pacing between candidates
	DelayMax    time.Duration
}

// NewEngine builds a ranking engine from the engine configuration.
func NewEngine(comments SignalExtractor, transcripts TranscriptSource, emb Embedder, c engine.Config) *Engine {
	return &Engine{
		Comments:    comments,
		Transcripts: transcripts,
		Embedder:    emb,
		Lang:        c.CaptionLang,
		MaxFinal:    c.MaxFinal,
		DelayMin:    c.CandidateDelayMin,
		DelayMax:    c.CandidateDelayMax,
	}
}

// Rank enriches every candidate, scores the batch and returns the top
// MaxFinal videos by descending composite score. Candidates without usable
// text are dropped; ErrNoUsableContent is returned when none remain.
func (e *Engine) Rank(ctx context.Context, query string, candidates []engine.CandidateVideo) ([]engine.EnrichedVideo, error) {
	return e.RankLang(ctx, query, candidates, e.Lang)
}

// RankLang is Rank with an explicit caption language.
func (e *Engine) RankLang(ctx context.Context, query string, candidates []engine.CandidateVideo, lang string) ([]engine.EnrichedVideo, error) {
	engine.IncrRankings()
	reqID := uuid.NewString()
	log := slog.With(slog.String("request_id", reqID))
	if lang == "" {
		lang = "en"
	}

	cleanQuery := Normalize(query)
	log.Debug("ranking", slog.String("query", cleanQuery), slog.Int("candidates", len(candidates)))

	batch := make([]engine.EnrichedVideo, 0, len(candidates))
	for i, c := range candidates {
		if i > 0 {
			if err := engine.Sleep(ctx, jitter(e.DelayMin, e.DelayMax)); err != nil {
				return nil, err
			}
		}
		v, ok := e.enrich(ctx, c, lang)
		if !ok {
			log.Warn("skipping video with empty text", slog.String("video", c.ID))
			continue
		}
		batch = append(batch, v)
	}
	if len(batch) == 0 {
		return nil, engine.ErrNoUsableContent
	}

	queryVec, err := e.Embedder.Embed(ctx, cleanQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	for i := range batch {
		vec, err := e.Embedder.Embed(ctx, batch[i].NormalizedText)
		if err != nil {
			return nil, fmt.Errorf("embed video %s: %w", batch[i].ID, err)
		}
		batch[i].Similarity = Cosine(queryVec, vec)
	}

	ScoreBatch(batch)
	SortByComposite(batch)

	limit := e.MaxFinal
	if limit <= 0 {
		limit = 5
	}
	if len(batch) > limit {
		batch = batch[:limit]
	}
	log.Info("ranked videos", slog.Int("kept", len(batch)), slog.Int("candidates", len(candidates)))
	return batch, nil
}

// enrich collects comment signals and transcript for one candidate (in that order).
func (e *Engine) enrich(ctx context.Context, c engine.CandidateVideo, lang string) (engine.EnrichedVideo, bool) {
	v := engine.EnrichedVideo{CandidateVideo: c}
	if e.Comments != nil {
		v.PositiveCommentRatio, v.TopComment = e.Comments.ExtractSignals(ctx, c.ID)
	}
	transcript := ""
	if e.Transcripts != nil {
		transcript = e.Transcripts.FetchTranscript(ctx, c.ID, lang)
	}
	text := c.Title + " " + c.Description
	if transcript != "" {
		text += " " + transcript
		v.UsedTranscript = true
	}
	v.NormalizedText = Normalize(text)
	return v, v.NormalizedText != ""
}

// ScoreBatch sets RelevanceScore and CompositeScore from Similarity. Relevance
// is normalized against the batch maximum, so the whole batch must be scored
// together. A batch whose maximum similarity is zero scores all zeros.
func ScoreBatch(batch []engine.EnrichedVideo) {
	if len(batch) == 0 {
		return
	}
	maxSim := batch[0].Similarity
	for _, v := range batch[1:] {
		maxSim = max(maxSim, v.Similarity)
	}
	for i := range batch {
		v := &batch[i]
		v.RelevanceScore = 0
		if maxSim != 0 {
			v.RelevanceScore = v.Similarity / maxSim * 100
		}
		v.CompositeScore = CompositeScore(v.RelevanceScore, v.LikeCount, v.ViewCount, v.PositiveCommentRatio)
	}
}

// CompositeScore blends relevance, likes per view and positive comment ratio.
func CompositeScore(relevance float64, likes, views int64, positiveRatio float64) float64 {
	engagement := float64(likes) / float64(views+1) * 100
	return weightRelevance*relevance + weightEngagement*engagement + weightPositive*positiveRatio*100
}

// SortByComposite orders by descending composite score, keeping input order on ties.
func SortByComposite(batch []engine.EnrichedVideo) {
	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].CompositeScore > batch[j].CompositeScore
	})
}
