package rankserver

import (
	"log/slog"

	"github.com/anatolykoptev/go_vidrank/internal/engine"
	"github.com/anatolykoptev/go_vidrank/internal/engine/sources"
	"github.com/anatolykoptev/go_vidrank/internal/engine/videos"
)

// NewDeps wires the YouTube client, caption fetcher, embedder and ranking
// engine from c. The embedder is built on first use.
func NewDeps(c engine.Config, cache *engine.Cache) *Deps {
	yt := sources.NewYouTubeClient(c)

	acq := videos.NewAcquirer(captionFetcher(c), c)
	emb := &videos.LazyEmbedder{New: func() (videos.Embedder, error) {
		ec, err := sources.NewEmbeddingClient(c)
		if err != nil {
			return nil, err
		}
		slog.Info("embedding client ready", slog.String("model", c.EmbedModel))
		return ec, nil
	}}

	ranker := videos.NewEngine(&videos.Extractor{Source: yt}, acq, emb, c)
	return &Deps{
		Recommender: &videos.Recommender{
			Candidates:    videos.NewProvider(yt, cache, c),
			Ranker:        ranker,
			SearchResults: c.SearchResults,
		},
		Ranker: ranker,
		Cache:  cache,
		Lang:   c.CaptionLang,
	}
}

func captionFetcher(c engine.Config) videos.CaptionFetcher {
	switch c.CaptionBackend {
	case engine.CaptionBackendYTDLP:
		return sources.NewYTDLP(c)
	case engine.CaptionBackendWatchPage, "":
		return sources.NewWatchPageCaptions(c)
	default:
		slog.Warn("unknown caption backend, using watchpage", slog.String("backend", c.CaptionBackend))
		return sources.NewWatchPageCaptions(c)
	}
}
