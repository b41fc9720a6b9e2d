package rankserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_vidrank/internal/engine"
	"github.com/anatolykoptev/go_vidrank/internal/engine/videos"
	"github.com/anatolykoptev/go_vidrank/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerVideoRank(server *mcp.Server, d *Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_rank",
		Description: "Rank a caller-supplied list of YouTube videos (id, title, description, likes, views) against a query using transcript-aware semantic relevance, likes per view and positive comment ratio. No search call is made.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, d.rank)
}

func (d *Deps) rank(ctx context.Context, _ *mcp.CallToolRequest, input engine.VideoRankInput) (*mcp.CallToolResult, engine.VideoRecommendOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, engine.VideoRecommendOutput{}, engine.ErrEmptyQuery
	}
	if len(input.Videos) == 0 {
		return nil, engine.VideoRecommendOutput{}, errors.New("videos is required")
	}
	if len(input.Videos) > maxRankVideos {
		return nil, engine.VideoRecommendOutput{}, fmt.Errorf("at most %d videos can be ranked per call", maxRankVideos)
	}

	candidates := make([]engine.CandidateVideo, 0, len(input.Videos))
	for _, v := range input.Videos {
		if v.ID == "" {
			return nil, engine.VideoRecommendOutput{}, errors.New("every video needs an id")
		}
		candidates = append(candidates, v)
	}
	lang := toolutil.NormLang(input.Language, d.Lang)

	var ranked []engine.EnrichedVideo
	err := engine.TrackOperation(ctx, "video_rank", slowThreshold, func(ctx context.Context) error {
		var err error
		ranked, err = d.Ranker.RankLang(ctx, query, candidates, lang)
		return err
	})
	switch {
	case errors.Is(err, engine.ErrNoUsableContent):
		return nil, toolutil.EmptyOutput(query, err), nil
	case err != nil:
		slog.Warn("video_rank error", slog.String("query", query), slog.Any("error", err))
		return nil, engine.VideoRecommendOutput{}, fmt.Errorf("video rank failed: %w", err)
	}

	cards := videos.ToCards(ranked)
	return nil, engine.VideoRecommendOutput{Query: query, Videos: cards, Summary: toolutil.Summary(query, cards)}, nil
}
