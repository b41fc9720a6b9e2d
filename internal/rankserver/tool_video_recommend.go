package rankserver

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/anatolykoptev/go_vidrank/internal/engine"
	"github.com/anatolykoptev/go_vidrank/internal/engine/videos"
	"github.com/anatolykoptev/go_vidrank/internal/toolutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerVideoRecommend(server *mcp.Server, d *Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_recommend",
		Description: "Search YouTube for a query and rank the results by semantic relevance of title, description and auto-generated transcript, blended with likes per view and positive comment ratio. Returns the top videos with scores, thumbnail and most liked comment.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, d.recommend)
}

func (d *Deps) recommend(ctx context.Context, _ *mcp.CallToolRequest, input engine.VideoRecommendInput) (*mcp.CallToolResult, engine.VideoRecommendOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, engine.VideoRecommendOutput{}, engine.ErrEmptyQuery
	}
	if err := engine.Cfg.Validate(); err != nil {
		return nil, engine.VideoRecommendOutput{}, err
	}

	limit := toolutil.ClampLimit(input.MaxResults, defaultResults, maxResults)
	lang := toolutil.NormLang(input.Language, d.Lang)

	cacheKey := engine.CacheKey("video_recommend", query, strconv.Itoa(limit), lang)
	if out, ok := engine.CacheLoadJSON[engine.VideoRecommendOutput](ctx, d.Cache, cacheKey); ok {
		return nil, out, nil
	}

	var rec videos.Recommendation
	err := engine.TrackOperation(ctx, "video_recommend", slowThreshold, func(ctx context.Context) error {
		var err error
		rec, err = d.Recommender.Run(ctx, query, limit, lang)
		return err
	})
	switch {
	case engine.EmptyReason(err) != "":
		slog.Info("video_recommend: nothing to rank", slog.String("query", query), slog.Any("reason", err))
		return nil, toolutil.EmptyOutput(query, err), nil
	case err != nil:
		slog.Warn("video_recommend error", slog.String("query", query), slog.Any("error", err))
		return nil, engine.VideoRecommendOutput{}, fmt.Errorf("video recommend failed: %w", err)
	}

	cards := videos.ToCards(rec.Videos)
	out := engine.VideoRecommendOutput{Query: query, Videos: cards, Summary: toolutil.Summary(query, cards)}
	if rec.QuotaSkipped == 0 {
		engine.CacheStoreJSON(ctx, d.Cache, cacheKey, out)
	}
	return nil, out, nil
}
