// go_vidrank: YouTube video ranking MCP server.
//
// Exposes two MCP tools: video_recommend (search + rank) and video_rank
// (rank a caller-supplied candidate list). Runs as HTTP MCP server or stdio transport.
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	"github.com/anatolykoptev/go_vidrank/internal/engine"
	"github.com/anatolykoptev/go_vidrank/internal/rankserver"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var version = "dev"

func main() {
	c := engine.LoadConfig()
	engine.Init(c)
	if err := engine.Cfg.Validate(); err != nil {
		slog.Error("configuration invalid", slog.Any("error", err))
		os.Exit(1)
	}

	cache := engine.NewCache(c.RedisURL, engine.Cfg.CacheTTL, c.CacheMaxEntries, c.CacheCleanupInterval)
	defer cache.Close()
	engine.ReportCache(cache)

	mcpPort := env.Str("MCP_PORT", "8893")
	slog.Info("starting go_vidrank",
		slog.String("port", mcpPort),
		slog.String("caption_backend", engine.Cfg.CaptionBackend),
		slog.String("embed_model", engine.Cfg.EmbedModel),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_vidrank",
		Version: version,
	}, nil)

	rankserver.RegisterTools(server, rankserver.NewDeps(*engine.Cfg, cache))
	slog.Info("tools registered", slog.Int("count", 2))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_vidrank",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 600 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}
