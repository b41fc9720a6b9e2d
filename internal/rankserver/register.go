// Package rankserver exposes the video ranking pipeline as MCP tools.
package rankserver

import (
	"time"

	"github.com/anatolykoptev/go_vidrank/internal/engine"
	"github.com/anatolykoptev/go_vidrank/internal/engine/videos"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	defaultResults = 5
	maxResults     = 25
	maxRankVideos  = 25

	slowThreshold = 60 * time.Second
)

// Deps are the pipeline components shared by the tools.
type Deps struct {
	Recommender *videos.Recommender
	Ranker      *videos.Engine
	Cache       *engine.Cache // nil disables output caching
	Lang        string        // default caption language
}

// RegisterTools registers video_recommend and video_rank on the given MCP server.
func RegisterTools(server *mcp.Server, d *Deps) {
	registerVideoRecommend(server, d)
	registerVideoRank(server, d)
}
