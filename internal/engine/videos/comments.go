package videos

import (
	"context"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_vidrank/internal/engine"
)

const maxComments = 50

var positiveKeywords = []string{"great", "awesome", "good", "excellent", "amazing"}

// CommentSource lists top-level comments of a video.
type CommentSource interface {
	ListComments(ctx context.Context, videoID string, maxResults int) ([]engine.Comment, error)
}

// Extractor derives engagement signals from comments.
type Extractor struct {
	Source CommentSource
}

// ExtractSignals returns the share of positive comments and the most liked
// comment. Any failure degrades to (0, "").
func (e *Extractor) ExtractSignals(ctx context.Context, videoID string) (positiveRatio float64, topComment string) {
	if e == nil || e.Source == nil {
		return 0, ""
	}
	comments, err := e.Source.ListComments(ctx, videoID, maxComments)
	if err != nil {
		if engine.IsQuota(err) {
			slog.Error("quota exceeded while fetching comments", slog.String("video", videoID), slog.Any("error", err))
		} else {
			slog.Warn("comments unavailable", slog.String("video", videoID), slog.Any("error", err))
		}
		return 0, ""
	}
	return commentSignals(comments)
}

func commentSignals(comments []engine.Comment) (float64, string) {
	if len(comments) == 0 {
		return 0, ""
	}
	positive := 0
	top := ""
	best := int64(-1)
	for _, c := range comments {
		if isPositive(c.Text) {
			positive++
		}
		if c.LikeCount > best {
			best = c.LikeCount
			top = c.Text
		}
	}
	return float64(positive) / float64(len(comments)), top
}

func isPositive(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range positiveKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
