// Package toolutil provides shared helper functions for go_vidrank MCP tools.
package toolutil

import (
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_vidrank/internal/engine"
)

// NormLang normalises a caption language field: empty string → def.
func NormLang(lang, def string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return def
	}
	return lang
}

// ClampLimit returns def for n <= 0 and caps n at limit.
func ClampLimit(n, def, limit int) int {
	if n <= 0 {
		return def
	}
	if n > limit {
		return limit
	}
	return n
}

// EmptyOutput builds the result for a batch that produced no videos, with a
// reason and summary naming which stage came up empty.
func EmptyOutput(query string, err error) engine.VideoRecommendOutput {
	reason := engine.EmptyReason(err)
	summary := fmt.Sprintf("No videos with usable content found for %q.", query)
	if reason == engine.ReasonNoCandidates {
		summary = fmt.Sprintf("YouTube search returned no videos for %q.", query)
	}
	return engine.VideoRecommendOutput{Query: query, Videos: []engine.VideoCard{}, Summary: summary, Reason: reason}
}

// Summary renders a one-line description of a ranked result set.
func Summary(query string, cards []engine.VideoCard) string {
	if len(cards) == 0 {
		return fmt.Sprintf("No videos with usable content found for %q.", query)
	}
	withTranscript := 0
	for _, c := range cards {
		if c.UsedTranscript {
			withTranscript++
		}
	}
	return fmt.Sprintf("Top %d videos for %q (best: %q, composite %.2f); %d ranked with transcripts.",
		len(cards), query, cards[0].Title, cards[0].CompositeScore, withTranscript)
}
