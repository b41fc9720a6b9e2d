package toolutil

import (
	"fmt"
	"testing"

	"github.com/anatolykoptev/go_vidrank/internal/engine"
	"github.com/stretchr/testify/assert"
)

func TestNormLang(t *testing.T) {
	assert.Equal(t, "en", NormLang("", "en"))
	assert.Equal(t, "de", NormLang(" DE ", "en"))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 5, ClampLimit(0, 5, 25))
	assert.Equal(t, 5, ClampLimit(-3, 5, 25))
	assert.Equal(t, 10, ClampLimit(10, 5, 25))
	assert.Equal(t, 25, ClampLimit(99, 5, 25))
}

func TestSummary(t *testing.T) {
	assert.Contains(t, Summary("q", nil), "No videos")

	got := Summary("make money", []engine.VideoCard{
		{Title: "First", CompositeScore: 71.98, UsedTranscript: true},
		{Title: "Second"},
	})
	assert.Contains(t, got, "Top 2 videos")
	assert.Contains(t, got, `"First"`)
	assert.Contains(t, got, "71.98")
	assert.Contains(t, got, "1 ranked with transcripts")
}

func TestEmptyOutputReasons(t *testing.T) {
	none := EmptyOutput("q", fmt.Errorf("search: %w", engine.ErrNoCandidates))
	empty := EmptyOutput("q", engine.ErrNoUsableContent)

	assert.Equal(t, engine.ReasonNoCandidates, none.Reason)
	assert.Equal(t, engine.ReasonNoUsableContent, empty.Reason)
	assert.NotEqual(t, none.Summary, empty.Summary)
	assert.NotNil(t, none.Videos)
	assert.Empty(t, none.Videos)
}
