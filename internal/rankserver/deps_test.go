package rankserver

import (
	"testing"

	"github.com/anatolykoptev/go_vidrank/internal/engine"
	"github.com/anatolykoptev/go_vidrank/internal/engine/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptionFetcher(t *testing.T) {
	_, ok := captionFetcher(engine.Config{CaptionBackend: engine.CaptionBackendYTDLP}).(*sources.YTDLP)
	assert.True(t, ok)
	_, ok = captionFetcher(engine.Config{}).(*sources.WatchPageCaptions)
	assert.True(t, ok)
	_, ok = captionFetcher(engine.Config{CaptionBackend: "bogus"}).(*sources.WatchPageCaptions)
	assert.True(t, ok)
}

func TestNewDeps(t *testing.T) {
	d := NewDeps(engine.Config{YouTubeAPIKey: "k", CaptionLang: "en", MaxFinal: 5, SearchResults: 5}, nil)
	require.NotNil(t, d.Recommender)
	require.NotNil(t, d.Ranker)
	assert.Same(t, d.Ranker, d.Recommender.Ranker)
	assert.Equal(t, "en", d.Lang)
	assert.Equal(t, 5, d.Ranker.MaxFinal)
}
