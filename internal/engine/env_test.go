package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Chdir(t.TempDir()) // no .env
	t.Setenv("BROWSER_CLIENT", "off")
	t.Setenv("YOUTUBE_API_KEY", "primary")
	t.Setenv("YOUTUBE_API_KEY_FALLBACK", "secondary")
	t.Setenv("CAPTION_BACKEND", CaptionBackendYTDLP)
	t.Setenv("CAPTION_MAX_ATTEMPTS", "5")

	c := LoadConfig()
	assert.Equal(t, "primary", c.YouTubeAPIKey)
	assert.Equal(t, "secondary", c.YouTubeAPIKeyFallback)
	assert.Equal(t, CaptionBackendYTDLP, c.CaptionBackend)
	assert.Equal(t, 5, c.CaptionMaxAttempts)
	assert.Equal(t, 500*time.Millisecond, c.CaptionBackoff)
	assert.Equal(t, 300*time.Millisecond, c.CandidateDelayMin)
	assert.Equal(t, 600*time.Millisecond, c.CandidateDelayMax)
	assert.Nil(t, c.BrowserClient)
	assert.NotNil(t, c.HTTPClient)
	assert.NoError(t, c.Validate())
}

func TestInitAppliesDefaults(t *testing.T) {
	Init(Config{})
	assert.Equal(t, "https://www.googleapis.com/youtube/v3", Cfg.YouTubeAPIBase)
	assert.Equal(t, CaptionBackendWatchPage, Cfg.CaptionBackend)
	assert.Equal(t, 3, Cfg.CaptionMaxAttempts)
	assert.Equal(t, 5, Cfg.MaxFinal)
	assert.ErrorIs(t, Cfg.Validate(), ErrConfigMissing)
}
