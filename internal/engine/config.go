package engine

import (
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	YouTubeAPIKey         string
	YouTubeAPIKeyFallback string
	YouTubeAPIBase        string
	YouTubeQPS            float64

	CookiesFile        string
	CaptionBackend     string // "watchpage" or "ytdlp"
	CaptionLang        string
	CaptionMaxAttempts int
	CaptionBackoff     time.Duration
	CaptionDir         string
	YTDLPPath          string

	EmbedAPIBase string
	EmbedAPIKey  string
	EmbedModel   string

	SearchResults     int
	MaxFinal          int
	CandidateDelayMin time.Duration
	CandidateDelayMax time.Duration
	FetchTimeout      time.Duration

	CacheTTL             time.Duration
	CacheMaxEntries      int
	CacheCleanupInterval time.Duration
	RedisURL             string

	HTTPClient    *http.Client
	BrowserClient *BrowserClient // nil = watch pages fetched with HTTPClient
}

// Caption backends.
const (
	CaptionBackendWatchPage = "watchpage"
	CaptionBackendYTDLP     = "ytdlp"
)

var cfg Config

// Cfg exposes the engine configuration for sub-packages (videos, sources).
// Always points to the current cfg value.
var Cfg = &cfg

// Init initializes the engine with the given configuration.
// Zero values are replaced with defaults.
func Init(c Config) {
	cfg = withDefaults(c)
	Cfg = &cfg
}

// Validate reports ErrConfigMissing when no search credential is available.
func (c Config) Validate() error {
	if c.YouTubeAPIKey == "" {
		return ErrConfigMissing
	}
	return nil
}

func withDefaults(c Config) Config {
	if c.YouTubeAPIBase == "" {
		c.YouTubeAPIBase = "https://www.googleapis.com/youtube/v3"
	}
	if c.YouTubeQPS <= 0 {
		c.YouTubeQPS = 5
	}
	if c.CaptionBackend == "" {
		c.CaptionBackend = CaptionBackendWatchPage
	}
	if c.CaptionLang == "" {
		c.CaptionLang = "en"
	}
	if c.CaptionMaxAttempts <= 0 {
		c.CaptionMaxAttempts = 3
	}
	if c.CaptionBackoff <= 0 {
		c.CaptionBackoff = 500 * time.Millisecond
	}
	if c.YTDLPPath == "" {
		c.YTDLPPath = "yt-dlp"
	}
	if c.EmbedModel == "" {
		c.EmbedModel = "sentence-transformers/all-MiniLM-L6-v2"
	}
	if c.SearchResults <= 0 {
		c.SearchResults = 5
	}
	if c.MaxFinal <= 0 {
		c.MaxFinal = 5
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = 15 * time.Second
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 15 * time.Minute
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.FetchTimeout}
	}
	return c
}
