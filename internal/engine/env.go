package engine

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/proxypool"
	"github.com/joho/godotenv"
)

// LoadConfig reads the configuration from the environment, after loading a
// .env file from the working directory when one exists.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", slog.Any("error", err))
	}

	fetchTimeout := env.Duration("FETCH_TIMEOUT", 15*time.Second)
	c := Config{
		YouTubeAPIKey:         env.Str("YOUTUBE_API_KEY", ""),
		YouTubeAPIKeyFallback: env.Str("YOUTUBE_API_KEY_FALLBACK", ""),
		YouTubeAPIBase:        env.Str("YOUTUBE_API_BASE", "https://www.googleapis.com/youtube/v3"),
		YouTubeQPS:            env.Float("YOUTUBE_QPS", 5),
		CookiesFile:           env.Str("COOKIES_FILE", ""),
		CaptionBackend:        env.Str("CAPTION_BACKEND", CaptionBackendWatchPage),
		CaptionLang:           env.Str("CAPTION_LANG", "en"),
		CaptionMaxAttempts:    env.Int("CAPTION_MAX_ATTEMPTS", 3),
		CaptionBackoff:        env.Duration("CAPTION_BACKOFF", 500*time.Millisecond),
		CaptionDir:            env.Str("CAPTION_DIR", ""),
		YTDLPPath:             env.Str("YTDLP_PATH", "yt-dlp"),
		EmbedAPIBase:          env.Str("EMBED_API_BASE", "http://127.0.0.1:8080/v1"),
		EmbedAPIKey:           env.Str("EMBED_API_KEY", ""),
		EmbedModel:            env.Str("EMBED_MODEL", "sentence-transformers/all-MiniLM-L6-v2"),
		SearchResults:         env.Int("SEARCH_RESULTS", 5),
		MaxFinal:              env.Int("MAX_FINAL", 5),
		CandidateDelayMin:     env.Duration("CANDIDATE_DELAY_MIN", 300*time.Millisecond),
		CandidateDelayMax:     env.Duration("CANDIDATE_DELAY_MAX", 600*time.Millisecond),
		FetchTimeout:          fetchTimeout,
		CacheTTL:              env.Duration("CACHE_TTL", 15*time.Minute),
		CacheMaxEntries:       env.Int("CACHE_MAX_ENTRIES", 1000),
		CacheCleanupInterval:  env.Duration("CACHE_CLEANUP_INTERVAL", 300*time.Second),
		RedisURL:              env.Str("REDIS_URL", ""),
		HTTPClient: &http.Client{
			Timeout: fetchTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	if env.Str("BROWSER_CLIENT", "on") != "off" {
		c.BrowserClient = newBrowserClient(env.Str("WEBSHARE_API_KEY", ""))
	}
	return c
}

func newBrowserClient(webshareKey string) *BrowserClient {
	var opts []stealth.ClientOption
	opts = append(opts, stealth.WithTimeout(15))

	if webshareKey != "" {
		pool, err := proxypool.NewWebshare(webshareKey)
		if err != nil {
			slog.Warn("proxy pool init failed, running without proxy", slog.Any("error", err))
		} else {
			opts = append(opts, stealth.WithProxyPool(pool))
			slog.Info("proxy pool initialized", slog.Int("proxies", pool.Len()))
		}
	}

	bc, err := stealth.NewClient(opts...)
	if err != nil {
		slog.Warn("stealth client init failed, using net/http for watch pages", slog.Any("error", err))
		return nil
	}
	slog.Info("stealth browser client initialized")
	return bc
}
