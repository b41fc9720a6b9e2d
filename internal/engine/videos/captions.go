package videos

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/anatolykoptev/go_vidrank/internal/engine"
	"github.com/google/uuid"
)

// CaptionFetcher writes the WebVTT captions of one video to req.Dest.
// It returns engine.ErrNoCaptions when the language is not available.
type CaptionFetcher interface {
	Fetch(ctx context.Context, req engine.CaptionRequest) error
}

// Acquirer fetches and normalizes video transcripts with bounded retries.
type Acquirer struct {
	Fetcher     CaptionFetcher
	CookiesFile string        // optional, missing file means unauthenticated
	MaxAttempts int           // default 3
	Backoff     time.Duration // fixed wait between attempts
	Dir         string        // artifact directory, default os.TempDir()
}

// NewAcquirer builds an Acquirer from the engine configuration.
func NewAcquirer(f CaptionFetcher, c engine.Config) *Acquirer {
	return &Acquirer{
		Fetcher:     f,
		CookiesFile: c.CookiesFile,
		MaxAttempts: c.CaptionMaxAttempts,
		Backoff:     c.CaptionBackoff,
		Dir:         c.CaptionDir,
	}
}

// FetchTranscript returns the normalized transcript of videoID in lang, or ""
// when none could be obtained. Failures never reach the caller.
func (a *Acquirer) FetchTranscript(ctx context.Context, videoID, lang string) string {
	if a == nil || a.Fetcher == nil {
		return ""
	}
	attempts := a.MaxAttempts
	if attempts <= 0 {
		attempts = 3
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		text, err := a.attempt(ctx, videoID, lang, attempt)
		if err == nil {
			return text
		}
		if errors.Is(err, engine.ErrNoCaptions) {
			slog.Debug("no captions for language",
				slog.String("video", videoID), slog.String("lang", lang))
			return ""
		}
		slog.Debug("caption attempt failed",
			slog.String("video", videoID), slog.Int("attempt", attempt), slog.Any("error", err))
		if attempt < attempts {
			if engine.Sleep(ctx, a.Backoff) != nil {
				break
			}
		}
	}
	engine.IncrCaptionFailure()
	slog.Warn("captions unavailable after retries",
		slog.String("video", videoID), slog.Int("attempts", attempts))
	return ""
}

// attempt runs one fetch into its own artifact and removes it on return.
func (a *Acquirer) attempt(ctx context.Context, videoID, lang string, n int) (string, error) {
	engine.IncrCaptionAttempt()
	dir := a.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	prefix := filepath.Join(dir, fmt.Sprintf("vidrank-%s-%s-%d-%s", safeName(videoID), safeName(lang), n, uuid.NewString()[:8]))
	dest := prefix + ".vtt"
	defer removeArtifacts(prefix)

	err := a.Fetcher.Fetch(ctx, engine.CaptionRequest{
		VideoID:     videoID,
		Lang:        lang,
		CookiesFile: a.CookiesFile,
		Dest:        dest,
	})
	if err != nil {
		return "", err
	}

	raw, err := os.ReadFile(dest)
	if err != nil {
		return "", fmt.Errorf("read caption artifact: %w", err)
	}
	return Normalize(ParseVTT(string(raw))), nil
}

// removeArtifacts deletes the artifact and any partial siblings sharing its prefix.
func removeArtifacts(prefix string) {
	matches, err := filepath.Glob(engine.GlobEscape(prefix) + "*")
	if err != nil {
		slog.Warn("caption artifact glob failed", slog.String("prefix", prefix), slog.Any("error", err))
	}
	for _, m := range append(matches, prefix+".vtt") {
		if err := os.Remove(m); err != nil && !errors.Is(err, os.ErrNotExist) {
			slog.Warn("caption artifact cleanup failed", slog.String("path", m), slog.Any("error", err))
		}
	}
}

func safeName(s string) string {
	b := []byte(s)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			b[i] = '_'
		}
	}
	return string(b)
}
