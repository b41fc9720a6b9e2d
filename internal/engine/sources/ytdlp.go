package sources

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/anatolykoptev/go_vidrank/internal/engine"
)

// YTDLP writes WebVTT caption artifacts by running yt-dlp.
type YTDLP struct {
	Path string // binary, default "yt-dlp"
}

// NewYTDLP builds a yt-dlp caption fetcher.
func NewYTDLP(c engine.Config) *YTDLP {
	path := c.YTDLPPath
	if path == "" {
		path = "yt-dlp"
	}
	return &YTDLP{Path: path}
}

// Args returns the yt-dlp arguments for req; the output prefix is req.Dest without ".vtt".
func (y *YTDLP) Args(req engine.CaptionRequest) []string {
	prefix := strings.TrimSuffix(req.Dest, ".vtt")
	args := []string{
		"--skip-download",
		"--write-auto-subs",
		"--sub-langs", req.Lang,
		"--sub-format", "vtt",
		"--output", prefix + ".%(ext)s",
		"--quiet",
		"--no-warnings",
		"--user-agent", engine.RandomUserAgent(),
	}
	if path := usableCookiesFile(req.CookiesFile); path != "" {
		args = append(args, "--cookies", path)
	}
	return append(args, engine.WatchURL(req.VideoID))
}

// Fetch runs yt-dlp and moves the produced "<prefix>.<lang>.vtt" to req.Dest.
// A clean exit without a subtitle file means the language is unavailable.
func (y *YTDLP) Fetch(ctx context.Context, req engine.CaptionRequest) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, y.Path, y.Args(req)...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("yt-dlp: %w: %s", err, engine.TruncateRunes(strings.TrimSpace(stderr.String()), 300, "..."))
	}

	prefix := strings.TrimSuffix(req.Dest, ".vtt")
	matches, err := filepath.Glob(engine.GlobEscape(prefix) + ".*.vtt")
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return engine.ErrNoCaptions
	}
	if err := os.Rename(matches[0], req.Dest); err != nil {
		return fmt.Errorf("yt-dlp: move subtitle: %w", err)
	}
	return nil
}
