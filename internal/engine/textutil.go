package engine

import (
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
	stealth "github.com/anatolykoptev/go-stealth"
	"golang.org/x/net/html"
)

// User-Agent strings used across HTTP clients.
const (
	UserAgentBot = "GoVidRank/1.0"
)

// BrowserClient issues requests with a Chrome TLS fingerprint.
type BrowserClient = stealth.BrowserClient

// RandomUserAgent returns a rotating desktop browser User-Agent.
func RandomUserAgent() string { return stealth.RandomUserAgent() }

// ChromeHeaders returns common Chrome browser headers.
func ChromeHeaders() map[string]string { return stealth.ChromeHeaders() }

// CleanHTML strips HTML tags, decodes entities and trims whitespace.
// The Data API returns titles and comment text HTML-escaped.
func CleanHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	z := html.NewTokenizer(strings.NewReader(s))
	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(sb.String())
		case html.TextToken:
			sb.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "br" {
				sb.WriteByte(' ')
			}
		}
	}
}

// UnescapeHTML decodes HTML entities without touching markup.
func UnescapeHTML(s string) string {
	return html.UnescapeString(s)
}

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Pass suffix="" for no suffix. Safe for UTF-8 (Cyrillic, CJK, emoji).
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}

// WatchURL returns the canonical watch page URL for a video.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// ThumbnailURL returns the high-quality thumbnail URL for a video.
func ThumbnailURL(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/hqdefault.jpg"
}

var globMeta = strings.NewReplacer(`*`, `\*`, `?`, `\?`, `[`, `\[`, `\`, `\\`)

// GlobEscape escapes glob metacharacters in a literal path prefix.
func GlobEscape(s string) string {
	return globMeta.Replace(s)
}
