package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/anatolykoptev/go_vidrank/internal/engine"
)

// Auto-generated captions via the watch page: scrape ytInitialPlayerResponse,
// pick the track for the requested language and download it as WebVTT.

// WatchPageCaptions writes WebVTT caption artifacts using the public watch page.
type WatchPageCaptions struct {
	http      *http.Client
	browser   *engine.BrowserClient
	watchBase string
	retry     engine.RetryConfig
}

// NewWatchPageCaptions builds a watch page caption fetcher.
func NewWatchPageCaptions(c engine.Config) *WatchPageCaptions {
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &WatchPageCaptions{
		http:      httpClient,
		browser:   c.BrowserClient,
		watchBase: "https://www.youtube.com/watch?v=",
		retry:     engine.RetryConfig{MaxRetries: 1, InitialWait: 250 * time.Millisecond, MaxWait: time.Second, Multiplier: 2},
	}
}

// Fetch downloads the caption track for req.VideoID/req.Lang into req.Dest.
// Returns engine.ErrNoCaptions when the video has no track in that language.
func (w *WatchPageCaptions) Fetch(ctx context.Context, req engine.CaptionRequest) error {
	var cookies []*http.Cookie
	if path := usableCookiesFile(req.CookiesFile); path != "" {
		var err error
		if cookies, err = loadNetscapeCookies(path); err != nil {
			return err
		}
	}

	page, err := w.get(ctx, w.watchBase+url.QueryEscape(req.VideoID), cookies, 6*1024*1024)
	if err != nil {
		return fmt.Errorf("watch page: %w", err)
	}

	player, err := parsePlayerResponse(page)
	if err != nil {
		return err
	}
	if player.Captions == nil {
		if s := player.PlayabilityStatus; s != nil && s.Status != "" && s.Status != "OK" {
			return fmt.Errorf("video not playable: %s %s", s.Status, s.Reason)
		}
		return engine.ErrNoCaptions
	}

	track, ok := pickAutoTrack(player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks, req.Lang)
	if !ok {
		return engine.ErrNoCaptions
	}

	vtt, err := w.get(ctx, track.BaseURL+"&fmt=vtt", cookies, 2*1024*1024)
	if err != nil {
		return fmt.Errorf("timedtext: %w", err)
	}
	if !bytes.HasPrefix(bytes.TrimPrefix(vtt, []byte("\xef\xbb\xbf")), []byte("WEBVTT")) {
		return errors.New("timedtext: response is not WebVTT")
	}
	return os.WriteFile(req.Dest, vtt, 0o600)
}

func parsePlayerResponse(page []byte) (innertubePlayerResp, error) {
	var player innertubePlayerResp
	idx := bytes.Index(page, []byte(ytInitialPlayerResponseMarker))
	if idx < 0 {
		return player, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	jsonData := extractJSON(page[idx+len(ytInitialPlayerResponseMarker):])
	if jsonData == nil {
		return player, errors.New("failed to extract ytInitialPlayerResponse JSON")
	}
	if err := json.Unmarshal(jsonData, &player); err != nil {
		return player, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return player, nil
}

func (w *WatchPageCaptions) get(ctx context.Context, rawURL string, cookies []*http.Cookie, limit int64) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	cookie := cookieHeader(cookies, u.Hostname())

	if w.browser != nil {
		return w.browserGet(rawURL, cookie, limit)
	}

	resp, err := engine.RetryHTTP(ctx, w.retry, "youtube watch", func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		for k, v := range engine.ChromeHeaders() {
			req.Header.Set(k, v)
		}
		// Let net/http negotiate compression itself.
		req.Header.Del("accept-encoding")
		if cookie != "" {
			req.Header.Set("Cookie", cookie)
		}
		return w.http.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, &engine.APIError{Service: "youtube watch", StatusCode: resp.StatusCode, Body: string(snippet)}
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

// browserGet fetches rawURL through the Chrome-fingerprinted client.
func (w *WatchPageCaptions) browserGet(rawURL, cookie string, limit int64) ([]byte, error) {
	headers := engine.ChromeHeaders()
	headers["referer"] = "https://www.youtube.com/"
	if cookie != "" {
		headers["cookie"] = cookie
	}
	data, _, status, err := w.browser.Do(http.MethodGet, rawURL, headers, nil)
	if err != nil {
		return nil, fmt.Errorf("browser fetch: %w", err)
	}
	if status != http.StatusOK {
		return nil, &engine.APIError{Service: "youtube watch", StatusCode: status, Body: engine.TruncateRunes(string(data), 256, "")}
	}
	if int64(len(data)) > limit {
		data = data[:limit]
	}
	return data, nil
}
