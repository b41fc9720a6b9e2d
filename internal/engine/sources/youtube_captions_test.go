package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/anatolykoptev/go_vidrank/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleVTT = "WEBVTT\nKind: captions\nLanguage: en\n\n00:00:00.000 --> 00:00:02.000\nhello world\n"

func captionServer(t *testing.T, tracks func(base string) string) *WatchPageCaptions {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/watch":
			fmt.Fprintf(w, `<html><script>var ytInitialPlayerResponse = %s;</script></html>`, tracks(srv.URL))
		case "/timedtext":
			assert.Equal(t, "vtt", r.URL.Query().Get("fmt"))
			w.Write([]byte(sampleVTT))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	wc := NewWatchPageCaptions(engine.Config{HTTPClient: srv.Client()})
	wc.watchBase = srv.URL + "/watch?v="
	wc.retry = engine.RetryConfig{MaxRetries: 0, InitialWait: time.Millisecond, MaxWait: time.Millisecond, Multiplier: 1}
	return wc
}

func TestWatchPageCaptionsFetch(t *testing.T) {
	wc := captionServer(t, func(base string) string {
		return `{"playabilityStatus":{"status":"OK"},"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[` +
			`{"baseUrl":"` + base + `/timedtext?lang=de","languageCode":"de","kind":"asr"},` +
			`{"baseUrl":"` + base + `/timedtext?lang=en","languageCode":"en","kind":"asr"}]}}}`
	})

	dest := filepath.Join(t.TempDir(), "cap.vtt")
	err := wc.Fetch(context.Background(), engine.CaptionRequest{VideoID: "abc", Lang: "en", Dest: dest})
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "WEBVTT"))
}

func TestWatchPageCaptionsNoTrack(t *testing.T) {
	wc := captionServer(t, func(base string) string {
		return `{"playabilityStatus":{"status":"OK"},"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[` +
			`{"baseUrl":"` + base + `/timedtext?lang=fr","languageCode":"fr","kind":"asr"}]}}}`
	})

	dest := filepath.Join(t.TempDir(), "cap.vtt")
	err := wc.Fetch(context.Background(), engine.CaptionRequest{VideoID: "abc", Lang: "en", Dest: dest})
	assert.ErrorIs(t, err, engine.ErrNoCaptions)
	assert.NoFileExists(t, dest)
}

func TestWatchPageCaptionsNoCaptionsObject(t *testing.T) {
	wc := captionServer(t, func(string) string {
		return `{"playabilityStatus":{"status":"OK"}}`
	})
	err := wc.Fetch(context.Background(), engine.CaptionRequest{VideoID: "abc", Lang: "en", Dest: filepath.Join(t.TempDir(), "x.vtt")})
	assert.ErrorIs(t, err, engine.ErrNoCaptions)
}

func TestWatchPageCaptionsUnplayable(t *testing.T) {
	wc := captionServer(t, func(string) string {
		return `{"playabilityStatus":{"status":"LOGIN_REQUIRED","reason":"Sign in to confirm you're not a bot"}}`
	})
	err := wc.Fetch(context.Background(), engine.CaptionRequest{VideoID: "abc", Lang: "en", Dest: filepath.Join(t.TempDir(), "x.vtt")})
	require.Error(t, err)
	assert.NotErrorIs(t, err, engine.ErrNoCaptions)
	assert.Contains(t, err.Error(), "LOGIN_REQUIRED")
}

func TestExtractJSON(t *testing.T) {
	in := []byte(`{"a":"x}\"y","b":{"c":1}};var other = {}`)
	assert.Equal(t, `{"a":"x}\"y","b":{"c":1}}`, string(extractJSON(in)))
	assert.Nil(t, extractJSON([]byte(`not json`)))
	assert.Nil(t, extractJSON([]byte(`{"open":`)))
}

func TestPickAutoTrack(t *testing.T) {
	tracks := []captionTrack{
		{BaseURL: "u1&exp=xpe", LanguageCode: "en", Kind: "asr"},
		{BaseURL: "u2", LanguageCode: "en-US"},
		{BaseURL: "u3", LanguageCode: "en", Kind: "asr"},
	}
	got, ok := pickAutoTrack(tracks, "en")
	require.True(t, ok)
	assert.Equal(t, "u3", got.BaseURL)

	got, ok = pickAutoTrack(tracks[:2], "en")
	require.True(t, ok)
	assert.Equal(t, "u2", got.BaseURL)

	_, ok = pickAutoTrack(tracks, "es")
	assert.False(t, ok)
}

func TestNetscapeCookies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.txt")
	content := "# Netscape HTTP Cookie File\n" +
		".youtube.com\tTRUE\t/\tTRUE\t0\tSID\tabc\n" +
		"#HttpOnly_.youtube.com\tTRUE\t/\tTRUE\t0\tHSID\tdef\n" +
		".example.com\tTRUE\t/\tFALSE\t0\tOTHER\tzzz\n" +
		"broken line\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cookies, err := loadNetscapeCookies(path)
	require.NoError(t, err)
	require.Len(t, cookies, 3)
	assert.True(t, cookies[1].HttpOnly)
	assert.Equal(t, "SID=abc; HSID=def", cookieHeader(cookies, "www.youtube.com"))
	assert.Empty(t, cookieHeader(cookies, "vimeo.com"))
}

func TestUsableCookiesFile(t *testing.T) {
	assert.Empty(t, usableCookiesFile(""))
	assert.Empty(t, usableCookiesFile(filepath.Join(t.TempDir(), "missing.txt")))

	path := filepath.Join(t.TempDir(), "cookies.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	assert.Equal(t, path, usableCookiesFile(path))
}

func TestYTDLPArgs(t *testing.T) {
	y := NewYTDLP(engine.Config{})
	assert.Equal(t, "yt-dlp", y.Path)

	args := y.Args(engine.CaptionRequest{VideoID: "abc", Lang: "en", Dest: "/tmp/cap-1.vtt", CookiesFile: "/nonexistent/cookies.txt"})
	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "--skip-download")
	assert.Contains(t, joined, "--write-auto-subs")
	assert.Contains(t, joined, "--sub-langs en")
	assert.Contains(t, joined, "--output /tmp/cap-1.%(ext)s")
	assert.NotContains(t, joined, "--cookies")
	assert.Equal(t, engine.WatchURL("abc"), args[len(args)-1])
}
