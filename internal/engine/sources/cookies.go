package sources

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
)

var warnMissingCookies sync.Once

// usableCookiesFile returns path when it points to an existing file, "" otherwise.
// A missing file is a soft degradation: captions are fetched unauthenticated.
func usableCookiesFile(path string) string {
	if path == "" {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		warnMissingCookies.Do(func() {
			slog.Warn("cookies file not found, fetching captions unauthenticated",
				slog.String("path", path), slog.Any("error", err))
		})
		return ""
	}
	return path
}

// loadNetscapeCookies parses a Netscape/Mozilla cookies.txt file (the format yt-dlp
// and browser exporters write). "#HttpOnly_" prefixed lines are kept.
func loadNetscapeCookies(path string) ([]*http.Cookie, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open cookies: %w", err)
	}
	defer f.Close()

	var cookies []*http.Cookie
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		httpOnly := false
		if strings.HasPrefix(line, "#HttpOnly_") {
			line = strings.TrimPrefix(line, "#HttpOnly_")
			httpOnly = true
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 7 {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Domain:   fields[0],
			Path:     fields[2],
			Secure:   strings.EqualFold(fields[3], "TRUE"),
			Name:     fields[5],
			Value:    fields[6],
			HttpOnly: httpOnly,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read cookies: %w", err)
	}
	return cookies, nil
}

// cookieHeader renders cookies whose domain matches host as a Cookie header value.
func cookieHeader(cookies []*http.Cookie, host string) string {
	var parts []string
	for _, c := range cookies {
		d := strings.TrimPrefix(c.Domain, ".")
		if host == d || strings.HasSuffix(host, "."+d) {
			parts = append(parts, c.Name+"="+c.Value)
		}
	}
	return strings.Join(parts, "; ")
}
