package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain title", "plain title"},
		{"How to Make Money Online &amp; Fast", "How to Make Money Online & Fast"},
		{"It&#39;s <b>great</b>", "It's great"},
		{"line one<br>line two", "line one line two"},
		{"  padded  ", "padded"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanHTML(tt.in))
		})
	}
}

func TestUnescapeHTML(t *testing.T) {
	assert.Equal(t, `"quoted" <c>`, UnescapeHTML("&quot;quoted&quot; &lt;c&gt;"))
}

func TestVideoURLs(t *testing.T) {
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", WatchURL("abc123"))
	assert.Equal(t, "https://img.youtube.com/vi/abc123/hqdefault.jpg", ThumbnailURL("abc123"))
}

func TestIsQuota(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", ErrQuotaExceeded, true},
		{"wrapped sentinel", fmt.Errorf("search: %w", ErrQuotaExceeded), true},
		{"api payload", &APIError{Service: "youtube", StatusCode: 403, Body: `{"reason":"quotaExceeded"}`}, true},
		{"marker in text", errors.New("daily QUOTA reached"), true},
		{"other api error", &APIError{Service: "youtube", StatusCode: 404, Body: "videoNotFound"}, false},
		{"plain", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsQuota(tt.err))
		})
	}
}

func TestAPIErrorIsQuota(t *testing.T) {
	err := fmt.Errorf("stats: %w", &APIError{StatusCode: 403, Body: "quotaExceeded"})
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.NotErrorIs(t, &APIError{StatusCode: 403, Body: "forbidden"}, ErrQuotaExceeded)
}

func TestGlobEscape(t *testing.T) {
	assert.Equal(t, `/tmp/a\[1]\*`, GlobEscape("/tmp/a[1]*"))
}
