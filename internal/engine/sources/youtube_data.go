package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/anatolykoptev/go_vidrank/internal/engine"
	"golang.org/x/time/rate"
)

// YouTube Data API v3 client used for candidate search, statistics and comments.

const ytMaxComments = 50

// --- YouTube Data API v3 types ---

type ytDataSearchResp struct {
	Items []ytDataItem `json:"items"`
}

type ytDataItem struct {
	ID      ytDataItemID      `json:"id"`
	Snippet ytDataItemSnippet `json:"snippet"`
}

type ytDataItemID struct {
	VideoID string `json:"videoId"`
}

type ytDataItemSnippet struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ytVideosResp struct {
	Items []struct {
		ID         string `json:"id"`
		Statistics struct {
			// Counts are JSON strings; likeCount is absent when likes are hidden.
			ViewCount int64 `json:"viewCount,string"`
			LikeCount int64 `json:"likeCount,string"`
		} `json:"statistics"`
	} `json:"items"`
}

type ytCommentThreadsResp struct {
	Items []struct {
		Snippet struct {
			TopLevelComment struct {
				Snippet struct {
					TextDisplay string `json:"textDisplay"`
					LikeCount   int64  `json:"likeCount"`
				} `json:"snippet"`
			} `json:"topLevelComment"`
		} `json:"snippet"`
	} `json:"items"`
}

// YouTubeClient talks to the YouTube Data API v3.
type YouTubeClient struct {
	base    string
	keys    []string
	http    *http.Client
	limiter *rate.Limiter
	retry   engine.RetryConfig
}

// NewYouTubeClient builds a client from the engine configuration.
// The fallback key, when set, is tried after a quota error on the primary key.
func NewYouTubeClient(c engine.Config) *YouTubeClient {
	keys := []string{c.YouTubeAPIKey}
	if c.YouTubeAPIKeyFallback != "" {
		keys = append(keys, c.YouTubeAPIKeyFallback)
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	qps := c.YouTubeQPS
	if qps <= 0 {
		qps = 5
	}
	return &YouTubeClient{
		base:    c.YouTubeAPIBase,
		keys:    keys,
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(qps), 1),
		retry:   engine.DefaultRetryConfig,
	}
}

// SearchVideos runs a type=video search and returns hits in API order.
// Like and view counts are not part of the search response and stay zero.
func (c *YouTubeClient) SearchVideos(ctx context.Context, query string, maxResults int) ([]engine.CandidateVideo, error) {
	engine.IncrSearch()
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("maxResults", strconv.Itoa(maxResults))

	var result ytDataSearchResp
	if err := c.get(ctx, "/search", params, &result); err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}

	videos := make([]engine.CandidateVideo, 0, len(result.Items))
	for _, item := range result.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, engine.CandidateVideo{
			ID:          item.ID.VideoID,
			Title:       engine.CleanHTML(item.Snippet.Title),
			Description: engine.CleanHTML(item.Snippet.Description),
		})
	}
	return videos, nil
}

// VideoStats returns the like and view counts for one video.
func (c *YouTubeClient) VideoStats(ctx context.Context, videoID string) (likes, views int64, err error) {
	engine.IncrStats()
	params := url.Values{}
	params.Set("part", "statistics")
	params.Set("id", videoID)

	var result ytVideosResp
	if err := c.get(ctx, "/videos", params, &result); err != nil {
		return 0, 0, fmt.Errorf("youtube stats %s: %w", videoID, err)
	}
	if len(result.Items) == 0 {
		return 0, 0, fmt.Errorf("youtube stats %s: video not found", videoID)
	}
	s := result.Items[0].Statistics
	return s.LikeCount, s.ViewCount, nil
}

// ListComments returns up to maxResults top-level comments as plain text.
func (c *YouTubeClient) ListComments(ctx context.Context, videoID string, maxResults int) ([]engine.Comment, error) {
	engine.IncrComments()
	if maxResults <= 0 || maxResults > ytMaxComments {
		maxResults = ytMaxComments
	}
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("videoId", videoID)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("textFormat", "plainText")

	var result ytCommentThreadsResp
	if err := c.get(ctx, "/commentThreads", params, &result); err != nil {
		return nil, fmt.Errorf("youtube comments %s: %w", videoID, err)
	}

	comments := make([]engine.Comment, 0, len(result.Items))
	for _, item := range result.Items {
		s := item.Snippet.TopLevelComment.Snippet
		comments = append(comments, engine.Comment{
			Text:      engine.UnescapeHTML(s.TextDisplay),
			LikeCount: s.LikeCount,
		})
	}
	return comments, nil
}

// get performs a GET against the Data API, falling back to the next key on quota errors.
func (c *YouTubeClient) get(ctx context.Context, path string, params url.Values, out any) error {
	var lastErr error
	for i, key := range c.keys {
		err := c.getWithKey(ctx, path, params, key, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !engine.IsQuota(err) {
			return err
		}
		engine.IncrQuotaErrors()
		if i < len(c.keys)-1 {
			slog.Debug("youtube data API key quota exhausted, trying fallback", slog.String("path", path))
		}
	}
	return lastErr
}

func (c *YouTubeClient) getWithKey(ctx context.Context, path string, params url.Values, key string, out any) error {
	if key == "" {
		return engine.ErrConfigMissing
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("key", key)
	apiURL := c.base + path + "?" + q.Encode()

	resp, err := engine.RetryHTTP(ctx, c.retry, "youtube data API", func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", engine.UserAgentBot)
		req.Header.Set("Accept", "application/json")
		return c.http.Do(req)
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &engine.APIError{Service: "youtube data API", StatusCode: resp.StatusCode, Body: string(body)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode youtube data API: %w", err)
	}
	return nil
}
