package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anatolykoptev/go_vidrank/internal/engine"
	"github.com/anatolykoptev/go_vidrank/internal/toolutil"
)

func sampleOutput() engine.VideoRecommendOutput {
	return engine.VideoRecommendOutput{
		Query:   "make money online",
		Summary: "Top 1 videos",
		Videos: []engine.VideoCard{{
			Rank: 1, ID: "abc", Title: "Side hustles", URL: engine.WatchURL("abc"),
			CompositeScore: 71.98, RelevanceScore: 100, Likes: 10, Views: 100,
			PositiveRatio: 0.5, TopComment: "great video",
		}},
	}
}

func TestPrintCardsTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printCards(&buf, sampleOutput(), false))
	out := buf.String()
	assert.Contains(t, out, "Top 1 videos")
	assert.Contains(t, out, "71.98")
	assert.Contains(t, out, "Side hustles")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "top comment: great video")
}

func TestPrintCardsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printCards(&buf, sampleOutput(), true))

	var got engine.VideoRecommendOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleOutput(), got)
}

func TestPrintCardsEmptyReasons(t *testing.T) {
	var none, unusable bytes.Buffer
	require.NoError(t, printCards(&none, toolutil.EmptyOutput("q", engine.ErrNoCandidates), false))
	require.NoError(t, printCards(&unusable, toolutil.EmptyOutput("q", engine.ErrNoUsableContent), false))
	assert.NotEqual(t, none.String(), unusable.String())

	var buf bytes.Buffer
	require.NoError(t, printCards(&buf, toolutil.EmptyOutput("q", engine.ErrNoCandidates), true))
	assert.Contains(t, buf.String(), `"reason": "no_candidates"`)
}

func TestReadCandidates(t *testing.T) {
	in := `[{"id":"a","title":"A","likes":3,"views":30}]`
	got, err := readCandidates(strings.NewReader(in), "-")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(30), got[0].ViewCount)

	path := filepath.Join(t.TempDir(), "videos.json")
	require.NoError(t, os.WriteFile(path, []byte(in), 0o600))
	got, err = readCandidates(nil, path)
	require.NoError(t, err)
	assert.Equal(t, "a", got[0].ID)

	_, err = readCandidates(strings.NewReader("not json"), "-")
	assert.Error(t, err)
}
