package engine

// --- Core ranking types ---

// CandidateVideo is one search hit with its engagement counters.
type CandidateVideo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	LikeCount   int64  `json:"likes"`
	ViewCount   int64  `json:"views"`
}

// EnrichedVideo is a CandidateVideo plus the signals the ranker scores.
// RelevanceScore and CompositeScore are only meaningful after the batch pass.
type EnrichedVideo struct {
	CandidateVideo
	NormalizedText       string  `json:"-"`
	UsedTranscript       bool    `json:"used_transcript"`
	PositiveCommentRatio float64 `json:"positive_ratio"`
	TopComment           string  `json:"top_comment,omitempty"`
	Similarity           float64 `json:"similarity"`
	RelevanceScore       float64 `json:"relevance_score"`
	CompositeScore       float64 `json:"composite_score"`
}

// Comment is a single top-level comment.
type Comment struct {
	Text      string `json:"text"`
	LikeCount int64  `json:"likes"`
}

// --- MCP tool types ---

type VideoRecommendInput struct {
	Query      string `json:"query" jsonschema:"Search query, e.g. 'how to make money online'"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Candidates to fetch from YouTube search (default: 5, max: 25)"`
	Language   string `json:"language,omitempty" jsonschema:"Caption language code (default: en)"`
}

type VideoRankInput struct {
	Query    string           `json:"query" jsonschema:"Query to rank the videos against"`
	Videos   []CandidateVideo `json:"videos" jsonschema:"Candidate videos with id, title, description, likes, views"`
	Language string           `json:"language,omitempty" jsonschema:"Caption language code (default: en)"`
}

// VideoCard is a presentation-neutral result row.
type VideoCard struct {
	Rank           int     `json:"rank"`
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Thumbnail      string  `json:"thumbnail"`
	Description    string  `json:"description,omitempty"`
	RelevanceScore float64 `json:"relevance_score"`
	CompositeScore float64 `json:"composite_score"`
	Likes          int64   `json:"likes"`
	Views          int64   `json:"views"`
	PositiveRatio  float64 `json:"positive_ratio"`
	TopComment     string  `json:"top_comment,omitempty"`
	UsedTranscript bool    `json:"used_transcript"`
}

type VideoRecommendOutput struct {
	Query   string      `json:"query"`
	Videos  []VideoCard `json:"videos"`
	Summary string      `json:"summary"`
	Reason  string      `json:"reason,omitempty"` // set when Videos is empty: no_candidates or no_usable_content
}

// CaptionRequest asks a caption fetcher to write a WebVTT artifact to Dest.
type CaptionRequest struct {
	VideoID     string
	Lang        string
	CookiesFile string // empty = unauthenticated
	Dest        string
}
