package sources

import (
	"strings"
)

// Watch page player response: types and JSON extraction helpers.

// ytInitialPlayerResponseMarker marks the start of the player response JSON in watch page HTML.
const ytInitialPlayerResponseMarker = "ytInitialPlayerResponse = "

type innertubePlayerResp struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
}

// extractJSON extracts a complete JSON object starting at b[0] == '{' by tracking brace depth.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickAutoTrack selects the caption track for lang, preferring the auto-generated one.
// Reports false when no usable track in that language exists.
func pickAutoTrack(tracks []captionTrack, lang string) (captionTrack, bool) {
	var manual *captionTrack
	for i, t := range tracks {
		if needsPoToken(t.BaseURL) || !sameLang(t.LanguageCode, lang) {
			continue
		}
		if t.Kind == "asr" {
			return t, true
		}
		if manual == nil {
			manual = &tracks[i]
		}
	}
	if manual != nil {
		return *manual, true
	}
	return captionTrack{}, false
}

// sameLang matches "en" against "en", "en-US", "en-GB".
func sameLang(code, lang string) bool {
	code, lang = strings.ToLower(code), strings.ToLower(lang)
	return code == lang || strings.HasPrefix(code, lang+"-")
}
