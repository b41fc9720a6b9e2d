package videos

import (
	"regexp"
	"strings"

	"github.com/anatolykoptev/go_vidrank/internal/engine"
)

var (
	// "00:00:01.234 --> 00:00:03.456 align:start position:0%", hours optional.
	vttTimingRe = regexp.MustCompile(`^(\d{2}:)?\d{2}:\d{2}[.,]\d{3}\s*-->`)
	vttTagRe    = regexp.MustCompile(`<[^>]*>`)
)

// ParseVTT extracts the spoken text from a WebVTT payload: header block,
// NOTE/STYLE/REGION blocks, cue ids, timing lines and inline tags are dropped,
// entities unescaped and lines joined with single spaces. Consecutive repeats
// from rolling auto-captions are collapsed.
func ParseVTT(raw string) string {
	raw = strings.TrimPrefix(raw, "\ufeff")
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	blocks := strings.Split(raw, "\n\n")

	var out []string
	prev := ""
	for i, block := range blocks {
		block = strings.Trim(block, "\n")
		if block == "" {
			continue
		}
		if i == 0 && strings.HasPrefix(block, "WEBVTT") {
			continue
		}
		if isVTTMetaBlock(block) {
			continue
		}
		lines := strings.Split(block, "\n")
		// A cue identifier is the first line of a block, directly above its timing.
		if len(lines) > 1 && vttTimingRe.MatchString(strings.TrimSpace(lines[1])) {
			lines = lines[1:]
		}
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" || vttTimingRe.MatchString(line) {
				continue
			}
			line = vttTagRe.ReplaceAllString(line, "")
			line = strings.Join(strings.Fields(engine.UnescapeHTML(line)), " ")
			if line == "" || line == prev {
				continue
			}
			out = append(out, line)
			prev = line
		}
	}
	return strings.Join(out, " ")
}

func isVTTMetaBlock(block string) bool {
	for _, p := range []string{"NOTE", "STYLE", "REGION"} {
		if block == p || strings.HasPrefix(block, p+" ") || strings.HasPrefix(block, p+"\n") {
			return true
		}
	}
	return false
}
