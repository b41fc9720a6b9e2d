package videos

import (
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

var fillerRe = regexp.MustCompile(`(?i)\b(uh|um|like|you know)\b`)

// maxLemmaSteps bounds the lemma fixed-point walk.
const maxLemmaSteps = 4

var (
	lemmatizerOnce sync.Once
	lemmatizer     *golem.Lemmatizer
)

func getLemmatizer() *golem.Lemmatizer {
	lemmatizerOnce.Do(func() {
		l, err := golem.New(en.New())
		if err != nil {
			slog.Warn("lemmatizer unavailable, tokens kept as-is", slog.Any("error", err))
			return
		}
		lemmatizer = l
	})
	return lemmatizer
}

// Normalize turns free text into the token stream used for embeddings:
// fillers stripped, lowercased, punctuation removed, stop words dropped
// (keeping the how/make/money/online terms) and tokens lemmatized.
// Returns "" when nothing usable remains. Normalize is idempotent.
func Normalize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	text = fillerRe.ReplaceAllString(text, " ")
	text = strings.ToLower(text)
	text = stripPunct(text)

	lem := getLemmatizer()
	tokens := strings.Fields(text)
	out := tokens[:0]
	for _, tok := range tokens {
		if isStopWord(tok) {
			continue
		}
		tok = lemma(lem, tok)
		if tok == "" || isStopWord(tok) {
			continue
		}
		out = append(out, tok)
	}
	return strings.Join(out, " ")
}

func stripPunct(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, s)
}

// lemma walks token to a base form that maps to itself.
func lemma(l *golem.Lemmatizer, tok string) string {
	if l == nil {
		return tok
	}
	for range maxLemmaSteps {
		next := strings.ToLower(l.Lemma(tok))
		if next == tok || !isPlainToken(next) {
			return tok
		}
		tok = next
	}
	return tok
}

// isPlainToken reports whether s would survive tokenization unchanged.
func isPlainToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}
