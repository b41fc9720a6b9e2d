package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by the ranking pipeline and its callers.
var (
	ErrQuotaExceeded   = errors.New("youtube API quota exceeded")
	ErrNoCaptions      = errors.New("no captions available")
	ErrNoUsableContent = errors.New("no videos with usable content")
	ErrNoCandidates    = errors.New("no candidate videos found")
	ErrEmptyQuery      = errors.New("query is required")
	ErrConfigMissing   = errors.New("YOUTUBE_API_KEY is not set")
)

// Reasons attached to an empty result set.
const (
	ReasonNoCandidates    = "no_candidates"
	ReasonNoUsableContent = "no_usable_content"
)

// EmptyReason maps a batch-level failure to its Reason, or "" when err is not one.
func EmptyReason(err error) string {
	switch {
	case errors.Is(err, ErrNoCandidates):
		return ReasonNoCandidates
	case errors.Is(err, ErrNoUsableContent):
		return ReasonNoUsableContent
	}
	return ""
}

// APIError is a non-2xx answer from an external API, with a body excerpt.
type APIError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Service, e.StatusCode, e.Body)
}

// Is makes errors.Is(err, ErrQuotaExceeded) true for quota payloads.
func (e *APIError) Is(target error) bool {
	return target == ErrQuotaExceeded && hasQuotaMarker(e.Body)
}

// IsQuota reports whether err is a quota-exceeded failure, either a wrapped
// ErrQuotaExceeded or any error whose text carries the "quota" marker.
func IsQuota(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrQuotaExceeded) {
		return true
	}
	return hasQuotaMarker(err.Error())
}

func hasQuotaMarker(s string) bool {
	return strings.Contains(strings.ToLower(s), "quota")
}
