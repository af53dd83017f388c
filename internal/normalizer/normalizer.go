package normalizer

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/briidgedotone/narra/internal/domain"
)

// Source tells where a normalized identifier came from.
type Source int

const (
	// SourceRaw means the platform identifier was already stable.
	SourceRaw Source = iota
	// SourceURL means the short code was re-derived from the canonical URL.
	SourceURL
	// SourceFallback means the identifier looked unstable but the URL did not
	// yield a short code, so the raw identifier was kept. Two ingestions of
	// the same post can disagree in this case.
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceRaw:
		return "raw"
	case SourceURL:
		return "url"
	case SourceFallback:
		return "fallback"
	}
	return "unknown"
}

type Result struct {
	ID     string
	Source Source
}

const maxShortcodeLen = 20

var (
	compositeID = regexp.MustCompile(`\d+_\d+`)
	// /v2/instagram/user/posts reports a bare numeric media pk as the id.
	numericID   = regexp.MustCompile(`^\d{15,}$`)
	shortcodeIn = regexp.MustCompile(`/(?:p|reel|reels|tv)/([A-Za-z0-9_-]+)`)
)

// Normalize resolves a platform post identifier and the post's canonical
// URL into the key used for deduplication.
func Normalize(platform domain.Platform, rawID, canonicalURL string) Result {
	rawID = strings.TrimSpace(rawID)
	if platform != domain.PlatformInstagram {
		return Result{ID: rawID, Source: SourceRaw}
	}

	if looksLikeShortcode(rawID) {
		return Result{ID: rawID, Source: SourceRaw}
	}

	if code := ShortcodeFromURL(canonicalURL); code != "" {
		return Result{ID: code, Source: SourceURL}
	}
	return Result{ID: rawID, Source: SourceFallback}
}

// ShortcodeFromURL extracts the short code from a /p/<code>/ style path.
// The query string and fragment are ignored.
func ShortcodeFromURL(u string) string {
	parsed, err := url.Parse(strings.TrimSpace(u))
	if err != nil {
		return ""
	}
	m := shortcodeIn.FindStringSubmatch(parsed.Path)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

func looksLikeShortcode(id string) bool {
	return id != "" &&
		len(id) < maxShortcodeLen &&
		!compositeID.MatchString(id) &&
		!numericID.MatchString(id)
}
