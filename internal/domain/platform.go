package domain

import (
	"fmt"
	"net/url"
	"strings"
)

type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
)

func (p Platform) Valid() bool {
	return p == PlatformInstagram || p == PlatformTikTok
}

func (p Platform) String() string {
	return string(p)
}

func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown platform %q", s)
	}
	return p, nil
}

// PlatformFromURL infers the platform from a post or profile URL host.
func PlatformFromURL(rawURL string) (Platform, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", rawURL, err)
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case host == "instagram.com" || strings.HasSuffix(host, ".instagram.com") || host == "instagr.am":
		return PlatformInstagram, nil
	case host == "tiktok.com" || strings.HasSuffix(host, ".tiktok.com"):
		return PlatformTikTok, nil
	}
	return "", fmt.Errorf("unsupported host %q", host)
}
