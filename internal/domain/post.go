package domain

import "time"

// Metrics holds engagement counters. A nil field means the platform did not
// report it, which is different from a reported zero.
type Metrics struct {
	Views    *int64 `json:"views,omitempty"`
	Likes    *int64 `json:"likes,omitempty"`
	Comments *int64 `json:"comments,omitempty"`
	Shares   *int64 `json:"shares,omitempty"`
}

// Merge returns m with every metric reported by next applied on top.
func (m Metrics) Merge(next Metrics) Metrics {
	if next.Views != nil {
		m.Views = next.Views
	}
	if next.Likes != nil {
		m.Likes = next.Likes
	}
	if next.Comments != nil {
		m.Comments = next.Comments
	}
	if next.Shares != nil {
		m.Shares = next.Shares
	}
	return m
}

type CarouselItem struct {
	Thumbnail  string `json:"thumbnail,omitempty"`
	DisplayURL string `json:"display_url,omitempty"`
	VideoURL   string `json:"video_url,omitempty"`
	IsVideo    bool   `json:"is_video"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
}

type Dimensions struct {
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// Post is a single piece of content, unique by (Platform, PlatformPostID)
// where PlatformPostID is already normalized.
type Post struct {
	ID             string
	ProfileID      string
	Platform       Platform
	PlatformPostID string
	EmbedURL       string
	Caption        string
	Transcript     string
	Metrics        Metrics
	DatePosted     time.Time

	Thumbnail     string
	DisplayURL    string
	VideoURL      string
	Shortcode     string
	IsVideo       bool
	IsCarousel    bool
	CarouselItems []CarouselItem
	Dimensions    Dimensions

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Owner struct {
	Handle      string
	DisplayName string
	Verified    *bool
	AvatarURL   string
	Followers   *int64
}

// Draft is the platform-agnostic shape produced from a raw payload, before
// identifier normalization and persistence.
type Draft struct {
	Platform       Platform
	PlatformPostID string
	Shortcode      string
	EmbedURL       string
	Caption        string

	IsVideo       bool
	IsCarousel    bool
	CarouselItems []CarouselItem
	Thumbnail     string
	DisplayURL    string
	VideoURL      string
	Dimensions    Dimensions

	Metrics    Metrics
	DatePosted time.Time
	Owner      Owner
}

// ProfileDraft returns what the draft knows about its owner.
func (d Draft) ProfileDraft() ProfileDraft {
	return ProfileDraft{
		Handle:      d.Owner.Handle,
		Platform:    d.Platform,
		DisplayName: d.Owner.DisplayName,
		Followers:   d.Owner.Followers,
		AvatarURL:   d.Owner.AvatarURL,
		Verified:    d.Owner.Verified,
	}
}
