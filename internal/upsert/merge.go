package upsert

import (
	"time"

	"github.com/briidgedotone/narra/internal/domain"
)

// MergeProfile applies a draft onto an existing profile. Empty strings and
// nil pointers in the draft never clear stored values. A nil existing
// profile produces a fresh one.
func MergeProfile(existing *domain.Profile, d domain.ProfileDraft, now time.Time) domain.Profile {
	p := domain.Profile{
		Handle:    d.Handle,
		Platform:  d.Platform,
		CreatedAt: now,
	}
	if existing != nil {
		p = *existing
	}

	setString(&p.DisplayName, d.DisplayName)
	setString(&p.Bio, d.Bio)
	setString(&p.AvatarURL, d.AvatarURL)
	if d.Followers != nil {
		p.FollowersCount = d.Followers
	}
	if d.Verified != nil {
		p.Verified = *d.Verified
	}
	p.LastUpdated = now

	return p
}

// MergePost applies a draft onto an existing post. Metrics merge field by
// field, so an unreported counter keeps its stored value while a reported
// zero overwrites. The transcript and owning profile of an existing row
// are kept.
func MergePost(existing *domain.Post, profileID, normalizedID string, d domain.Draft, now time.Time) domain.Post {
	p := domain.Post{
		ProfileID:      profileID,
		Platform:       d.Platform,
		PlatformPostID: normalizedID,
		CreatedAt:      now,
	}
	if existing != nil {
		p = *existing
	}

	setString(&p.Caption, d.Caption)
	setString(&p.EmbedURL, d.EmbedURL)
	setString(&p.Shortcode, d.Shortcode)
	setString(&p.Thumbnail, d.Thumbnail)
	setString(&p.DisplayURL, d.DisplayURL)
	setString(&p.VideoURL, d.VideoURL)

	p.Metrics = p.Metrics.Merge(d.Metrics)

	p.IsVideo = p.IsVideo || d.IsVideo
	if d.IsCarousel {
		p.IsCarousel = true
		p.CarouselItems = d.CarouselItems
	}
	if d.Dimensions.Width > 0 && d.Dimensions.Height > 0 {
		p.Dimensions = d.Dimensions
	}
	if !d.DatePosted.IsZero() {
		p.DatePosted = d.DatePosted
	}
	p.UpdatedAt = now

	return p
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
