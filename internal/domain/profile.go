package domain

import "time"

// Profile is a creator account on one platform, unique by (Handle, Platform).
type Profile struct {
	ID             string
	Handle         string
	Platform       Platform
	DisplayName    string
	Bio            string
	FollowersCount *int64
	AvatarURL      string
	Verified       bool
	LastUpdated    time.Time
	CreatedAt      time.Time
}

// ProfileDraft is what a payload tells us about an account. Nil and empty
// fields are unknown and never clear a stored value.
type ProfileDraft struct {
	Handle      string
	Platform    Platform
	DisplayName string
	Bio         string
	Followers   *int64
	AvatarURL   string
	Verified    *bool
}
