package transformer

import (
	"strconv"

	"github.com/tidwall/gjson"
)

// Paths is an ordered list of gjson paths. Extraction tries them first to
// last and the first non-empty match wins.
type Paths []string

// First returns the first non-empty result, or an empty Result.
func (p Paths) First(node gjson.Result) gjson.Result {
	for _, path := range p {
		if r := node.Get(path); present(r) {
			return r
		}
	}
	return gjson.Result{}
}

// String returns the first non-empty string or number.
func (p Paths) String(node gjson.Result) string {
	for _, path := range p {
		r := node.Get(path)
		if r.Type == gjson.String && r.Str != "" {
			return r.Str
		}
		if r.Type == gjson.Number {
			return r.String()
		}
	}
	return ""
}

// Int returns the first numeric match. Numeric strings count.
func (p Paths) Int(node gjson.Result) *int64 {
	for _, path := range p {
		r := node.Get(path)
		switch r.Type {
		case gjson.Number:
			v := r.Int()
			return &v
		case gjson.String:
			if v, err := strconv.ParseInt(r.Str, 10, 64); err == nil {
				return &v
			}
		}
	}
	return nil
}

// Bool returns the first boolean match.
func (p Paths) Bool(node gjson.Result) *bool {
	for _, path := range p {
		r := node.Get(path)
		if r.Type == gjson.True || r.Type == gjson.False {
			v := r.Bool()
			return &v
		}
	}
	return nil
}

// Array returns the elements of the first non-empty array match.
func (p Paths) Array(node gjson.Result) []gjson.Result {
	for _, path := range p {
		r := node.Get(path)
		if r.IsArray() {
			if items := r.Array(); len(items) > 0 {
				return items
			}
		}
	}
	return nil
}

// Matches reports whether any path resolves to one of values.
func (p Paths) Matches(node gjson.Result, values ...string) bool {
	for _, path := range p {
		r := node.Get(path)
		if !present(r) {
			continue
		}
		for _, v := range values {
			if r.String() == v {
				return true
			}
		}
	}
	return false
}

func present(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null:
		return false
	case gjson.String:
		return r.Str != ""
	case gjson.JSON:
		if r.IsArray() {
			return len(r.Array()) > 0
		}
		return true
	}
	return r.Exists()
}

// VideoRule lists the independent signals that mark content as video. Any
// one of them is enough.
type VideoRule struct {
	Flag          Paths
	MediaType     Paths
	VideoTypes    []string
	VideoURL      Paths
	VideoVersions Paths
}

func (v VideoRule) IsVideo(node gjson.Result) bool {
	if flag := v.Flag.Bool(node); flag != nil && *flag {
		return true
	}
	if len(v.VideoTypes) > 0 && v.MediaType.Matches(node, v.VideoTypes...) {
		return true
	}
	if v.VideoURL.String(node) != "" {
		return true
	}
	return len(v.VideoVersions.Array(node)) > 0
}

type ItemRules struct {
	Thumbnail  Paths
	DisplayURL Paths
	VideoURL   Paths
	Width      Paths
	Height     Paths
	Video      VideoRule
}

// CarouselRule requires both the media-type flag and a non-empty item list.
type CarouselRule struct {
	MediaType     Paths
	CarouselTypes []string
	Items         Paths
	Item          ItemRules
}

type OwnerRules struct {
	Handle      Paths
	DisplayName Paths
	Verified    Paths
	AvatarURL   Paths
	Followers   Paths
}

type ProfileRules struct {
	OwnerRules
	Bio Paths
	// Posts locates the embedded post list relative to the payload root.
	Posts Paths
}

// Rules is the complete extraction table for one platform.
type Rules struct {
	// Locators relative to the payload root.
	SinglePost Paths
	PostList   Paths

	// Post fields relative to the post node.
	ID         Paths
	Shortcode  Paths
	EmbedURL   Paths
	Caption    Paths
	TakenAt    Paths
	Thumbnail  Paths
	DisplayURL Paths
	VideoURL   Paths
	Width      Paths
	Height     Paths

	Likes    Paths
	Comments Paths
	Views    Paths
	Shares   Paths

	Video    VideoRule
	Carousel CarouselRule
	Owner    OwnerRules
	Profile  ProfileRules

	// BuildEmbedURL derives a canonical URL when no path supplies one.
	BuildEmbedURL func(handle, id, shortcode string) string
}

// unwrapNode returns element.node for GraphQL edge arrays.
func unwrapNode(r gjson.Result) gjson.Result {
	if n := r.Get("node"); n.IsObject() {
		return n
	}
	return r
}
