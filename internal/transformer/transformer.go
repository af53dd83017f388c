package transformer

import (
	"fmt"
	"strings"
	"time"

	"github.com/briidgedotone/narra/internal/domain"
	"github.com/tidwall/gjson"
)

// Shape identifies which endpoint produced a payload. Each endpoint nests
// posts differently even within one platform.
type Shape int

const (
	ShapeSinglePost Shape = iota
	ShapePostList
	ShapeProfile
)

func (s Shape) String() string {
	switch s {
	case ShapeSinglePost:
		return "single_post"
	case ShapePostList:
		return "post_list"
	case ShapeProfile:
		return "profile"
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// Payload is a raw content API response tagged with the platform and
// endpoint shape that produced it.
type Payload struct {
	Platform domain.Platform
	Shape    Shape
	Raw      []byte
	// Owner is used for list elements that carry no owner of their own,
	// e.g. a post-list fetched for a known profile.
	Owner domain.Owner
}

// ListResult carries the drafts extracted from a list payload and the
// elements that were rejected.
type ListResult struct {
	Drafts   []domain.Draft
	Rejected []error
}

// Transformer turns raw payloads into canonical drafts. It performs no I/O.
type Transformer struct {
	rules map[domain.Platform]Rules
}

func New() *Transformer {
	return &Transformer{
		rules: map[domain.Platform]Rules{
			domain.PlatformInstagram: instagramRules,
			domain.PlatformTikTok:    tiktokRules,
		},
	}
}

func (t *Transformer) rulesFor(p domain.Platform) (Rules, error) {
	r, ok := t.rules[p]
	if !ok {
		return Rules{}, fmt.Errorf("no transform rules for platform %q", p)
	}
	return r, nil
}

func parse(raw []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, domain.MissingContentError("payload is not valid JSON")
	}
	return gjson.ParseBytes(raw), nil
}

// Post transforms a single-post payload.
func (t *Transformer) Post(p Payload) (domain.Draft, error) {
	if p.Shape != ShapeSinglePost {
		return domain.Draft{}, fmt.Errorf("post transform needs a %s payload, got %s", ShapeSinglePost, p.Shape)
	}
	rules, err := t.rulesFor(p.Platform)
	if err != nil {
		return domain.Draft{}, err
	}
	root, err := parse(p.Raw)
	if err != nil {
		return domain.Draft{}, err
	}

	node := rules.SinglePost.First(root)
	if !node.IsObject() {
		return domain.Draft{}, domain.MissingContentError("no post object in payload")
	}
	return draftFromNode(p.Platform, rules, node, domain.Owner{})
}

// Posts transforms a post-list or profile payload. Elements that cannot be
// transformed are reported in Rejected and do not stop the others.
func (t *Transformer) Posts(p Payload) (ListResult, error) {
	rules, err := t.rulesFor(p.Platform)
	if err != nil {
		return ListResult{}, err
	}
	root, err := parse(p.Raw)
	if err != nil {
		return ListResult{}, err
	}

	var items []gjson.Result
	fallback := p.Owner
	switch p.Shape {
	case ShapePostList:
		items = rules.PostList.Array(root)
	case ShapeProfile:
		items = rules.Profile.Posts.Array(root)
		if embedded := OwnerFromProfile(profileDraft(p.Platform, rules, root)); embedded.Handle != "" {
			fallback = embedded
		}
	default:
		return ListResult{}, fmt.Errorf("posts transform needs a list payload, got %s", p.Shape)
	}

	res := ListResult{Drafts: make([]domain.Draft, 0, len(items))}
	for i, item := range items {
		d, err := draftFromNode(p.Platform, rules, unwrapNode(item), fallback)
		if err != nil {
			res.Rejected = append(res.Rejected, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		res.Drafts = append(res.Drafts, d)
	}
	return res, nil
}

// Profile transforms a profile payload into a profile draft.
func (t *Transformer) Profile(p Payload) (domain.ProfileDraft, error) {
	if p.Shape != ShapeProfile {
		return domain.ProfileDraft{}, fmt.Errorf("profile transform needs a %s payload, got %s", ShapeProfile, p.Shape)
	}
	rules, err := t.rulesFor(p.Platform)
	if err != nil {
		return domain.ProfileDraft{}, err
	}
	root, err := parse(p.Raw)
	if err != nil {
		return domain.ProfileDraft{}, err
	}

	d := profileDraft(p.Platform, rules, root)
	if d.Handle == "" {
		return domain.ProfileDraft{}, domain.MissingContentError("profile payload has no handle")
	}
	return d, nil
}

func profileDraft(platform domain.Platform, rules Rules, root gjson.Result) domain.ProfileDraft {
	pr := rules.Profile
	return domain.ProfileDraft{
		Handle:      normalizeHandle(pr.Handle.String(root)),
		Platform:    platform,
		DisplayName: pr.DisplayName.String(root),
		Bio:         pr.Bio.String(root),
		Followers:   pr.Followers.Int(root),
		AvatarURL:   pr.AvatarURL.String(root),
		Verified:    pr.Verified.Bool(root),
	}
}

// OwnerFromProfile is the post owner described by a profile draft.
func OwnerFromProfile(p domain.ProfileDraft) domain.Owner {
	return domain.Owner{
		Handle:      p.Handle,
		DisplayName: p.DisplayName,
		Verified:    p.Verified,
		AvatarURL:   p.AvatarURL,
		Followers:   p.Followers,
	}
}

func draftFromNode(platform domain.Platform, rules Rules, node gjson.Result, fallback domain.Owner) (domain.Draft, error) {
	d := domain.Draft{
		Platform:       platform,
		PlatformPostID: rules.ID.String(node),
		Shortcode:      rules.Shortcode.String(node),
		Caption:        rules.Caption.String(node),
		Thumbnail:      rules.Thumbnail.String(node),
		DisplayURL:     rules.DisplayURL.String(node),
		VideoURL:       rules.VideoURL.String(node),
		Dimensions:     dimensions(rules.Width, rules.Height, node),
		IsVideo:        rules.Video.IsVideo(node),
		Metrics:        metrics(rules, node),
		Owner:          owner(rules.Owner, node, fallback),
	}

	if ts := rules.TakenAt.Int(node); ts != nil && *ts > 0 {
		d.DatePosted = time.Unix(*ts, 0).UTC()
	}

	applyCarousel(&d, rules.Carousel, node)

	if d.Owner.Handle == "" {
		return domain.Draft{}, domain.MissingContentError("payload has no owner handle")
	}
	if d.PlatformPostID == "" {
		return domain.Draft{}, domain.MissingContentError("payload has no content id")
	}

	d.EmbedURL = rules.EmbedURL.String(node)
	if d.EmbedURL == "" && rules.BuildEmbedURL != nil {
		d.EmbedURL = rules.BuildEmbedURL(d.Owner.Handle, d.PlatformPostID, d.Shortcode)
	}

	return d, nil
}

// metrics applies the alias tables. Likes and comments default to zero,
// the rest stay absent when unreported.
func metrics(rules Rules, node gjson.Result) domain.Metrics {
	m := domain.Metrics{
		Likes:    rules.Likes.Int(node),
		Comments: rules.Comments.Int(node),
		Views:    rules.Views.Int(node),
		Shares:   rules.Shares.Int(node),
	}
	if m.Likes == nil {
		m.Likes = new(int64)
	}
	if m.Comments == nil {
		m.Comments = new(int64)
	}
	return m
}

func owner(rules OwnerRules, node gjson.Result, fallback domain.Owner) domain.Owner {
	o := domain.Owner{
		Handle:      normalizeHandle(rules.Handle.String(node)),
		DisplayName: rules.DisplayName.String(node),
		Verified:    rules.Verified.Bool(node),
		AvatarURL:   rules.AvatarURL.String(node),
		Followers:   rules.Followers.Int(node),
	}
	if o.Handle == "" {
		o.Handle = fallback.Handle
	}
	if o.Handle != fallback.Handle {
		return o
	}
	if o.DisplayName == "" {
		o.DisplayName = fallback.DisplayName
	}
	if o.Verified == nil {
		o.Verified = fallback.Verified
	}
	if o.AvatarURL == "" {
		o.AvatarURL = fallback.AvatarURL
	}
	if o.Followers == nil {
		o.Followers = fallback.Followers
	}
	return o
}

func applyCarousel(d *domain.Draft, rule CarouselRule, node gjson.Result) {
	if !rule.MediaType.Matches(node, rule.CarouselTypes...) {
		return
	}
	items := rule.Items.Array(node)
	if len(items) == 0 {
		return
	}

	d.IsCarousel = true
	d.CarouselItems = make([]domain.CarouselItem, 0, len(items))
	for _, raw := range items {
		item := unwrapNode(raw)
		dims := dimensions(rule.Item.Width, rule.Item.Height, item)
		d.CarouselItems = append(d.CarouselItems, domain.CarouselItem{
			Thumbnail:  rule.Item.Thumbnail.String(item),
			DisplayURL: rule.Item.DisplayURL.String(item),
			VideoURL:   rule.Item.VideoURL.String(item),
			IsVideo:    rule.Item.Video.IsVideo(item),
			Width:      dims.Width,
			Height:     dims.Height,
		})
	}

	first := d.CarouselItems[0]
	d.Thumbnail = first.Thumbnail
	d.DisplayURL = first.DisplayURL
	if first.VideoURL != "" {
		d.VideoURL = first.VideoURL
	}
}

func dimensions(width, height Paths, node gjson.Result) domain.Dimensions {
	var dims domain.Dimensions
	if w := width.Int(node); w != nil {
		dims.Width = int(*w)
	}
	if h := height.Int(node); h != nil {
		dims.Height = int(*h)
	}
	return dims
}

func normalizeHandle(h string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(h), "@"))
}
