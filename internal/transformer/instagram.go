package transformer

import "fmt"

var instagramRules = Rules{
	SinglePost: Paths{"data.xdt_shortcode_media", "data.shortcode_media", "graphql.shortcode_media", "xdt_shortcode_media", "items.0", "@this"},
	PostList:   Paths{"items", "data.items", "posts", "data.posts"},

	ID:        Paths{"id", "pk", "shortcode", "code"},
	Shortcode: Paths{"shortcode", "code"},
	EmbedURL:  Paths{"permalink", "url"},
	Caption:   Paths{"caption.text", "edge_media_to_caption.edges.0.node.text", "caption"},
	TakenAt:   Paths{"taken_at", "taken_at_timestamp", "date"},

	Thumbnail:  Paths{"image_versions2.candidates.0.url", "thumbnail_src", "thumbnail_url", "display_url"},
	DisplayURL: Paths{"display_url", "display_uri", "image_versions2.candidates.0.url"},
	VideoURL:   Paths{"video_url", "video_versions.0.url"},
	Width:      Paths{"original_width", "dimensions.width"},
	Height:     Paths{"original_height", "dimensions.height"},

	Likes:    Paths{"like_count", "edge_liked_by.count", "edge_media_preview_like.count"},
	Comments: Paths{"comment_count", "edge_media_to_comment.count", "edge_media_preview_comment.count"},
	Views:    Paths{"play_count", "ig_play_count", "view_count", "video_view_count", "video_play_count"},
	Shares:   Paths{"reshare_count", "share_count"},

	Video: VideoRule{
		Flag:          Paths{"is_video"},
		MediaType:     Paths{"media_type", "__typename"},
		VideoTypes:    []string{"2", "GraphVideo", "XDTGraphVideo"},
		VideoURL:      Paths{"video_url"},
		VideoVersions: Paths{"video_versions"},
	},

	Carousel: CarouselRule{
		MediaType:     Paths{"media_type", "__typename", "product_type"},
		CarouselTypes: []string{"8", "GraphSidecar", "XDTGraphSidecar", "carousel_container"},
		Items:         Paths{"carousel_media", "edge_sidecar_to_children.edges"},
		Item: ItemRules{
			Thumbnail:  Paths{"image_versions2.candidates.0.url", "display_url"},
			DisplayURL: Paths{"display_url", "image_versions2.candidates.0.url"},
			VideoURL:   Paths{"video_url", "video_versions.0.url"},
			Width:      Paths{"original_width", "dimensions.width"},
			Height:     Paths{"original_height", "dimensions.height"},
			Video: VideoRule{
				Flag:          Paths{"is_video"},
				MediaType:     Paths{"media_type", "__typename"},
				VideoTypes:    []string{"2", "GraphVideo", "XDTGraphVideo"},
				VideoURL:      Paths{"video_url"},
				VideoVersions: Paths{"video_versions"},
			},
		},
	},

	Owner: OwnerRules{
		Handle:      Paths{"user.username", "owner.username"},
		DisplayName: Paths{"user.full_name", "owner.full_name"},
		Verified:    Paths{"user.is_verified", "owner.is_verified"},
		AvatarURL:   Paths{"user.profile_pic_url", "owner.profile_pic_url"},
		Followers:   Paths{"user.follower_count", "owner.edge_followed_by.count"},
	},

	Profile: ProfileRules{
		OwnerRules: OwnerRules{
			Handle:      Paths{"data.user.username", "user.username", "graphql.user.username"},
			DisplayName: Paths{"data.user.full_name", "user.full_name", "graphql.user.full_name"},
			Verified:    Paths{"data.user.is_verified", "user.is_verified", "graphql.user.is_verified"},
			AvatarURL:   Paths{"data.user.profile_pic_url_hd", "data.user.profile_pic_url", "user.profile_pic_url_hd", "user.profile_pic_url"},
			Followers:   Paths{"data.user.edge_followed_by.count", "user.edge_followed_by.count", "data.user.follower_count", "user.follower_count"},
		},
		Bio:   Paths{"data.user.biography", "user.biography", "graphql.user.biography"},
		Posts: Paths{"data.user.edge_owner_to_timeline_media.edges", "user.edge_owner_to_timeline_media.edges", "graphql.user.edge_owner_to_timeline_media.edges"},
	},

	BuildEmbedURL: func(_, _, shortcode string) string {
		if shortcode == "" {
			return ""
		}
		return fmt.Sprintf("https://www.instagram.com/p/%s/", shortcode)
	},
}
