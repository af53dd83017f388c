package transformer

import "fmt"

var tiktokRules = Rules{
	SinglePost: Paths{"aweme_detail", "data.aweme_detail", "itemInfo.itemStruct", "@this"},
	PostList:   Paths{"aweme_list", "data.aweme_list", "itemList", "videos"},

	ID:        Paths{"aweme_id", "id"},
	Shortcode: Paths{},
	EmbedURL:  Paths{"share_url", "shareUrl"},
	Caption:   Paths{"desc", "description", "title"},
	TakenAt:   Paths{"create_time", "createTime"},

	Thumbnail:  Paths{"video.cover.url_list.0", "video.origin_cover.url_list.0", "video.cover", "video.originCover"},
	DisplayURL: Paths{"video.origin_cover.url_list.0", "video.cover.url_list.0", "video.cover"},
	VideoURL:   Paths{"video.play_addr.url_list.0", "video.download_addr.url_list.0", "video.playAddr", "video.downloadAddr"},
	Width:      Paths{"video.width", "video.play_addr.width"},
	Height:     Paths{"video.height", "video.play_addr.height"},

	Likes:    Paths{"statistics.digg_count", "stats.diggCount"},
	Comments: Paths{"statistics.comment_count", "stats.commentCount"},
	Views:    Paths{"statistics.play_count", "stats.playCount"},
	Shares:   Paths{"statistics.share_count", "stats.shareCount"},

	Video: VideoRule{
		Flag:          Paths{"is_video"},
		MediaType:     Paths{"aweme_type"},
		VideoTypes:    []string{"0", "4", "51", "55", "61"},
		VideoURL:      Paths{"video.play_addr.url_list.0", "video.playAddr"},
		VideoVersions: Paths{"video.bit_rate", "video.bitrateInfo"},
	},

	Carousel: CarouselRule{
		MediaType:     Paths{"aweme_type", "content_type"},
		CarouselTypes: []string{"150", "photo", "multi_photo"},
		Items:         Paths{"image_post_info.images", "imagePost.images"},
		Item: ItemRules{
			Thumbnail:  Paths{"thumbnail.url_list.0", "display_image.url_list.0", "imageURL.urlList.0"},
			DisplayURL: Paths{"display_image.url_list.0", "imageURL.urlList.0"},
			Width:      Paths{"display_image.width", "imageWidth"},
			Height:     Paths{"display_image.height", "imageHeight"},
		},
	},

	Owner: OwnerRules{
		Handle:      Paths{"author.unique_id", "author.uniqueId"},
		DisplayName: Paths{"author.nickname"},
		Verified:    Paths{"author.verified"},
		AvatarURL:   Paths{"author.avatar_thumb.url_list.0", "author.avatarThumb", "author.avatar_larger.url_list.0"},
		Followers:   Paths{"author.follower_count", "authorStats.followerCount"},
	},

	Profile: ProfileRules{
		OwnerRules: OwnerRules{
			Handle:      Paths{"user.uniqueId", "userInfo.user.uniqueId", "user.unique_id"},
			DisplayName: Paths{"user.nickname", "userInfo.user.nickname"},
			Verified:    Paths{"user.verified", "userInfo.user.verified"},
			AvatarURL:   Paths{"user.avatarLarger", "userInfo.user.avatarLarger", "user.avatar_larger.url_list.0"},
			Followers:   Paths{"stats.followerCount", "userInfo.stats.followerCount", "user.follower_count"},
		},
		Bio:   Paths{"user.signature", "userInfo.user.signature"},
		Posts: Paths{"itemList", "aweme_list"},
	},

	BuildEmbedURL: func(handle, id, _ string) string {
		if handle == "" || id == "" {
			return ""
		}
		return fmt.Sprintf("https://www.tiktok.com/@%s/video/%s", handle, id)
	},
}
