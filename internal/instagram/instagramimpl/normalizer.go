package instagramimpl

import (
	"regexp"

	"github.com/orgball2608/insta-post-exporter/internal/domain"
	"github.com/orgball2608/insta-post-exporter/internal/instagram/jsonpath"
	"github.com/orgball2608/insta-post-exporter/pkg/timestamp"
)

const postURLPrefix = "https://www.instagram.com/p/"

var (
	// hashtagToken spans the whole tag including non-ASCII letters so that a
	// tag like #café is seen as one token and rejected, not cut to #caf.
	hashtagToken = regexp.MustCompile(`#[\p{L}\p{M}\p{N}_]+`)
	asciiHashtag = regexp.MustCompile(`^#[A-Za-z0-9_]+$`)
)

// NormalizePost maps one raw post node to a PostRecord. A missing or mistyped
// field leaves only that field nil.
func NormalizePost(node jsonpath.Value, owner domain.Owner) domain.PostRecord {
	shortCode := node.Get("shortcode").String()
	caption := node.Get("edge_media_to_caption", "edges", 0, "node", "text").String()

	rec := domain.PostRecord{
		MediaType:         node.Get("__typename").String(),
		MediaID:           node.Get("id").String(),
		ShortCode:         shortCode,
		IsVideo:           node.Get("is_video").Bool(),
		HasAudio:          node.Get("has_audio").Bool(),
		DisplayURL:        node.Get("display_url").String(),
		Width:             node.Get("dimensions", "width").Int(),
		Height:            node.Get("dimensions", "height").Int(),
		Caption:           caption,
		LikeCount:         firstInt(node.Get("edge_liked_by", "count"), node.Get("edge_media_preview_like", "count")),
		CommentCount:      firstInt(node.Get("edge_media_to_comment", "count"), node.Get("edge_media_preview_comment", "count")),
		IsAffiliate:       node.Get("is_affiliate").Bool(),
		IsPaidPartnership: node.Get("is_paid_partnership").Bool(),
		CommentsDisabled:  node.Get("comments_disabled").Bool(),
		PostDate:          timestamp.ToReadable(timestamp.Normalize(node.Get("taken_at_timestamp").Raw())),
		Location:          node.Get("location", "name").String(),
		ViewerCanReshare:  node.Get("viewer_can_reshare").Bool(),
		ProductType:       node.Get("product_type").String(),
		Hashtags:          []string{},
	}

	if shortCode != nil && *shortCode != "" {
		u := postURLPrefix + *shortCode + "/"
		rec.PostURL = &u
	}

	if rec.IsVideo != nil && *rec.IsVideo {
		rec.VideoViewCount = node.Get("video_view_count").Int()
	}

	if owner.Username != "" {
		username := owner.Username
		rec.OwnerUsername = &username
	}
	rec.OwnerUserID = node.Get("owner", "id").String()

	if caption != nil {
		rec.Hashtags = ExtractHashtags(*caption)
	}

	return rec
}

// ExtractHashtags returns "#tag" tokens in order of appearance, duplicates kept.
// A tag body may contain ASCII letters, digits and underscore only.
func ExtractHashtags(caption string) []string {
	tags := []string{}
	for _, token := range hashtagToken.FindAllString(caption, -1) {
		if asciiHashtag.MatchString(token) {
			tags = append(tags, token)
		}
	}
	return tags
}

func firstInt(values ...jsonpath.Value) *int64 {
	for _, v := range values {
		if n := v.Int(); n != nil {
			return n
		}
	}
	return nil
}
