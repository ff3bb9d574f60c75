package exportimpl

import (
	"strconv"
	"strings"

	"github.com/orgball2608/insta-post-exporter/internal/domain"
)

type column struct {
	name  string
	value func(r *domain.PostRecord) any
}

// columns lists the tabular layout. Names match the JSON field names.
var columns = []column{
	{"MediaType", func(r *domain.PostRecord) any { return str(r.MediaType) }},
	{"MediaId", func(r *domain.PostRecord) any { return str(r.MediaID) }},
	{"postShortCode", func(r *domain.PostRecord) any { return str(r.ShortCode) }},
	{"postURL", func(r *domain.PostRecord) any { return str(r.PostURL) }},
	{"isVideo", func(r *domain.PostRecord) any { return flag(r.IsVideo) }},
	{"hasAudio", func(r *domain.PostRecord) any { return flag(r.HasAudio) }},
	{"displayURL", func(r *domain.PostRecord) any { return str(r.DisplayURL) }},
	{"dimensionWidth", func(r *domain.PostRecord) any { return num(r.Width) }},
	{"dimensionHeight", func(r *domain.PostRecord) any { return num(r.Height) }},
	{"videoViewCount", func(r *domain.PostRecord) any { return num(r.VideoViewCount) }},
	{"postCaption", func(r *domain.PostRecord) any { return str(r.Caption) }},
	{"totalLikes", func(r *domain.PostRecord) any { return num(r.LikeCount) }},
	{"totalComments", func(r *domain.PostRecord) any { return num(r.CommentCount) }},
	{"isAffiliate", func(r *domain.PostRecord) any { return flag(r.IsAffiliate) }},
	{"isPaidPartnership", func(r *domain.PostRecord) any { return flag(r.IsPaidPartnership) }},
	{"commentsDisabled", func(r *domain.PostRecord) any { return flag(r.CommentsDisabled) }},
	{"postDate", func(r *domain.PostRecord) any { return str(r.PostDate) }},
	{"ownerUsername", func(r *domain.PostRecord) any { return str(r.OwnerUsername) }},
	{"ownerUserID", func(r *domain.PostRecord) any { return str(r.OwnerUserID) }},
	{"location", func(r *domain.PostRecord) any { return str(r.Location) }},
	{"viewerCanReshare", func(r *domain.PostRecord) any { return flag(r.ViewerCanReshare) }},
	{"productType", func(r *domain.PostRecord) any { return str(r.ProductType) }},
	{"hashtags", func(r *domain.PostRecord) any { return strings.Join(r.Hashtags, " ") }},
}

func headers() []string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.name
	}
	return names
}

// values returns the typed cell values of a record; nil marks an absent field.
func values(r *domain.PostRecord) []any {
	row := make([]any, len(columns))
	for i, c := range columns {
		row[i] = c.value(r)
	}
	return row
}

func texts(r *domain.PostRecord) []string {
	row := make([]string, len(columns))
	for i, v := range values(r) {
		row[i] = cellText(v)
	}
	return row
}

func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

func str(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func num(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func flag(p *bool) any {
	if p == nil {
		return nil
	}
	return *p
}
