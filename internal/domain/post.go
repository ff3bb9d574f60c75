package domain

// PostRecord is the flat, exportable form of one profile post. Nil fields were
// absent in the source payload and are exported as null, never as a zero value.
type PostRecord struct {
	MediaType         *string  `json:"MediaType"`
	MediaID           *string  `json:"MediaId"`
	ShortCode         *string  `json:"postShortCode"`
	PostURL           *string  `json:"postURL"`
	IsVideo           *bool    `json:"isVideo"`
	HasAudio          *bool    `json:"hasAudio"`
	DisplayURL        *string  `json:"displayURL"`
	Width             *int64   `json:"dimensionWidth"`
	Height            *int64   `json:"dimensionHeight"`
	VideoViewCount    *int64   `json:"videoViewCount"`
	Caption           *string  `json:"postCaption"`
	LikeCount         *int64   `json:"totalLikes"`
	CommentCount      *int64   `json:"totalComments"`
	IsAffiliate       *bool    `json:"isAffiliate"`
	IsPaidPartnership *bool    `json:"isPaidPartnership"`
	CommentsDisabled  *bool    `json:"commentsDisabled"`
	PostDate          *string  `json:"postDate"`
	OwnerUsername     *string  `json:"ownerUsername"`
	OwnerUserID       *string  `json:"ownerUserID"`
	Location          *string  `json:"location"`
	ViewerCanReshare  *bool    `json:"viewerCanReshare"`
	ProductType       *string  `json:"productType"`
	Hashtags          []string `json:"hashtags"`
}

// Owner identifies the profile a page of posts was fetched for.
type Owner struct {
	Username string
}

// PageInfo is the pagination state reported by one fetched page.
type PageInfo struct {
	HasNextPage bool
	EndCursor   string
}
