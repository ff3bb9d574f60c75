package instagram

import (
	"context"

	"github.com/orgball2608/insta-post-exporter/internal/domain"
)

// RawResponse is a successful page response as received from the remote host.
type RawResponse struct {
	Username    string
	StatusCode  int
	ContentType string
	Body        []byte
}

//go:generate go run go.uber.org/mock/mockgen -source=instagram.go -destination=mocks/mock.go

// PageFetcher issues one GET per profile page. An empty cursor requests the first page.
type PageFetcher interface {
	FetchPage(ctx context.Context, username, cursor string) (*RawResponse, error)
}

// Client fetches every post of a public profile, following pagination until
// the remote source is exhausted or maxPosts records were collected.
// maxPosts 0 means no cap.
type Client interface {
	FetchPosts(ctx context.Context, username string, maxPosts int) ([]domain.PostRecord, error)
}
