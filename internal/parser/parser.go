package parser

import (
	"context"

	"github.com/orgball2608/insta-post-exporter/internal/domain"
	"github.com/orgball2608/insta-post-exporter/pkg/errors"
)

// ErrRateLimited is reported for a profile parsed again before Parser.MinInterval elapsed.
var ErrRateLimited = errors.New("profile was parsed too recently, try again later")

//go:generate go run go.uber.org/mock/mockgen -source=parser.go -destination=mocks/mock.go
type Client interface {
	// ParseProfiles fetches, exports and stores every target. A failing profile
	// never stops the others; its error is reported in its result.
	ParseProfiles(ctx context.Context, targets []domain.ProfileTarget) []domain.ProfileResult
	ScheduleParsing(ctx context.Context) error
	ScheduleDatabaseCleanup(ctx context.Context) error
}
