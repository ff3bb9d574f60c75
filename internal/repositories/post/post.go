package post

import (
	"context"
	"time"

	"github.com/orgball2608/insta-post-exporter/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=post.go -destination=mocks/mock.go
type Repository interface {
	// Upsert stores records fetched for username, replacing earlier copies with
	// the same media id. Records without a media id are skipped.
	Upsert(ctx context.Context, username string, records []domain.PostRecord) (int64, error)

	// GetLatestByUsername returns up to count stored records, newest post first
	GetLatestByUsername(ctx context.Context, username string, count int) ([]domain.PostRecord, error)

	// CleanupOldRecords deletes records fetched longer ago than olderThan
	CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error)
}
