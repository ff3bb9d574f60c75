package post

import (
	"context"
	"time"

	"github.com/orgball2608/insta-post-exporter/internal/domain"
)

// Nop is used when no postgres store is configured.
type Nop struct{}

var _ Repository = Nop{}

func (Nop) Upsert(context.Context, string, []domain.PostRecord) (int64, error) {
	return 0, nil
}

func (Nop) GetLatestByUsername(context.Context, string, int) ([]domain.PostRecord, error) {
	return nil, nil
}

func (Nop) CleanupOldRecords(context.Context, time.Duration) (int64, error) {
	return 0, nil
}
