package post

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/insta-post-exporter/internal/domain"
	"github.com/orgball2608/insta-post-exporter/internal/repositories"
	"github.com/orgball2608/insta-post-exporter/pkg/logger"
	"github.com/orgball2608/insta-post-exporter/pkg/timestamp"
)

const (
	table = "post_records"

	// upsertBatchSize keeps one statement well under the 65535 bind parameter limit.
	upsertBatchSize = 500
)

var upsertColumns = []string{"media_id", "username", "short_code", "post_url", "payload", "taken_at", "fetched_at"}

const onConflict = `ON CONFLICT (media_id) DO UPDATE SET
	username = EXCLUDED.username,
	short_code = EXCLUDED.short_code,
	post_url = EXCLUDED.post_url,
	payload = EXCLUDED.payload,
	taken_at = EXCLUDED.taken_at,
	fetched_at = EXCLUDED.fetched_at`

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
	now    func() time.Time
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("PostRecordRepo"),
		now:    time.Now,
	}
}

var _ Repository = (*Pgx)(nil)

// Upsert writes records in batches. A media id repeated within one call is
// stored once, from its first occurrence.
func (p *Pgx) Upsert(ctx context.Context, username string, records []domain.PostRecord) (int64, error) {
	rows := uniqueByMediaID(records)
	if len(rows) == 0 {
		return 0, nil
	}

	now := p.now().UTC()
	var total int64
	for start := 0; start < len(rows); start += upsertBatchSize {
		end := min(start+upsertBatchSize, len(rows))

		query, args, err := upsertQuery(username, rows[start:end], now)
		if err != nil {
			return total, err
		}

		tag, err := p.pg.Exec(ctx, query, args...)
		if err != nil {
			return total, fmt.Errorf("upsert post records: %w", err)
		}
		total += tag.RowsAffected()
	}

	p.logger.Debug("Stored post records", "username", username, "rows", total)
	return total, nil
}

func (p *Pgx) GetLatestByUsername(ctx context.Context, username string, count int) ([]domain.PostRecord, error) {
	query, args, err := latestQuery(username, count)
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.PostRecord
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var rec domain.PostRecord
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, fmt.Errorf("decode stored post record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (p *Pgx) CleanupOldRecords(ctx context.Context, olderThan time.Duration) (int64, error) {
	query, args, err := cleanupQuery(p.now().Add(-olderThan))
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}

func uniqueByMediaID(records []domain.PostRecord) []domain.PostRecord {
	seen := make(map[string]bool, len(records))
	rows := make([]domain.PostRecord, 0, len(records))
	for _, r := range records {
		if r.MediaID == nil || *r.MediaID == "" || seen[*r.MediaID] {
			continue
		}
		seen[*r.MediaID] = true
		rows = append(rows, r)
	}
	return rows
}

func upsertQuery(username string, records []domain.PostRecord, now time.Time) (string, []any, error) {
	builder := repositories.SqBuilder.
		Insert(table).
		Columns(upsertColumns...)

	for i := range records {
		r := &records[i]
		payload, err := json.Marshal(r)
		if err != nil {
			return "", nil, fmt.Errorf("encode post record %s: %w", *r.MediaID, err)
		}
		builder = builder.Values(
			*r.MediaID,
			usernameKey(username),
			r.ShortCode,
			r.PostURL,
			string(payload),
			timestamp.Normalize(derefString(r.PostDate)),
			now,
		)
	}

	query, args, err := builder.Suffix(onConflict).ToSql()
	if err != nil {
		return "", nil, repositories.ErrBadQuery
	}
	return query, args, nil
}

func latestQuery(username string, count int) (string, []any, error) {
	builder := repositories.SqBuilder.
		Select("payload").
		From(table).
		Where(sq.Eq{"username": usernameKey(username)}).
		OrderBy("taken_at DESC NULLS LAST", "media_id DESC")
	if count > 0 {
		builder = builder.Limit(uint64(count))
	}
	return builder.ToSql()
}

func cleanupQuery(cutoff time.Time) (string, []any, error) {
	return repositories.SqBuilder.
		Delete(table).
		Where(sq.Lt{"fetched_at": cutoff}).
		ToSql()
}

// usernameKey is the stored form of a handle. Handles are case-insensitive.
func usernameKey(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// derefString returns nil for a nil pointer so Normalize sees an absent value.
func derefString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
