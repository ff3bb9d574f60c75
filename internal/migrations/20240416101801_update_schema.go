package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upUpdateSchema, downUpdateSchema)
}

func upUpdateSchema(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS post_records_username_taken_at_idx ON post_records (username, taken_at DESC);
		CREATE INDEX IF NOT EXISTS post_records_fetched_at_idx ON post_records (fetched_at);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downUpdateSchema(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		DROP INDEX IF EXISTS post_records_fetched_at_idx;
		DROP INDEX IF EXISTS post_records_username_taken_at_idx;
	`)
	if err != nil {
		return err
	}
	return nil
}
