package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upInit, downInit)
}

func upInit(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS post_records (
		media_id   VARCHAR PRIMARY KEY,
		username   VARCHAR NOT NULL,
		short_code VARCHAR,
		post_url   VARCHAR,
		payload    JSONB NOT NULL,
		taken_at   TIMESTAMP WITH TIME ZONE,
		fetched_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
	);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downInit(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	DROP TABLE IF EXISTS post_records;
	`)
	if err != nil {
		return err
	}
	return nil
}
