package post

import (
	"context"

	"github.com/orgball2608/insta-post-exporter/internal/migrations"
	"github.com/orgball2608/insta-post-exporter/pkg/config"
	"github.com/orgball2608/insta-post-exporter/pkg/logger"
	"github.com/orgball2608/insta-post-exporter/pkg/pgx"
	"go.uber.org/fx"
)

var Module = fx.Module("post_repository",
	fx.Provide(NewRepository),
)

type Opts struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Logger logger.Logger
}

// NewRepository returns the postgres repository when a store is configured,
// migrating the schema on start, and Nop otherwise.
func NewRepository(opts Opts) (Repository, error) {
	if !opts.Config.StoreEnabled() {
		opts.Logger.Debug("Postgres host not configured, post records will not be stored")
		return Nop{}, nil
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return migrations.Up(ctx, opts.Config.GetDSN())
		},
	})

	pool, err := pgx.New(pgx.Opts{
		LC:     opts.LC,
		Logger: opts.Logger,
		Config: opts.Config,
	})
	if err != nil {
		return nil, err
	}

	return NewPgx(pool, opts.Logger), nil
}
