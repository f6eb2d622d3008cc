// Package bootstrap opens the backends selected by configuration.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"trimmers-api/internal/config"
	"trimmers-api/internal/database"
	"trimmers-api/internal/repository"
	"trimmers-api/internal/repository/mongostore"
	"trimmers-api/internal/upload"

	"github.com/rs/zerolog"
)

// OpenStore connects the configured backend and returns its repositories
// along with a function releasing the connection.
func OpenStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.Store, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMongo:
		client, err := database.NewMongoClient(ctx, cfg.Mongo, logger)
		if err != nil {
			return repository.Store{}, nil, fmt.Errorf("failed to initialize mongo: %w", err)
		}
		closeFn := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(disconnectCtx); err != nil {
				logger.Error().Err(err).Msg("failed to disconnect mongo client")
			}
		}

		db := client.Database(cfg.Mongo.Database)
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			closeFn()
			return repository.Store{}, nil, fmt.Errorf("failed to ensure mongo indexes: %w", err)
		}
		return mongostore.New(db, logger), closeFn, nil

	case config.StoreDriverPostgres:
		if cfg.Store.AutoMigrate {
			if err := database.Migrate(cfg.Database.ConnectionString(), logger); err != nil {
				return repository.Store{}, nil, fmt.Errorf("failed to run migrations: %w", err)
			}
		}

		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return repository.Store{}, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repository.NewStore(pool, logger), pool.Close, nil

	default:
		return repository.Store{}, nil, fmt.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
}

// OpenSink returns the image sink and, for local storage, the directory to serve.
func OpenSink(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (upload.Sink, string, error) {
	switch cfg.Upload.Driver {
	case config.UploadDriverS3:
		sink, err := upload.NewS3Sink(ctx, cfg.S3, logger)
		if err != nil {
			return nil, "", fmt.Errorf("failed to initialize S3 sink: %w", err)
		}
		return sink, "", nil

	case config.UploadDriverLocal:
		sink, err := upload.NewLocalSink(cfg.Upload.Dir)
		if err != nil {
			return nil, "", fmt.Errorf("failed to initialize upload directory: %w", err)
		}
		return sink, sink.Dir(), nil

	default:
		return nil, "", fmt.Errorf("unknown upload driver: %s", cfg.Upload.Driver)
	}
}
