package integration

import (
	"context"
	"testing"
	"time"

	"trimmers-api/internal/database"
	"trimmers-api/internal/repository"
	"trimmers-api/internal/repository/mongostore"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Backend is a store under test together with a way to empty it.
type Backend struct {
	Name  string
	Store repository.Store
	Reset func(t *testing.T)
}

// SetupBackends starts one container per supported store. Both are torn down
// when the test ends.
func SetupBackends(t *testing.T) []Backend {
	t.Helper()
	return []Backend{SetupPostgres(t), SetupMongo(t)}
}

// SetupPostgres creates a PostgreSQL test container with the schema migrated.
func SetupPostgres(t *testing.T) Backend {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	logger := zerolog.Nop()
	if err := database.Migrate(connStr, logger); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	pool, err := database.NewPoolFromURL(ctx, connStr, database.PoolOptions{MaxConns: 10, MinConns: 2}, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return Backend{
		Name:  "postgres",
		Store: repository.NewStore(pool, logger),
		Reset: func(t *testing.T) { cleanupPostgres(t, pool) },
	}
}

// SetupMongo creates a MongoDB test container with the indexes in place.
func SetupMongo(t *testing.T) Backend {
	t.Helper()

	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("failed to start mongo container: %v", err)
	}

	uri, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("failed to connect to mongo: %v", err)
	}

	db := client.Database("testdb")
	require.NoError(t, mongostore.EnsureIndexes(ctx, db))

	t.Cleanup(func() {
		_ = client.Disconnect(ctx)
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return Backend{
		Name:  "mongo",
		Store: mongostore.New(db, zerolog.Nop()),
		Reset: func(t *testing.T) { cleanupMongo(t, db) },
	}
}

// cleanupPostgres removes all rows, children first.
func cleanupPostgres(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		"TRUNCATE order_items, orders, reviews, products, users CASCADE")
	if err != nil {
		t.Fatalf("failed to clean tables: %v", err)
	}
}

// cleanupMongo empties every collection but keeps the indexes.
func cleanupMongo(t *testing.T, db *mongo.Database) {
	t.Helper()

	ctx := context.Background()
	for _, name := range []string{"orders", "reviews", "products", "users"} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.D{}); err != nil {
			t.Fatalf("failed to clean collection %s: %v", name, err)
		}
	}
}
