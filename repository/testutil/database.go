package testutil

import (
	"context"
	"testing"
	"time"

	"lotobot/database"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	postgresImage    = "postgres:16-alpine"
	terminateTimeout = 30 * time.Second
)

// TestDatabase is a migrated loto schema in a throwaway postgres container
type TestDatabase struct {
	Container *postgres.PostgresContainer
	DB        *database.DB
	URL       string
}

// SetupTestDatabase starts postgres, applies the loto migrations and returns a
// pooled connection. The container is removed when the test finishes. Skipped under -short.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres-backed test in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase("loto"),
		postgres.WithUsername("loto"),
		postgres.WithPassword("loto"),
		postgres.BasicWaitStrategies(),
		testcontainers.WithLabels(map[string]string{
			"app":        "lotobot",
			"suite":      "repository",
			"test":       t.Name(),
			"started-at": time.Now().UTC().Format(time.RFC3339),
		}),
	)
	require.NoError(t, err, "start postgres container")

	tdb := &TestDatabase{Container: container}
	t.Cleanup(func() { tdb.teardown(t) })

	tdb.URL, err = container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.RunMigrationsWithURL(tdb.URL), "apply loto migrations")

	tdb.DB, err = database.NewConnection(ctx, tdb.URL)
	require.NoError(t, err)
	return tdb
}

func (td *TestDatabase) teardown(t *testing.T) {
	if td.DB != nil {
		td.DB.Close()
	}
	if td.Container == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), terminateTimeout)
	defer cancel()
	if err := td.Container.Terminate(ctx); err != nil {
		t.Logf("terminate postgres container: %v", err)
	}
}
