package testing

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// GetPostgresPoolAndCtx connects to the postgres used by integration tests (POSTGRES_HOST,
// POSTGRES_PORT, POSTGRES_PASSWORD) and points the pool at a fresh schema, dropped on cleanup.
func GetPostgresPoolAndCtx(t *testing.T) (context.Context, *pgxpool.Pool) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("POSTGRES_PORT")
	if port == "" {
		port = "5432"
	}
	password := os.Getenv("POSTGRES_PASSWORD")
	if password == "" {
		password = "postgres"
	}

	schemaName := "t_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	baseURL := fmt.Sprintf(
		"postgres://postgres:%s@%s:%s/postgres?sslmode=disable",
		url.QueryEscape(password), host, port,
	)
	t.Logf("using postgres [%s:%s], schema [%s]", host, port, schemaName)

	admin, err := pgxpool.New(ctx, baseURL)
	require.NoError(t, err)
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+schemaName)
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, baseURL+"&search_path="+schemaName)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
		if _, err := admin.Exec(context.Background(), "DROP SCHEMA "+schemaName+" CASCADE"); err != nil {
			t.Logf("drop schema %s: %s", schemaName, err)
		}
		admin.Close()
	})

	return ctx, pool
}
