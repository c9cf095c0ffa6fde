package repo

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/talx-hub/gopher-graph/internal/dbmanager"
	"github.com/talx-hub/gopher-graph/internal/utils/pgcontainer"
)

const testDefaultTimeout = 5 * time.Second

var (
	getDBManager func() *dbmanager.DBManager
	skipReason   string
)

func runMain(m *testing.M, log *slog.Logger) (int, error) {
	pg := pgcontainer.New(log)
	if err := pg.RunContainer(); err != nil {
		// No docker on this machine: unit tests still run, the
		// integration tests skip themselves.
		skipReason = fmt.Sprintf("postgres container unavailable: %v", err)
		return m.Run(), nil
	}
	defer pg.Close()

	if err := initGetDBManager(pg.GetDSN(), log); err != nil {
		return 1, fmt.Errorf("failed to init test DB: %w", err)
	}
	defer getDBManager().Close()

	return m.Run(), nil
}

func initGetDBManager(dsn string, log *slog.Logger) error {
	db := dbmanager.New(dsn, log)

	ctx, cancel := context.WithTimeout(context.Background(), testDefaultTimeout)
	defer cancel()

	db.Connect(ctx).Ping(ctx).ApplyMigrations(ctx)
	if err := db.Error(); err != nil {
		return fmt.Errorf("failed to prepare test DB using dsn %s: %w", dsn, err)
	}

	getDBManager = func() *dbmanager.DBManager {
		return db
	}
	return nil
}

func setupRepo[T any](t *testing.T,
	repoConstructor func(pool connectionPool, log *slog.Logger) T,
) (T, context.Context, context.CancelFunc, *pgxpool.Pool) {
	t.Helper()

	if skipReason != "" {
		t.Skip(skipReason)
	}

	db := getDBManager()
	pool, err := db.GetPool(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), testDefaultTimeout)
	_, err = pool.Exec(ctx, `TRUNCATE posts, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return repoConstructor(pool, slog.Default()), ctx, cancel, pool
}

func insertTestUser(t *testing.T, ctx context.Context, pool *pgxpool.Pool,
	name, email string,
) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password, role)
		 VALUES ($1, $2, 'hash', 'user')
		 RETURNING id`,
		name, email).Scan(&id)
	require.NoError(t, err)
	return id
}
