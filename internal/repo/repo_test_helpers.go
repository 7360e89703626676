package repo

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/talx-hub/salon-bonus/internal/dbmanager"
	"github.com/talx-hub/salon-bonus/internal/utils/pgcontainer"
)

const testDefaultTimeout = 5 * time.Second

var (
	getDSN       func() string
	getDBManager func() *dbmanager.DBManager
)

func runMain(m *testing.M, log *slog.Logger) (int, error) {
	pg := pgcontainer.New(log)
	getDSN = func() string {
		return pg.GetDSN()
	}
	err := pg.RunContainer()
	defer pg.Close()
	if err != nil {
		return 1, fmt.Errorf("failed to run docker container: %w", err)
	}

	if err = initGetDBManager(log); err != nil {
		return 1, fmt.Errorf("failed to init test DB: %w", err)
	}

	db := getDBManager()
	defer db.Close()

	exitCode := m.Run()
	return exitCode, nil
}

func initGetDBManager(log *slog.Logger) error {
	dsn := getDSN()
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

// loadFixtures applies every statement of the given files in one
// transaction so a broken fixture leaves the database untouched.
func loadFixtures(ctx context.Context, pool *pgxpool.Pool, paths ...string) error {
	var statements []string
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read fixture file %s: %w", path, err)
		}
		for _, raw := range strings.Split(string(content), ";") {
			if stmt := strings.TrimSpace(raw); stmt != "" {
				statements = append(statements, stmt)
			}
		}
	}

	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for _, stmt := range statements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("failed to execute query [%s]: %w", stmt, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}
	return nil
}

func newTestStore(pool connectionPool, log *slog.Logger) *Store {
	return NewStore(pool, time.Second, log)
}

func setupRepo[T any](t *testing.T,
	repoConstructor func(pool connectionPool, log *slog.Logger) T,
) (T, context.Context, context.CancelFunc, *pgxpool.Pool) {
	t.Helper()

	db := getDBManager()
	pool, err := db.GetPool(context.Background())
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), testDefaultTimeout)
	require.NoError(t, loadFixtures(ctx, pool, "./fixtures/ledger.sql"))
	return repoConstructor(pool, slog.Default()), ctx, cancel, pool
}
