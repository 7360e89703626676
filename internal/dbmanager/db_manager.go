package dbmanager

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // pgx5:// driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talx-hub/salon-bonus/internal/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

var errNotConnected = errors.New("DB is not connected")

type DBManager struct {
	log         *slog.Logger
	pool        *pgxpool.Pool
	err         error
	dsn         string
	isConnected bool
}

func New(dsn string, log *slog.Logger) *DBManager {
	return &DBManager{
		log:         log,
		pool:        nil,
		isConnected: false,
		dsn:         dsn,
	}
}

// Error returns the first failure of the Connect/Ping/ApplyMigrations chain.
func (m *DBManager) Error() error {
	return m.err
}

func (m *DBManager) fail(ctx context.Context, msg string, err error) {
	m.log.LogAttrs(ctx,
		slog.LevelError,
		msg,
		slog.Any(model.KeyLoggerError, err),
	)
	if m.err == nil {
		m.err = fmt.Errorf("%s: %w", msg, err)
	}
}

func (m *DBManager) Connect(ctx context.Context) *DBManager {
	if m.err != nil {
		return m
	}

	cfg, err := pgxpool.ParseConfig(m.dsn)
	if err != nil {
		m.fail(ctx, "failed to parse DSN", err)
		return m
	}
	cfg.MinConns = 1
	cfg.MaxConns = 10
	cfg.ConnConfig.Tracer = &queryTracer{m.log}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		m.fail(ctx, "failed to init pgxpool", err)
		return m
	}

	m.pool = pool
	return m
}

func (m *DBManager) Ping(ctx context.Context) *DBManager {
	if m.err != nil {
		return m
	}
	if m.pool == nil {
		m.fail(ctx, "failed to ping the DB", errNotConnected)
		return m
	}
	if err := m.pool.Ping(ctx); err != nil {
		m.isConnected = false
		m.fail(ctx, "failed to ping the DB", err)
		return m
	}

	m.isConnected = true
	return m
}

func (m *DBManager) ApplyMigrations(ctx context.Context) *DBManager {
	if m.err != nil {
		return m
	}

	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		m.fail(ctx, "failed to open migrations", err)
		return m
	}
	mg, err := migrate.NewWithSourceInstance("iofs", src, migrationDSN(m.dsn))
	if err != nil {
		m.fail(ctx, "failed to init migrations", err)
		return m
	}
	defer func() {
		if srcErr, dbErr := mg.Close(); srcErr != nil || dbErr != nil {
			m.log.LogAttrs(ctx,
				slog.LevelWarn,
				"failed to close migrator",
				slog.Any(model.KeyLoggerError, errors.Join(srcErr, dbErr)),
			)
		}
	}()

	if err = mg.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		m.fail(ctx, "failed to apply migrations", err)
		return m
	}

	m.log.LogAttrs(ctx, slog.LevelInfo, "migrations applied")
	return m
}

// migrationDSN points the migrator at its pgx/v5 driver.
func migrationDSN(dsn string) string {
	for _, scheme := range []string{"postgresql://", "postgres://"} {
		if rest, ok := strings.CutPrefix(dsn, scheme); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

func (m *DBManager) GetPool(ctx context.Context) (*pgxpool.Pool, error) {
	if m.err != nil {
		return nil, m.err
	}
	if !m.isConnected {
		m.Ping(ctx)
	}
	if m.pool == nil || !m.isConnected {
		return nil, errNotConnected
	}
	return m.pool, nil
}

func (m *DBManager) Close() {
	if m.pool == nil {
		return
	}

	m.pool.Close()
	m.log.LogAttrs(context.TODO(),
		slog.LevelInfo,
		"connection to DB closed",
	)
}
