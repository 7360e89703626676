package repo

import (
	"context"
	"log/slog"
	"time"

	"github.com/talx-hub/salon-bonus/internal/repo/internal/db"
	"github.com/talx-hub/salon-bonus/internal/service/ledger"
)

// Store is the PostgreSQL ledger. Row locks are taken with SELECT ... FOR
// UPDATE and a wait longer than lockTimeout fails with
// serviceerrs.ErrContended.
type Store struct {
	DB
	lockTimeout time.Duration
}

var _ ledger.Store = (*Store)(nil)

func NewStore(pool connectionPool, lockTimeout time.Duration, log *slog.Logger) *Store {
	return &Store{
		DB: DB{
			pool: pool,
			log:  log,
		},
		lockTimeout: lockTimeout,
	}
}

func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, tx ledger.Tx) error) error {
	unit := func(ctx context.Context, tx connectionPool) (any, error) {
		if err := setLockTimeout(ctx, tx, s.lockTimeout); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, fn(ctx, &ledgerTx{q: db.New(tx)})
	}

	_, err := WithTX[struct{}](ctx, s.pool, s.log, unit)
	return err
}
