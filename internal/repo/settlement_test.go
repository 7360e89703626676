package repo

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talx-hub/salon-bonus/internal/model/checkout"
	"github.com/talx-hub/salon-bonus/internal/model/loyalty"
	"github.com/talx-hub/salon-bonus/internal/service/catalog"
	"github.com/talx-hub/salon-bonus/internal/service/redemption"
	"github.com/talx-hub/salon-bonus/internal/service/settlement"
	"github.com/talx-hub/salon-bonus/internal/serviceerrs"
)

func newTestSettlement(store *Store) *settlement.Engine {
	log := slog.Default()
	return settlement.New(
		store,
		catalog.New(store, nil, time.UTC, log),
		redemption.New(store, dec("0.10"), nil, log),
		nil,
		settlement.Config{
			Location:       time.UTC,
			TaxRate:        dec("0.06125"),
			PointValue:     dec("0.10"),
			Rates:          loyalty.DefaultRates(),
			AcquireTimeout: testDefaultTimeout,
			MaxConcurrent:  8,
		},
		nil,
		log,
	)
}

func countTransactions(ctx context.Context, t *testing.T, pool *pgxpool.Pool, cid int64) int64 {
	t.Helper()
	var n int64
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT count(*) FROM transactions WHERE id_customer = $1`, cid).Scan(&n))
	return n
}

func productStock(ctx context.Context, t *testing.T, pool *pgxpool.Pool, pid int64) int64 {
	t.Helper()
	var n int64
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT stock FROM products WHERE id = $1`, pid).Scan(&n))
	return n
}

func TestSettlement_concurrentCartCheckoutChargesOnce(t *testing.T) {
	_, ctx, cancel, pool := setupRepo(t, newTestStore)
	defer cancel()
	store := NewStore(pool, testDefaultTimeout, slog.Default())
	e := newTestSettlement(store)

	const (
		cid     = int64(5)
		bid     = int64(2)
		product = int64(3)
		buyers  = 4
	)
	_, err := pool.Exec(ctx,
		`INSERT INTO customers (id, name, email) VALUES ($1, 'Eve', 'eve@example.com')
		 ON CONFLICT DO NOTHING`, cid)
	require.NoError(t, err)
	_, err = pool.Exec(ctx,
		`INSERT INTO cart_items (id_customer, id_product, quantity) VALUES ($1, $2, 1)
		 ON CONFLICT DO NOTHING`, cid, product)
	require.NoError(t, err)

	stockBefore := productStock(ctx, t, pool, product)
	txnsBefore := countTransactions(ctx, t, pool, cid)

	var (
		wg   sync.WaitGroup
		errs = make(chan error, buyers)
	)
	start := make(chan struct{})
	for range buyers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := e.Settle(ctx, checkout.Request{
				CustomerID:      cid,
				BusinessID:      bid,
				PaymentMethodID: 1,
				ProductPurchase: true,
			})
			errs <- err
		}()
	}
	close(start)
	wg.Wait()
	close(errs)

	var settled int
	for err := range errs {
		if err == nil {
			settled++
			continue
		}
		assert.ErrorIs(t, err, serviceerrs.ErrNothingToCharge)
	}
	assert.Equal(t, 1, settled)
	assert.Equal(t, stockBefore-1, productStock(ctx, t, pool, product))
	assert.Equal(t, txnsBefore+1, countTransactions(ctx, t, pool, cid))
}
