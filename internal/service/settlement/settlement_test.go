package settlement

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talx-hub/salon-bonus/internal/model/checkout"
	"github.com/talx-hub/salon-bonus/internal/model/loyalty"
	"github.com/talx-hub/salon-bonus/internal/service/accrual"
	"github.com/talx-hub/salon-bonus/internal/service/catalog"
	"github.com/talx-hub/salon-bonus/internal/service/ledger/ledgertest"
	"github.com/talx-hub/salon-bonus/internal/service/metrics"
	"github.com/talx-hub/salon-bonus/internal/service/redemption"
	"github.com/talx-hub/salon-bonus/internal/serviceerrs"
)

const (
	cid = int64(1)
	bid = int64(10)
)

var (
	key = loyalty.AccountKey{CustomerID: cid, BusinessID: bid}
	// Monday.
	fixedNow = time.Date(2026, 10, 19, 10, 30, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}

type spyNotifier struct {
	mu      sync.Mutex
	results []checkout.Result
}

func (n *spyNotifier) RewardApplied(_ context.Context, _ loyalty.AccountKey, res checkout.Result) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.results = append(n.results, res)
}

func testConfig() Config {
	return Config{
		Location:       time.UTC,
		TaxRate:        dec("0.06125"),
		PointValue:     dec("0.10"),
		Rates:          loyalty.DefaultRates(),
		AcquireTimeout: 50 * time.Millisecond,
		MaxConcurrent:  4,
	}
}

func newEngine(store *ledgertest.Memory, notifier Notifier) *Engine {
	log := slog.Default()
	resolver := catalog.New(store, nil, time.UTC, log)
	redeemer := redemption.New(store, dec("0.10"), nil, log)
	e := New(store, resolver, redeemer, notifier, testConfig(), metrics.New(), log)
	e.now = func() time.Time { return fixedNow }
	return e
}

func appointmentRequest(aid int64) checkout.Request {
	return checkout.Request{
		CustomerID:      cid,
		BusinessID:      bid,
		PaymentMethodID: 3,
		AppointmentID:   ptr(aid),
	}
}

func productRequest() checkout.Request {
	return checkout.Request{
		CustomerID:      cid,
		BusinessID:      bid,
		PaymentMethodID: 3,
		ProductPurchase: true,
	}
}

func addAppointment(store *ledgertest.Memory, aid int64, price, paid string) {
	store.AddAppointment(checkout.AppointmentCharge{
		AppointmentID: aid,
		CustomerID:    cid,
		BusinessID:    bid,
		Price:         dec(price),
		AmountPaid:    dec(paid),
	})
}

func setBalance(store *ledgertest.Memory, points int64) {
	acc := loyalty.NewAccount(key)
	acc.Balance = decimal.NewFromInt(points)
	store.SetAccount(*acc)
}

func TestEngine_Settle_spendThreshold(t *testing.T) {
	store := ledgertest.NewMemory()
	progID := store.AddProgram(loyalty.Program{
		BusinessID: bid,
		Type:       loyalty.AmountSpent,
		Threshold:  dec("100"),
		Reward:     loyalty.PriceCredit{Amount: dec("10")},
	})
	addAppointment(store, 5, "100.00", "0")
	notifier := &spyNotifier{}

	res, err := newEngine(store, notifier).Settle(context.Background(), appointmentRequest(5))
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "100.00", res.OriginalAmount.StringFixed(2))
	assert.Equal(t, "6.13", res.Tax.StringFixed(2))
	assert.Equal(t, "10.00", res.Discount.StringFixed(2))
	assert.Equal(t, "10.00", res.LoyaltyDiscount.StringFixed(2))
	assert.Equal(t, "96.13", res.FinalAmount.StringFixed(2))
	assert.Equal(t, int64(96), res.PointsEarned)
	assert.True(t, decimal.NewFromInt(96).Equal(res.LoyaltyBalance))

	acc, ok := store.Account(key)
	require.True(t, ok)
	assert.True(t, acc.AmountProgress.IsZero())

	require.Len(t, store.Transactions(), 1)
	assert.Equal(t, res.TransactionID, store.Transactions()[0].ID)
	assert.True(t, store.Appointment(5).Paid)

	audits := store.Discounts()
	require.Len(t, audits, 1)
	assert.Equal(t, checkout.SourceProgram, audits[0].Source)
	assert.Equal(t, progID, audits[0].SourceID)
	assert.Equal(t, res.TransactionID, audits[0].TransactionID)

	rev, err := store.MonthlyRevenue(context.Background(), bid, 2026, time.October)
	require.NoError(t, err)
	assert.Equal(t, "96.13", rev.Revenue.StringFixed(2))
	assert.Equal(t, int64(1), rev.Transactions)

	require.Len(t, notifier.results, 1)
}

func TestEngine_Settle_deposit(t *testing.T) {
	store := ledgertest.NewMemory()
	addAppointment(store, 5, "80.00", "20.00")

	res, err := newEngine(store, nil).Settle(context.Background(), appointmentRequest(5))
	require.NoError(t, err)
	assert.Equal(t, "60.00", res.OriginalAmount.StringFixed(2))
	assert.Equal(t, "3.68", res.Tax.StringFixed(2))
	assert.Equal(t, "63.68", res.FinalAmount.StringFixed(2))
}

func TestEngine_Settle_nothingToCharge(t *testing.T) {
	tests := []struct {
		name    string
		seed    func(store *ledgertest.Memory)
		req     checkout.Request
		wantErr error
	}{
		{
			"fully paid by deposit",
			func(store *ledgertest.Memory) { addAppointment(store, 5, "50", "50") },
			appointmentRequest(5),
			serviceerrs.ErrNothingToCharge,
		},
		{
			"already settled",
			func(store *ledgertest.Memory) {
				store.AddAppointment(checkout.AppointmentCharge{
					AppointmentID: 5, CustomerID: cid, BusinessID: bid,
					Price: dec("50"), AmountPaid: dec("50"), Paid: true,
				})
			},
			appointmentRequest(5),
			serviceerrs.ErrNothingToCharge,
		},
		{
			"empty cart",
			func(*ledgertest.Memory) {},
			productRequest(),
			serviceerrs.ErrNothingToCharge,
		},
		{
			"unknown appointment",
			func(*ledgertest.Memory) {},
			appointmentRequest(404),
			serviceerrs.ErrNotFound,
		},
		{
			"appointment of someone else",
			func(store *ledgertest.Memory) {
				store.AddAppointment(checkout.AppointmentCharge{
					AppointmentID: 5, CustomerID: cid + 1, BusinessID: bid, Price: dec("50"),
				})
			},
			appointmentRequest(5),
			serviceerrs.ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := ledgertest.NewMemory()
			tt.seed(store)

			_, err := newEngine(store, nil).Settle(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)

			assert.Empty(t, store.Transactions())
			_, exists := store.Account(key)
			assert.False(t, exists)
			assert.Zero(t, store.Commits())
		})
	}
}

func TestEngine_Settle_validation(t *testing.T) {
	tests := []struct {
		name string
		req  checkout.Request
	}{
		{"negative redeem", func() checkout.Request { r := productRequest(); r.RedeemPoints = -1; return r }()},
		{"no payment method", func() checkout.Request { r := productRequest(); r.PaymentMethodID = 0; return r }()},
		{"appointment without id", checkout.Request{CustomerID: cid, BusinessID: bid, PaymentMethodID: 1}},
		{"no customer", checkout.Request{BusinessID: bid, PaymentMethodID: 1, ProductPurchase: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newEngine(ledgertest.NewMemory(), nil).Settle(context.Background(), tt.req)
			require.ErrorIs(t, err, serviceerrs.ErrValidation)
		})
	}
}

func TestEngine_Settle_cart(t *testing.T) {
	store := ledgertest.NewMemory()
	store.SetStock(100, 10)
	store.SetStock(200, 3)
	store.AddCartLine(key, checkout.CartLine{ProductID: 100, Name: "shampoo", UnitPrice: dec("12.50"), Quantity: 2})
	store.AddCartLine(key, checkout.CartLine{ProductID: 200, Name: "comb", UnitPrice: dec("4.00"), Quantity: 3})

	res, err := newEngine(store, nil).Settle(context.Background(), productRequest())
	require.NoError(t, err)

	// 25.00 + 12.00, tax 2.27
	assert.Equal(t, "37.00", res.OriginalAmount.StringFixed(2))
	assert.Equal(t, "2.27", res.Tax.StringFixed(2))
	assert.Equal(t, "39.27", res.FinalAmount.StringFixed(2))
	assert.Equal(t, int64(39), res.PointsEarned)

	assert.Equal(t, int64(8), store.Stock(100))
	assert.Equal(t, int64(0), store.Stock(200))
	assert.Empty(t, store.Cart(key))
	require.Len(t, store.Purchases(), 2)
	for _, p := range store.Purchases() {
		assert.Equal(t, res.TransactionID, p.TransactionID)
	}
}

func TestEngine_Settle_insufficientStockIsAtomic(t *testing.T) {
	store := ledgertest.NewMemory()
	setBalance(store, 100)
	store.SetStock(100, 10)
	store.SetStock(200, 1)
	store.AddCartLine(key, checkout.CartLine{ProductID: 100, UnitPrice: dec("12.50"), Quantity: 2})
	store.AddCartLine(key, checkout.CartLine{ProductID: 200, UnitPrice: dec("4.00"), Quantity: 3})

	req := productRequest()
	req.RedeemPoints = 50
	_, err := newEngine(store, nil).Settle(context.Background(), req)

	var stockErr *serviceerrs.StockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(200), stockErr.ProductID)
	assert.Equal(t, int64(3), stockErr.Requested)
	assert.Equal(t, int64(1), stockErr.Available)
	require.ErrorIs(t, err, serviceerrs.ErrInsufficientStock)

	assert.Equal(t, int64(10), store.Stock(100))
	assert.Equal(t, int64(1), store.Stock(200))
	assert.Empty(t, store.Transactions())
	assert.Empty(t, store.Purchases())
	assert.Empty(t, store.Redemptions())
	assert.Len(t, store.Cart(key), 2)
	acc, _ := store.Account(key)
	assert.True(t, decimal.NewFromInt(100).Equal(acc.Balance))
}

func TestEngine_Settle_failureAtAnyStepRollsBack(t *testing.T) {
	steps := []string{
		"InsertTransaction",
		"InsertPurchases",
		"SaveAccount",
		"InsertPointEvent",
		"InsertDiscounts",
		"AddMonthlyRevenue",
		"ClearCart",
	}
	for _, step := range steps {
		t.Run(step, func(t *testing.T) {
			store := ledgertest.NewMemory()
			store.SetStock(100, 5)
			store.AddCartLine(key, checkout.CartLine{ProductID: 100, UnitPrice: dec("30"), Quantity: 1})
			store.AddPromotion(loyalty.Promotion{
				BusinessID: bid, Title: "all month", Reward: loyalty.PriceCredit{Amount: dec("1")},
				StartDate: fixedNow.AddDate(0, 0, -1), EndDate: fixedNow.AddDate(0, 0, 1),
			})
			store.FailOn(step, serviceerrs.ErrStorage)

			_, err := newEngine(store, nil).Settle(context.Background(), productRequest())
			require.ErrorIs(t, err, serviceerrs.ErrStorage)

			assert.Equal(t, int64(5), store.Stock(100))
			assert.Empty(t, store.Transactions())
			assert.Empty(t, store.PointEvents())
			assert.Len(t, store.Cart(key), 1)
			_, exists := store.Account(key)
			assert.False(t, exists)
		})
	}
}

func TestEngine_Settle_redeemPoints(t *testing.T) {
	store := ledgertest.NewMemory()
	setBalance(store, 120)
	addAppointment(store, 5, "40.00", "0")
	notifier := &spyNotifier{}

	req := appointmentRequest(5)
	req.RedeemPoints = 50
	res, err := newEngine(store, notifier).Settle(context.Background(), req)
	require.NoError(t, err)

	// tax 2.45, discount 5.00
	assert.Equal(t, "5.00", res.LoyaltyDiscount.StringFixed(2))
	assert.Equal(t, "37.45", res.FinalAmount.StringFixed(2))
	assert.Equal(t, int64(50), res.PointsRedeemed)
	assert.Equal(t, int64(37), res.PointsEarned)
	assert.True(t, decimal.NewFromInt(120-50+37).Equal(res.LoyaltyBalance))

	require.Len(t, store.Redemptions(), 1)
	assert.Equal(t, int64(50), store.Redemptions()[0].Points)
	require.Len(t, notifier.results, 1)
}

func TestEngine_Settle_redeemMoreThanBalance(t *testing.T) {
	store := ledgertest.NewMemory()
	setBalance(store, 10)
	addAppointment(store, 5, "40.00", "0")

	req := appointmentRequest(5)
	req.RedeemPoints = 11
	_, err := newEngine(store, nil).Settle(context.Background(), req)
	require.ErrorIs(t, err, serviceerrs.ErrInsufficientBalance)

	acc, _ := store.Account(key)
	assert.True(t, decimal.NewFromInt(10).Equal(acc.Balance))
	assert.False(t, store.Appointment(5).Paid)
	assert.Empty(t, store.Transactions())
}

func TestEngine_Settle_pointsProgram(t *testing.T) {
	newStore := func() *ledgertest.Memory {
		store := ledgertest.NewMemory()
		store.AddProgram(loyalty.Program{
			BusinessID: bid,
			Type:       loyalty.PointsBalance,
			Threshold:  dec("100"),
			Reward:     loyalty.PriceCredit{Amount: dec("10")},
		})
		setBalance(store, 250)
		addAppointment(store, 5, "50.00", "0")
		return store
	}

	t.Run("completions consume points", func(t *testing.T) {
		store := newStore()
		res, err := newEngine(store, nil).Settle(context.Background(), appointmentRequest(5))
		require.NoError(t, err)

		// tax 3.06, two completions worth 20.00
		assert.Equal(t, "20.00", res.LoyaltyDiscount.StringFixed(2))
		assert.Equal(t, "33.06", res.FinalAmount.StringFixed(2))
		assert.Equal(t, int64(200), res.PointsRedeemed)
		assert.Equal(t, int64(33), res.PointsEarned)
		assert.True(t, decimal.NewFromInt(50+33).Equal(res.LoyaltyBalance))
	})

	t.Run("manual redemption excludes threshold", func(t *testing.T) {
		store := newStore()
		req := appointmentRequest(5)
		req.RedeemPoints = 30
		res, err := newEngine(store, nil).Settle(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, "3.00", res.LoyaltyDiscount.StringFixed(2))
		assert.Equal(t, int64(30), res.PointsRedeemed)
		assert.True(t, decimal.NewFromInt(250-30).Add(decimal.NewFromInt(res.PointsEarned)).
			Equal(res.LoyaltyBalance))
		for _, a := range store.Discounts() {
			assert.NotEqual(t, checkout.SourceProgram, a.Source)
		}
	})
}

func TestEngine_Settle_bonusPointsProgram(t *testing.T) {
	store := ledgertest.NewMemory()
	store.AddProgram(loyalty.Program{
		BusinessID: bid,
		Type:       loyalty.ProductCount,
		Threshold:  dec("5"),
		Reward:     loyalty.BonusPoints{Points: dec("2")},
	})
	store.SetStock(100, 20)
	store.AddCartLine(key, checkout.CartLine{ProductID: 100, UnitPrice: dec("1.00"), Quantity: 12})

	res, err := newEngine(store, nil).Settle(context.Background(), productRequest())
	require.NoError(t, err)

	assert.True(t, res.LoyaltyDiscount.IsZero())
	assert.Equal(t, int64(4), res.PointsEarned)
	acc, _ := store.Account(key)
	assert.True(t, decimal.NewFromInt(2).Equal(acc.ProductProgress))
	assert.True(t, decimal.NewFromInt(4).Equal(acc.Balance))
}

func TestEngine_Settle_countProgramsTrackTheirOwnPurchases(t *testing.T) {
	store := ledgertest.NewMemory()
	store.AddProgram(loyalty.Program{
		BusinessID: bid,
		Type:       loyalty.AppointmentCount,
		Threshold:  dec("5"),
		Reward:     loyalty.FreeAppointment{},
	})
	store.SetStock(100, 20)
	store.AddCartLine(key, checkout.CartLine{ProductID: 100, UnitPrice: dec("10.00"), Quantity: 2})
	addAppointment(store, 5, "30.00", "0")
	e := newEngine(store, nil)

	_, err := e.Settle(context.Background(), productRequest())
	require.NoError(t, err)
	acc, _ := store.Account(key)
	assert.True(t, acc.AppointmentProgress.IsZero())

	_, err = e.Settle(context.Background(), appointmentRequest(5))
	require.NoError(t, err)
	acc, _ = store.Account(key)
	assert.True(t, decimal.NewFromInt(1).Equal(acc.AppointmentProgress))
}

func TestEngine_Settle_freeAppointmentOnFifthVisit(t *testing.T) {
	store := ledgertest.NewMemory()
	store.AddProgram(loyalty.Program{
		BusinessID: bid,
		Type:       loyalty.AppointmentCount,
		Threshold:  dec("5"),
		Reward:     loyalty.FreeAppointment{},
	})
	acc := loyalty.NewAccount(key)
	acc.AppointmentProgress = dec("4")
	store.SetAccount(*acc)
	addAppointment(store, 5, "45.00", "0")

	res, err := newEngine(store, nil).Settle(context.Background(), appointmentRequest(5))
	require.NoError(t, err)

	// the service is free, only tax is left
	assert.Equal(t, "45.00", res.LoyaltyDiscount.StringFixed(2))
	assert.Equal(t, "2.76", res.FinalAmount.StringFixed(2))
}

func TestEngine_Settle_promotions(t *testing.T) {
	store := ledgertest.NewMemory()
	window := func(p loyalty.Promotion) loyalty.Promotion {
		p.BusinessID = bid
		p.Title = "promo"
		p.StartDate = time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		p.EndDate = time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC)
		return p
	}
	percentID := store.AddPromotion(window(loyalty.Promotion{
		Reward: loyalty.PercentDiscount{Rate: dec("10")},
	}))
	store.AddPromotion(window(loyalty.Promotion{
		Reward: loyalty.FreeAppointment{},
	}))
	store.AddPromotion(window(loyalty.Promotion{
		Reward:    loyalty.PriceCredit{Amount: dec("100")},
		Recurring: true, RecurDays: []time.Weekday{time.Sunday},
	}))
	store.SetStock(100, 5)
	store.AddCartLine(key, checkout.CartLine{ProductID: 100, UnitPrice: dec("25.00"), Quantity: 2})

	res, err := newEngine(store, nil).Settle(context.Background(), productRequest())
	require.NoError(t, err)

	// 50.00 + tax 3.06 - 10% of 50.00
	assert.Equal(t, "5.00", res.Discount.StringFixed(2))
	assert.True(t, res.LoyaltyDiscount.IsZero())
	assert.Equal(t, "48.06", res.FinalAmount.StringFixed(2))

	audits := store.Discounts()
	require.Len(t, audits, 1)
	assert.Equal(t, checkout.SourcePromotion, audits[0].Source)
	assert.Equal(t, percentID, audits[0].SourceID)
}

func TestEngine_Settle_finalAmountNeverNegative(t *testing.T) {
	store := ledgertest.NewMemory()
	store.AddPromotion(loyalty.Promotion{
		BusinessID: bid, Title: "big credit",
		Reward:    loyalty.PriceCredit{Amount: dec("500")},
		StartDate: fixedNow, EndDate: fixedNow,
	})
	addAppointment(store, 5, "20.00", "0")

	res, err := newEngine(store, nil).Settle(context.Background(), appointmentRequest(5))
	require.NoError(t, err)
	assert.True(t, res.FinalAmount.IsZero())
	assert.Equal(t, "500.00", res.Discount.StringFixed(2))
	assert.Zero(t, res.PointsEarned)
	assert.True(t, store.Appointment(5).Paid)
}

func TestEngine_Settle_recordsAppointmentEvent(t *testing.T) {
	store := ledgertest.NewMemory()
	addAppointment(store, 5, "40.00", "0")

	res, err := newEngine(store, nil).Settle(context.Background(), appointmentRequest(5))
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.PointsEarned)

	events := store.PointEvents()
	require.Len(t, events, 1)
	require.NotNil(t, events[0].AppointmentID)
	assert.Equal(t, int64(5), *events[0].AppointmentID)
	assert.Equal(t, loyalty.SourceCheckout, events[0].Source)
}

func TestEngine_Settle_accruedAppointmentEarnsNoBasePointsTwice(t *testing.T) {
	store := ledgertest.NewMemory()
	addAppointment(store, 5, "40.00", "0")
	log := slog.Default()

	awarded, err := accrual.New(store, catalog.New(store, nil, time.UTC, log),
		loyalty.DefaultRates(), nil, log).
		Award(context.Background(), accrual.Request{
			AccountKey:    key,
			AppointmentID: ptr[int64](5),
			ChargedAmount: ptr(dec("40.00")),
		})
	require.NoError(t, err)
	require.True(t, awarded.Awarded)

	res, err := newEngine(store, nil).Settle(context.Background(), appointmentRequest(5))
	require.NoError(t, err)
	assert.Zero(t, res.PointsEarned)
	assert.True(t, decimal.NewFromInt(40).Equal(res.LoyaltyBalance))
	assert.Len(t, store.PointEvents(), 1)
}

func TestEngine_Settle_accruedAppointmentCountsOnce(t *testing.T) {
	store := ledgertest.NewMemory()
	store.AddProgram(loyalty.Program{
		BusinessID: bid,
		Type:       loyalty.AppointmentCount,
		Threshold:  dec("2"),
		Reward:     loyalty.PriceCredit{Amount: dec("10")},
	})
	addAppointment(store, 5, "40.00", "0")
	addAppointment(store, 6, "40.00", "0")
	log := slog.Default()

	_, err := accrual.New(store, catalog.New(store, nil, time.UTC, log),
		loyalty.DefaultRates(), nil, log).
		Award(context.Background(), accrual.Request{
			AccountKey:    key,
			AppointmentID: ptr[int64](5),
		})
	require.NoError(t, err)

	e := newEngine(store, nil)
	res, err := e.Settle(context.Background(), appointmentRequest(5))
	require.NoError(t, err)
	assert.True(t, res.LoyaltyDiscount.IsZero(), "discount %s", res.LoyaltyDiscount)
	acc, ok := store.Account(key)
	require.True(t, ok)
	assert.Equal(t, "1", acc.AppointmentProgress.String())

	// the next visit completes the threshold
	res, err = e.Settle(context.Background(), appointmentRequest(6))
	require.NoError(t, err)
	assert.Equal(t, "10.00", res.LoyaltyDiscount.StringFixed(2))
	acc, ok = store.Account(key)
	require.True(t, ok)
	assert.True(t, acc.AppointmentProgress.IsZero())
}

func TestEngine_Settle_admissionTimeout(t *testing.T) {
	store := ledgertest.NewMemory()
	addAppointment(store, 5, "40.00", "0")

	release := make(chan struct{})
	entered := make(chan struct{})
	blocking := &blockingCatalog{
		Catalog: catalog.New(store, nil, time.UTC, slog.Default()),
		entered: entered,
		release: release,
	}
	cfg := testConfig()
	cfg.MaxConcurrent = 1
	cfg.AcquireTimeout = 10 * time.Millisecond
	e := New(store, blocking, redemption.New(store, dec("0.10"), nil, slog.Default()),
		nil, cfg, nil, slog.Default())

	done := make(chan error, 1)
	go func() {
		_, err := e.Settle(context.Background(), appointmentRequest(5))
		done <- err
	}()
	<-entered

	_, err := e.Settle(context.Background(), appointmentRequest(5))
	require.ErrorIs(t, err, serviceerrs.ErrContended)
	var contended *serviceerrs.ContendedError
	require.ErrorAs(t, err, &contended)
	assert.Equal(t, cfg.AcquireTimeout, contended.RetryAfter)

	close(release)
	require.NoError(t, <-done)
}

func TestEngine_Settle_cancelledWhileQueued(t *testing.T) {
	store := ledgertest.NewMemory()
	addAppointment(store, 5, "40.00", "0")

	release := make(chan struct{})
	entered := make(chan struct{})
	blocking := &blockingCatalog{
		Catalog: catalog.New(store, nil, time.UTC, slog.Default()),
		entered: entered,
		release: release,
	}
	cfg := testConfig()
	cfg.MaxConcurrent = 1
	cfg.AcquireTimeout = time.Minute
	e := New(store, blocking, redemption.New(store, dec("0.10"), nil, slog.Default()),
		nil, cfg, nil, slog.Default())

	done := make(chan error, 1)
	go func() {
		_, err := e.Settle(context.Background(), appointmentRequest(5))
		done <- err
	}()
	<-entered

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Settle(ctx, appointmentRequest(5))
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, serviceerrs.ErrContended)

	close(release)
	require.NoError(t, <-done)
}

type blockingCatalog struct {
	Catalog
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (c *blockingCatalog) ActiveProgram(ctx context.Context, bid int64) (*loyalty.Program, error) {
	c.once.Do(func() {
		close(c.entered)
		<-c.release
	})
	return c.Catalog.ActiveProgram(ctx, bid)
}

func TestTotals_conservation(t *testing.T) {
	tests := []struct {
		original string
		discount string
		wantTax  string
		want     string
	}{
		{"100.00", "10.00", "6.13", "96.13"},
		{"0.01", "0", "0.00", "0.01"},
		{"19.99", "1.005", "1.22", "20.20"},
		{"10.00", "25.00", "0.61", "0.00"},
		{"33.33", "3.333", "2.04", "32.04"},
	}
	rate := dec("0.06125")
	for _, tt := range tests {
		t.Run(tt.original+"-"+tt.discount, func(t *testing.T) {
			original := dec(tt.original)
			tax, totalDiscount, final := totals(original, dec(tt.discount), rate)

			assert.Equal(t, tt.wantTax, tax.StringFixed(2))
			assert.Equal(t, tt.want, final.StringFixed(2))
			want := decimal.Max(decimal.Zero, original.Add(tax).Sub(totalDiscount).Round(2))
			assert.True(t, want.Equal(final))
		})
	}
}
