package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/talx-hub/salon-bonus/internal/api/handlers/mocks"
	"github.com/talx-hub/salon-bonus/internal/model"
	"github.com/talx-hub/salon-bonus/internal/model/checkout"
	"github.com/talx-hub/salon-bonus/internal/model/loyalty"
	"github.com/talx-hub/salon-bonus/internal/service/accrual"
	"github.com/talx-hub/salon-bonus/internal/service/redemption"
	"github.com/talx-hub/salon-bonus/internal/serviceerrs"
)

const noCustomer = 0

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newRequest(method, target, body string, cid int64, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := req.Context()
	if cid != noCustomer {
		ctx = context.WithValue(ctx, model.KeyContextCustomerID, cid)
	}
	if len(params) != 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func serve(t *testing.T, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestLoyaltyHandler_Earn(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		cid      int64
		awardErr error
		wantCall bool
		wantCode int
	}{
		{
			name:     "visit accrual",
			body:     `{"bid":1,"appointment_id":7}`,
			cid:      1,
			wantCall: true,
			wantCode: http.StatusOK,
		},
		{
			name:     "amount and points in the body are ignored",
			body:     `{"bid":1,"appointment_id":7,"charged_amount":5000,"points":1000}`,
			cid:      1,
			wantCall: true,
			wantCode: http.StatusOK,
		},
		{
			name:     "no customer in context",
			body:     `{"bid":1,"appointment_id":7}`,
			cid:      noCustomer,
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "decoding error",
			body:     `{"bid":"one"}`,
			cid:      1,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "no appointment",
			body:     `{"bid":1}`,
			cid:      1,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "appointment of another customer",
			body:     `{"bid":1,"appointment_id":8}`,
			cid:      1,
			awardErr: serviceerrs.ErrNotFound,
			wantCall: true,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "storage failure",
			body:     `{"bid":1,"appointment_id":7}`,
			cid:      1,
			awardErr: serviceerrs.ErrStorage,
			wantCall: true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accruer := mocks.NewMockAccruer(t)
			if tt.wantCall {
				accruer.EXPECT().
					Award(mock.Anything, mock.Anything).
					RunAndReturn(func(_ context.Context, req accrual.Request) (accrual.Result, error) {
						assert.Equal(t, tt.cid, req.CustomerID)
						assert.Equal(t, loyalty.SourceVisit, req.Source)
						require.NotNil(t, req.AppointmentID)
						assert.Nil(t, req.ChargedAmount)
						assert.Nil(t, req.ExplicitPoints)
						if tt.awardErr != nil {
							return accrual.Result{}, tt.awardErr
						}
						return accrual.Result{Balance: dec("42"), Points: 42, Awarded: true}, nil
					})
			}
			h := NewLoyaltyHandler(accruer, nil, nil, slog.Default())

			rr := serve(t, h.Earn, newRequest(http.MethodPost, "/api/loyalty/earn", tt.body, tt.cid, nil))
			assert.Equal(t, tt.wantCode, rr.Code)
			if tt.wantCode == http.StatusOK {
				var res accrual.Result
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
				assert.Equal(t, int64(42), res.Points)
				assert.True(t, res.Awarded)
			}
		})
	}
}

func TestLoyaltyHandler_Redeem(t *testing.T) {
	tests := []struct {
		name      string
		redeemErr error
		wantCode  int
	}{
		{"redeemed", nil, http.StatusOK},
		{"insufficient balance", serviceerrs.ErrInsufficientBalance, http.StatusPaymentRequired},
		{"no account", serviceerrs.ErrNotFound, http.StatusNotFound},
		{"bad points", serviceerrs.Validation("points must be positive"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			redeemer := mocks.NewMockRedeemer(t)
			redeemer.EXPECT().
				Redeem(mock.Anything, loyalty.AccountKey{CustomerID: 5, BusinessID: 2}, int64(50)).
				Return(redemption.Result{Balance: dec("70"), Discount: dec("5.00")}, tt.redeemErr)
			h := NewLoyaltyHandler(nil, redeemer, nil, slog.Default())

			rr := serve(t, h.Redeem,
				newRequest(http.MethodPost, "/api/loyalty/redeem", `{"bid":2,"points":50}`, 5, nil))
			assert.Equal(t, tt.wantCode, rr.Code)
		})
	}
}

func TestLoyaltyHandler_Summary(t *testing.T) {
	accounts := mocks.NewMockAccountReader(t)
	accounts.EXPECT().
		Summaries(mock.Anything, int64(1)).
		Return([]loyalty.Summary{{
			BusinessName: "Velvet Salon",
			ProgramType:  loyalty.AppointmentCount,
			BusinessID:   1,
			Points:       120,
			Progress:     3,
			Goal:         5,
		}}, nil)
	accounts.EXPECT().
		Summaries(mock.Anything, int64(2)).
		Return(nil, nil)
	h := NewLoyaltyHandler(nil, nil, accounts, slog.Default())

	rr := serve(t, h.Summary, newRequest(http.MethodGet, "/api/loyalty/summary", "", 1, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t,
		`[{"name":"Velvet Salon","program_type":"appointment_count","bid":1,"points":120,"progress":3,"goal":5}]`,
		rr.Body.String())

	rr = serve(t, h.Summary, newRequest(http.MethodGet, "/api/loyalty/summary", "", 2, nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestLoyaltyHandler_Balance(t *testing.T) {
	accounts := mocks.NewMockAccountReader(t)
	accounts.EXPECT().
		Balance(mock.Anything, loyalty.AccountKey{CustomerID: 1, BusinessID: 3}).
		Return(dec("15"), nil)
	h := NewLoyaltyHandler(nil, nil, accounts, slog.Default())

	rr := serve(t, h.Balance,
		newRequest(http.MethodGet, "/api/loyalty/balance/3", "", 1, map[string]string{"bid": "3"}))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"bid":3,"balance":15}`, rr.Body.String())

	rr = serve(t, h.Balance,
		newRequest(http.MethodGet, "/api/loyalty/balance/x", "", 1, map[string]string{"bid": "x"}))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	accounts.AssertNumberOfCalls(t, "Balance", 1)
}

func TestCheckoutHandler_Checkout(t *testing.T) {
	txID := uuid.New()
	tests := []struct {
		name          string
		settleErr     error
		wantCode      int
		wantRetryHint string
	}{
		{"settled", nil, http.StatusOK, ""},
		{"insufficient stock", &serviceerrs.StockError{ProductID: 3, Requested: 2}, http.StatusConflict, ""},
		{"already paid", serviceerrs.ErrNothingToCharge, http.StatusConflict, ""},
		{
			"admission timeout",
			&serviceerrs.ContendedError{Err: serviceerrs.ErrSemaphoreTimeoutExceeded, RetryAfter: 1500 * time.Millisecond},
			http.StatusServiceUnavailable,
			"2",
		},
		{"lock timeout", serviceerrs.ErrContended, http.StatusServiceUnavailable, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settler := mocks.NewMockSettler(t)
			settler.EXPECT().
				Settle(mock.Anything, mock.Anything).
				RunAndReturn(func(_ context.Context, req checkout.Request) (checkout.Result, error) {
					assert.Equal(t, int64(9), req.CustomerID)
					assert.Equal(t, int64(1), req.BusinessID)
					require.NotNil(t, req.AppointmentID)
					assert.Equal(t, int64(4), *req.AppointmentID)
					assert.Equal(t, int64(100), req.RedeemPoints)
					if tt.settleErr != nil {
						return checkout.Result{}, tt.settleErr
					}
					return checkout.Result{
						OriginalAmount: dec("100"),
						Discount:       dec("10"),
						Tax:            dec("5.51"),
						FinalAmount:    dec("95.51"),
						PointsRedeemed: 100,
						PointsEarned:   95,
						TransactionID:  txID,
						Success:        true,
					}, nil
				})
			h := NewCheckoutHandler(settler, slog.Default())

			body := `{"bid":1,"payment_method_id":2,"appointment_id":4,"redeem_points":100}`
			rr := serve(t, h.Checkout, newRequest(http.MethodPost, "/api/checkout", body, 9, nil))
			assert.Equal(t, tt.wantCode, rr.Code)
			assert.Equal(t, tt.wantRetryHint, rr.Header().Get("Retry-After"))
			if tt.wantCode != http.StatusOK {
				return
			}

			var res checkout.Result
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
			assert.True(t, dec("95.51").Equal(res.FinalAmount))
			assert.Equal(t, txID, res.TransactionID)
			assert.True(t, res.Success)
		})
	}
}

func TestCheckoutHandler_Checkout_noCustomer(t *testing.T) {
	settler := mocks.NewMockSettler(t)
	h := NewCheckoutHandler(settler, slog.Default())

	rr := serve(t, h.Checkout, newRequest(http.MethodPost, "/api/checkout", `{"bid":1}`, noCustomer, nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	settler.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything)
}

func TestOwnerHandler_CreateProgram(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCall bool
		wantCode int
	}{
		{
			name:     "points program",
			body:     `{"bid":1,"program_type":"appointment_count","threshold":"5","reward_type":"percent_discount","reward_value":15}`,
			wantCall: true,
			wantCode: http.StatusCreated,
		},
		{
			name:     "unknown program type",
			body:     `{"bid":1,"program_type":"visits","threshold":5,"reward_type":"bonus_points","reward_value":2}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown reward type",
			body:     `{"bid":1,"program_type":"product_count","threshold":5,"reward_type":"cashback","reward_value":2}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "decoding error",
			body:     `[]`,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := mocks.NewMockCatalogAdmin(t)
			if tt.wantCall {
				catalog.EXPECT().
					CreateProgram(mock.Anything, mock.Anything).
					RunAndReturn(func(_ context.Context, p *loyalty.Program) (int64, error) {
						assert.Equal(t, loyalty.AppointmentCount, p.Type)
						assert.True(t, dec("5").Equal(p.Threshold))
						assert.Equal(t, loyalty.KindPercentDiscount, p.Reward.Kind())
						return 11, nil
					})
			}
			h := NewOwnerHandler(catalog, nil, slog.Default())

			rr := serve(t, h.CreateProgram, newRequest(http.MethodPost, "/api/owner/programs", tt.body, 1, nil))
			assert.Equal(t, tt.wantCode, rr.Code)
			if tt.wantCode == http.StatusCreated {
				assert.JSONEq(t, `{"id":11}`, rr.Body.String())
			}
		})
	}
}

func TestOwnerHandler_CreatePromotion(t *testing.T) {
	catalog := mocks.NewMockCatalogAdmin(t)
	catalog.EXPECT().
		CreatePromotion(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, p *loyalty.Promotion) (int64, error) {
			assert.Equal(t, "Happy hour", p.Title)
			assert.Equal(t, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), p.StartDate)
			assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday}, p.RecurDays)
			require.NotNil(t, p.StartTime)
			assert.Equal(t, 14*time.Hour+30*time.Minute, *p.StartTime)
			if p.EndDate.Before(p.StartDate) {
				return 0, serviceerrs.Validation("start after end")
			}
			return 3, nil
		})
	h := NewOwnerHandler(catalog, nil, slog.Default())

	body := `{"bid":1,"title":"Happy hour","reward_type":"percent_discount","reward_value":10,` +
		`"start_date":"2026-10-01","end_date":"2026-10-31","is_recurring":true,` +
		`"recur_days":[1,3],"start_time":"14:30","end_time":"16:00"}`
	rr := serve(t, h.CreatePromotion, newRequest(http.MethodPost, "/api/owner/promotions", body, 1, nil))
	assert.Equal(t, http.StatusCreated, rr.Code)

	reversed := strings.Replace(body, `"end_date":"2026-10-31"`, `"end_date":"2026-09-30"`, 1)
	rr = serve(t, h.CreatePromotion, newRequest(http.MethodPost, "/api/owner/promotions", reversed, 1, nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	for _, bad := range []string{
		strings.Replace(body, `"2026-10-01"`, `"01.10.2026"`, 1),
		strings.Replace(body, `[1,3]`, `[1,9]`, 1),
		strings.Replace(body, `"14:30"`, `"2pm"`, 1),
	} {
		rr = serve(t, h.CreatePromotion, newRequest(http.MethodPost, "/api/owner/promotions", bad, 1, nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	}
	catalog.AssertNumberOfCalls(t, "CreatePromotion", 2)
}

func TestOwnerHandler_Revenue(t *testing.T) {
	accounts := mocks.NewMockAccountReader(t)
	accounts.EXPECT().
		MonthlyRevenue(mock.Anything, int64(1), 2026, time.March).
		Return(checkout.MonthlyRevenue{
			Revenue:      dec("1234.50"),
			BusinessID:   1,
			Transactions: 17,
			Year:         2026,
			Month:        time.March,
		}, nil)
	accounts.EXPECT().
		MonthlyRevenue(mock.Anything, int64(1), 2026, time.October).
		Return(checkout.MonthlyRevenue{Revenue: decimal.Zero, BusinessID: 1, Year: 2026, Month: time.October}, nil)
	accounts.EXPECT().
		MonthlyRevenue(mock.Anything, int64(1), 2026, time.Month(13)).
		Return(checkout.MonthlyRevenue{}, serviceerrs.Validation("bad period"))

	h := NewOwnerHandler(nil, accounts, slog.Default())
	h.now = func() time.Time { return time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC) }
	params := map[string]string{"bid": "1"}

	rr := serve(t, h.Revenue, newRequest(http.MethodGet, "/api/owner/revenue/1?year=2026&month=3", "", 1, params))
	require.Equal(t, http.StatusOK, rr.Code)
	var report checkout.MonthlyRevenue
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&report))
	assert.True(t, dec("1234.5").Equal(report.Revenue))
	assert.Equal(t, int64(17), report.Transactions)

	rr = serve(t, h.Revenue, newRequest(http.MethodGet, "/api/owner/revenue/1", "", 1, params))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = serve(t, h.Revenue, newRequest(http.MethodGet, "/api/owner/revenue/1?month=13", "", 1, params))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(t, h.Revenue, newRequest(http.MethodGet, "/api/owner/revenue/1?year=last", "", 1, params))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHealthHandler_Ping(t *testing.T) {
	db := mocks.NewMockPinger(t)
	db.EXPECT().Ping(mock.Anything).Return(nil).Once()
	db.EXPECT().Ping(mock.Anything).Return(errors.New("connection refused")).Once()
	h := NewHealthHandler(db, slog.Default())

	rr := serve(t, h.Ping, newRequest(http.MethodGet, "/ping", "", noCustomer, nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = serve(t, h.Ping, newRequest(http.MethodGet, "/ping", "", noCustomer, nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
