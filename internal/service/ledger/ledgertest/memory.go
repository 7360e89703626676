// Package ledgertest provides an in-memory ledger.Store for engine tests.
package ledgertest

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/talx-hub/salon-bonus/internal/model/checkout"
	"github.com/talx-hub/salon-bonus/internal/model/loyalty"
	"github.com/talx-hub/salon-bonus/internal/service/ledger"
	"github.com/talx-hub/salon-bonus/internal/serviceerrs"
)

type revenueKey struct {
	bid   int64
	year  int
	month time.Month
}

type state struct {
	accounts     map[loyalty.AccountKey]loyalty.Account
	carts        map[loyalty.AccountKey][]checkout.CartLine
	appointments map[int64]checkout.AppointmentCharge
	stock        map[int64]int64
	revenue      map[revenueKey]checkout.MonthlyRevenue
	businesses   map[int64]string
	events       []loyalty.PointEvent
	redemptions  []loyalty.Redemption
	transactions []checkout.Transaction
	purchases    []checkout.Purchase
	discounts    []checkout.DiscountAudit
	programs     []loyalty.Program
	promotions   []loyalty.Promotion
	nextID       int64
}

func (s *state) clone() *state {
	carts := make(map[loyalty.AccountKey][]checkout.CartLine, len(s.carts))
	for k, v := range s.carts {
		carts[k] = slices.Clone(v)
	}
	return &state{
		accounts:     maps.Clone(s.accounts),
		carts:        carts,
		appointments: maps.Clone(s.appointments),
		stock:        maps.Clone(s.stock),
		revenue:      maps.Clone(s.revenue),
		businesses:   maps.Clone(s.businesses),
		events:       slices.Clone(s.events),
		redemptions:  slices.Clone(s.redemptions),
		transactions: slices.Clone(s.transactions),
		purchases:    slices.Clone(s.purchases),
		discounts:    slices.Clone(s.discounts),
		programs:     slices.Clone(s.programs),
		promotions:   slices.Clone(s.promotions),
		nextID:       s.nextID,
	}
}

func (s *state) id() int64 {
	s.nextID++
	return s.nextID
}

// Memory is a ledger.Store kept in process memory. Units of work are
// serialised and run against a private copy of the state that replaces the
// committed state only when the unit succeeds.
type Memory struct {
	committed *state
	faults    map[string]error
	writeMu   sync.Mutex
	mu        sync.RWMutex
	commits   int
}

var _ ledger.Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		committed: &state{
			accounts:     make(map[loyalty.AccountKey]loyalty.Account),
			carts:        make(map[loyalty.AccountKey][]checkout.CartLine),
			appointments: make(map[int64]checkout.AppointmentCharge),
			stock:        make(map[int64]int64),
			revenue:      make(map[revenueKey]checkout.MonthlyRevenue),
			businesses:   make(map[int64]string),
		},
		faults: make(map[string]error),
	}
}

// FailOn makes every later call of the named Tx method return err.
func (m *Memory) FailOn(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults[method] = err
}

func (m *Memory) InTx(ctx context.Context, fn func(ctx context.Context, tx ledger.Tx) error) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.mu.RLock()
	work := m.committed.clone()
	faults := maps.Clone(m.faults)
	m.mu.RUnlock()

	if err := fn(ctx, &memTx{s: work, faults: faults}); err != nil {
		return err
	}

	m.mu.Lock()
	m.committed = work
	m.commits++
	m.mu.Unlock()
	return nil
}

// Commits counts the units of work that committed.
func (m *Memory) Commits() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.commits
}

func (m *Memory) read(f func(s *state)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f(m.committed)
}

func (m *Memory) write(f func(s *state)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f(m.committed)
}

// Seeding helpers.

func (m *Memory) AddBusiness(bid int64, name string) {
	m.write(func(s *state) { s.businesses[bid] = name })
}

func (m *Memory) SetAccount(acc loyalty.Account) {
	m.write(func(s *state) { s.accounts[acc.AccountKey] = acc })
}

func (m *Memory) SetStock(productID, quantity int64) {
	m.write(func(s *state) { s.stock[productID] = quantity })
}

func (m *Memory) AddCartLine(key loyalty.AccountKey, line checkout.CartLine) {
	m.write(func(s *state) { s.carts[key] = append(s.carts[key], line) })
}

func (m *Memory) AddAppointment(c checkout.AppointmentCharge) {
	m.write(func(s *state) { s.appointments[c.AppointmentID] = c })
}

func (m *Memory) AddProgram(p loyalty.Program) int64 {
	var id int64
	m.write(func(s *state) {
		id = s.id()
		p.ID = id
		s.programs = append(s.programs, p)
	})
	return id
}

func (m *Memory) AddPromotion(p loyalty.Promotion) int64 {
	var id int64
	m.write(func(s *state) {
		id = s.id()
		p.ID = id
		s.promotions = append(s.promotions, p)
	})
	return id
}

// Inspection helpers.

func (m *Memory) Account(key loyalty.AccountKey) (loyalty.Account, bool) {
	var (
		acc loyalty.Account
		ok  bool
	)
	m.read(func(s *state) { acc, ok = s.accounts[key] })
	return acc, ok
}

func (m *Memory) Stock(productID int64) int64 {
	var q int64
	m.read(func(s *state) { q = s.stock[productID] })
	return q
}

func (m *Memory) Cart(key loyalty.AccountKey) []checkout.CartLine {
	var lines []checkout.CartLine
	m.read(func(s *state) { lines = slices.Clone(s.carts[key]) })
	return lines
}

func (m *Memory) Appointment(id int64) checkout.AppointmentCharge {
	var c checkout.AppointmentCharge
	m.read(func(s *state) { c = s.appointments[id] })
	return c
}

func (m *Memory) PointEvents() []loyalty.PointEvent {
	var out []loyalty.PointEvent
	m.read(func(s *state) { out = slices.Clone(s.events) })
	return out
}

func (m *Memory) Redemptions() []loyalty.Redemption {
	var out []loyalty.Redemption
	m.read(func(s *state) { out = slices.Clone(s.redemptions) })
	return out
}

func (m *Memory) Transactions() []checkout.Transaction {
	var out []checkout.Transaction
	m.read(func(s *state) { out = slices.Clone(s.transactions) })
	return out
}

func (m *Memory) Purchases() []checkout.Purchase {
	var out []checkout.Purchase
	m.read(func(s *state) { out = slices.Clone(s.purchases) })
	return out
}

func (m *Memory) Discounts() []checkout.DiscountAudit {
	var out []checkout.DiscountAudit
	m.read(func(s *state) { out = slices.Clone(s.discounts) })
	return out
}

// Catalog.

func (m *Memory) ActiveProgram(_ context.Context, bid int64) (*loyalty.Program, error) {
	var found *loyalty.Program
	m.read(func(s *state) {
		for i := len(s.programs) - 1; i >= 0; i-- {
			if s.programs[i].BusinessID == bid {
				p := s.programs[i]
				found = &p
				return
			}
		}
	})
	if found == nil {
		return nil, fmt.Errorf("program of business %d: %w", bid, serviceerrs.ErrNotFound)
	}
	return found, nil
}

func (m *Memory) Promotions(_ context.Context, bid int64, _ time.Time) ([]loyalty.Promotion, error) {
	var out []loyalty.Promotion
	m.read(func(s *state) {
		for _, p := range s.promotions {
			if p.BusinessID == bid {
				out = append(out, p)
			}
		}
	})
	return out, nil
}

func (m *Memory) CreateProgram(_ context.Context, p *loyalty.Program) (int64, error) {
	return m.AddProgram(*p), nil
}

func (m *Memory) CreatePromotion(_ context.Context, p *loyalty.Promotion) (int64, error) {
	return m.AddPromotion(*p), nil
}

// Reader.

func (m *Memory) Balance(_ context.Context, key loyalty.AccountKey) (decimal.Decimal, error) {
	acc, ok := m.Account(key)
	if !ok {
		return decimal.Zero, serviceerrs.ErrNotFound
	}
	return acc.Balance, nil
}

func (m *Memory) Holdings(_ context.Context, cid int64) ([]ledger.Holding, error) {
	var out []ledger.Holding
	m.read(func(s *state) {
		for key, acc := range s.accounts {
			if key.CustomerID == cid {
				out = append(out, ledger.Holding{
					BusinessName: s.businesses[key.BusinessID],
					Account:      acc,
				})
			}
		}
	})
	slices.SortFunc(out, func(a, b ledger.Holding) int {
		return int(a.Account.BusinessID - b.Account.BusinessID)
	})
	return out, nil
}

func (m *Memory) MonthlyRevenue(
	_ context.Context, bid int64, year int, month time.Month,
) (checkout.MonthlyRevenue, error) {
	var (
		r  checkout.MonthlyRevenue
		ok bool
	)
	m.read(func(s *state) { r, ok = s.revenue[revenueKey{bid, year, month}] })
	if !ok {
		return checkout.MonthlyRevenue{
			Revenue:    decimal.Zero,
			BusinessID: bid,
			Year:       year,
			Month:      month,
		}, nil
	}
	return r, nil
}
