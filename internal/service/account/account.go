// Package account serves read-only loyalty and revenue views.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/talx-hub/salon-bonus/internal/model/checkout"
	"github.com/talx-hub/salon-bonus/internal/model/loyalty"
	"github.com/talx-hub/salon-bonus/internal/service/ledger"
	"github.com/talx-hub/salon-bonus/internal/serviceerrs"
)

type ProgramResolver interface {
	ActiveProgram(ctx context.Context, bid int64) (*loyalty.Program, error)
}

type Service struct {
	reader   ledger.Reader
	programs ProgramResolver
	log      *slog.Logger
}

func New(reader ledger.Reader, programs ProgramResolver, log *slog.Logger) *Service {
	return &Service{
		reader:   reader,
		programs: programs,
		log:      log.With(slog.String("service", "account")),
	}
}

// Balance is zero for a pair without an account; it never creates one.
func (s *Service) Balance(ctx context.Context, key loyalty.AccountKey) (decimal.Decimal, error) {
	b, err := s.reader.Balance(ctx, key)
	if errors.Is(err, serviceerrs.ErrNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to read balance: %w", err)
	}
	return b, nil
}

func (s *Service) Summaries(ctx context.Context, cid int64) ([]loyalty.Summary, error) {
	holdings, err := s.reader.Holdings(ctx, cid)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts of customer %d: %w", cid, err)
	}

	out := make([]loyalty.Summary, 0, len(holdings))
	for _, h := range holdings {
		prog, err := s.programs.ActiveProgram(ctx, h.Account.BusinessID)
		if err != nil {
			return nil, fmt.Errorf("failed to summarise account: %w", err)
		}
		out = append(out, loyalty.NewSummary(&h.Account, h.BusinessName, prog))
	}
	return out, nil
}

func (s *Service) MonthlyRevenue(
	ctx context.Context, bid int64, year int, month time.Month,
) (checkout.MonthlyRevenue, error) {
	if month < time.January || month > time.December || year < 1 {
		return checkout.MonthlyRevenue{}, serviceerrs.Validation("bad period %d-%d", year, month)
	}
	r, err := s.reader.MonthlyRevenue(ctx, bid, year, month)
	if err != nil {
		return checkout.MonthlyRevenue{}, fmt.Errorf("failed to read revenue: %w", err)
	}
	return r, nil
}
