// Package notify delivers loyalty notifications. Delivery is best effort
// and never fails the operation that triggered it.
package notify

import (
	"context"
	"log/slog"

	"github.com/talx-hub/salon-bonus/internal/model/checkout"
	"github.com/talx-hub/salon-bonus/internal/model/loyalty"
)

// LogNotifier writes notifications to the structured log. It stands in for
// mail delivery, which lives outside this service.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With(slog.String("service", "notify"))}
}

func (n *LogNotifier) PromotionCreated(ctx context.Context, p loyalty.Promotion) {
	n.log.LogAttrs(ctx, slog.LevelInfo, "new promotion",
		slog.Int64("bid", p.BusinessID),
		slog.Int64("promotion_id", p.ID),
		slog.String("title", p.Title),
		slog.Time("start", p.StartDate),
		slog.Time("end", p.EndDate),
	)
}

func (n *LogNotifier) RewardApplied(ctx context.Context, key loyalty.AccountKey, res checkout.Result) {
	n.log.LogAttrs(ctx, slog.LevelInfo, "loyalty reward applied",
		slog.Int64("cid", key.CustomerID),
		slog.Int64("bid", key.BusinessID),
		slog.String("transaction_id", res.TransactionID.String()),
		slog.Int64("points_redeemed", res.PointsRedeemed),
		slog.String("loyalty_discount", res.LoyaltyDiscount.StringFixed(2)),
	)
}
