package dbmanager

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/talx-hub/salon-bonus/internal/model"
)

type queryStartKey struct{}

type queryStart struct {
	at  time.Time
	sql string
}

// queryTracer logs statements at debug level. Failed statements are logged
// at warn together with their duration.
type queryTracer struct {
	log *slog.Logger
}

func (t *queryTracer) TraceQueryStart(
	ctx context.Context,
	_ *pgx.Conn,
	data pgx.TraceQueryStartData,
) context.Context {
	t.log.LogAttrs(ctx,
		slog.LevelDebug,
		"running query",
		slog.String("query", data.SQL),
		slog.Any("args", data.Args),
	)
	return context.WithValue(ctx, queryStartKey{}, queryStart{at: time.Now(), sql: data.SQL})
}

func (t *queryTracer) TraceQueryEnd(
	ctx context.Context,
	_ *pgx.Conn,
	data pgx.TraceQueryEndData,
) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	took := time.Since(start.at)
	if data.Err != nil {
		t.log.LogAttrs(ctx,
			slog.LevelWarn,
			"query failed",
			slog.String("query", start.sql),
			slog.Duration("took", took),
			slog.Any(model.KeyLoggerError, data.Err),
		)
		return
	}
	t.log.LogAttrs(ctx,
		slog.LevelDebug,
		"query done",
		slog.String("tag", data.CommandTag.String()),
		slog.Duration("took", took),
	)
}
