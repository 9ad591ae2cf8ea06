package api

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type ctxKey string

const (
	ctxRequestIdKey ctxKey = "REQUEST_ID"
	ctxLoggerKey    ctxKey = "LOGGER"
)

func ctxWithRequestId(ctx context.Context, requestId uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxRequestIdKey, requestId)
}

func getRequestIdFromCtx(ctx context.Context) (uuid.UUID, bool) {
	requestId, ok := ctx.Value(ctxRequestIdKey).(uuid.UUID)
	return requestId, ok
}

func ctxWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey, logger)
}

func (a *API) getLoggerOrBaseLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxLoggerKey).(*slog.Logger); ok {
		return logger
	}

	return a.logger
}
