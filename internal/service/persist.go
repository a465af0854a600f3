package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/logger"
)

// loadJSON reads key and decodes it into a T. Missing, unreadable and
// malformed values all yield ok == false; only the last two are logged.
func loadJSON[T any](ctx context.Context, store repository.Store, key string, l *slog.Logger) (v T, ok bool) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return v, false
		}
		storageLoadFailures.WithLabelValues(key, "read").Inc()
		logger.WithContext(ctx, l).WarnContext(ctx, "failed to read persisted state, starting empty",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return v, false
	}

	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		storageLoadFailures.WithLabelValues(key, "decode").Inc()
		logger.WithContext(ctx, l).WarnContext(ctx, "malformed persisted state, starting empty",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		var zero T
		return zero, false
	}
	return v, true
}

// saveJSON writes v under key. Failures are logged and counted, never returned.
func saveJSON(ctx context.Context, store repository.Store, key string, v any, l *slog.Logger) {
	data, err := json.Marshal(v)
	if err == nil {
		err = store.Set(ctx, key, string(data))
	}
	if err != nil {
		storageWriteFailures.WithLabelValues(key).Inc()
		logger.WithContext(ctx, l).ErrorContext(ctx, "failed to persist state",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}
