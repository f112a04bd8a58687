package api

import (
	"context"
	"time"

	"github.com/Dasen603/typeset/internal/store"
)

var startedAt = time.Now()

func health(s *store.Store) any {
	return func(ctx context.Context) map[string]any {
		return map[string]any{
			"status":    dbStatus(ctx, s),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    int64(time.Since(startedAt).Seconds()),
		}
	}
}

func detailedHealth(s *store.Store) any {
	return func(ctx context.Context) map[string]any {
		status := dbStatus(ctx, s)
		return map[string]any{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    int64(time.Since(startedAt).Seconds()),
			"database": map[string]any{
				"connected": status == "healthy",
			},
		}
	}
}

func dbStatus(ctx context.Context, s *store.Store) string {
	if err := s.DB().PingContext(ctx); err != nil {
		return "unhealthy"
	}
	return "healthy"
}
