// Package history persists extraction results as (url, emails) rows and
// serves the most recent ones back.
package history

import (
	"fmt"
	"strings"

	"emailcrawler/config"
	"emailcrawler/internal/usecase"

	"go.uber.org/zap"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Open returns the store selected by cfg.HistoryBackend.
func Open(cfg *config.Config, logger *zap.Logger) (usecase.HistoryStore, error) {
	switch cfg.HistoryBackend {
	case "", BackendSQLite:
		return OpenSQLite(cfg.DBPath, logger)
	case BackendRedis:
		return NewRedisStore(cfg.RedisAddr, cfg.RedisKey, logger), nil
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.HistoryBackend)
	}
}

func joinEmails(emails []string) string {
	return strings.Join(emails, ",")
}
