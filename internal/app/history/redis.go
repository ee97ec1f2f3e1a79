package history

import (
	"context"
	"encoding/json"
	"fmt"

	"emailcrawler/internal/usecase"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore keeps records as JSON in a list, newest at the head. Ids come
// from a counter stored next to the list.
type RedisStore struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

func NewRedisStore(addr, key string, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		key:    key,
		logger: logger,
	}
}

func (s *RedisStore) seqKey() string {
	return s.key + ":seq"
}

// appendScript allocates the id and pushes the record in one server-side step,
// so list order always follows id order. KEYS[1] is the list, KEYS[2] the counter.
var appendScript = redis.NewScript(`
local id = redis.call('INCR', KEYS[2])
redis.call('LPUSH', KEYS[1], cjson.encode({ID = id, URL = ARGV[1], Emails = ARGV[2]}))
return id
`)

func (s *RedisStore) Append(ctx context.Context, url string, emails []string) error {
	keys := []string{s.key, s.seqKey()}
	if err := appendScript.Run(ctx, s.client, keys, url, joinEmails(emails)).Err(); err != nil {
		s.logger.Error("history append error", zap.String("url", url), zap.Error(err))
		return fmt.Errorf("failed to push history: %w", err)
	}
	return nil
}

func (s *RedisStore) Latest(ctx context.Context, n int) ([]usecase.HistoryRecord, error) {
	if n <= 0 {
		return nil, nil
	}
	vals, err := s.client.LRange(ctx, s.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	records := make([]usecase.HistoryRecord, 0, len(vals))
	for _, v := range vals {
		var rec usecase.HistoryRecord
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			return nil, fmt.Errorf("failed to decode history: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
