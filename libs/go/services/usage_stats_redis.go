package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/churnlens/churn-api/libs/go/types/business"
	"github.com/redis/go-redis/v9"
)

const (
	usageFieldTotal        = "total"
	usageFieldSuccess      = "success"
	usageFieldClientErrors = "client_errors"
	usageFieldServerErrors = "server_errors"
	usageFieldPositive     = "positive"
)

// RedisUsageStatsStore keeps usage counters in a Redis hash per user so every
// instance behind the load balancer shares them.
type RedisUsageStatsStore struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

type RedisUsageStatsOption func(*RedisUsageStatsStore)

func WithUsageStatsPrefix(prefix string) RedisUsageStatsOption {
	return func(s *RedisUsageStatsStore) { s.prefix = strings.Trim(prefix, ":") }
}

// WithUsageStatsTTL expires idle user hashes. Zero keeps them forever.
func WithUsageStatsTTL(d time.Duration) RedisUsageStatsOption {
	return func(s *RedisUsageStatsStore) { s.ttl = d }
}

func NewRedisUsageStatsStore(rdb redis.UniversalClient, opts ...RedisUsageStatsOption) *RedisUsageStatsStore {
	s := &RedisUsageStatsStore{
		rdb:    rdb,
		prefix: "churn:usage",
		ttl:    30 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewRedisClientFromURL parses a redis:// URL into a client.
func NewRedisClientFromURL(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

func (s *RedisUsageStatsStore) key(username string) string {
	return s.prefix + ":user:" + username
}

// Record implements interfaces.UsageStatsStore.
func (s *RedisUsageStatsStore) Record(ctx context.Context, event business.UsageEvent) error {
	key := s.key(event.Username)

	pipe := s.rdb.TxPipeline()
	pipe.HIncrBy(ctx, key, usageFieldTotal, 1)
	switch event.Outcome {
	case business.UsageOutcomeSuccess:
		pipe.HIncrBy(ctx, key, usageFieldSuccess, 1)
	case business.UsageOutcomeClientError:
		pipe.HIncrBy(ctx, key, usageFieldClientErrors, 1)
	case business.UsageOutcomeServerError:
		pipe.HIncrBy(ctx, key, usageFieldServerErrors, 1)
	}
	if event.Prediction != nil && *event.Prediction == 1 {
		pipe.HIncrBy(ctx, key, usageFieldPositive, 1)
	}
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record usage for %s: %w", event.Username, err)
	}
	return nil
}

// Snapshot implements interfaces.UsageStatsStore.
func (s *RedisUsageStatsStore) Snapshot(ctx context.Context, username string) (business.UsageSnapshot, error) {
	values, err := s.rdb.HGetAll(ctx, s.key(username)).Result()
	if err != nil {
		return business.UsageSnapshot{}, fmt.Errorf("failed to read usage for %s: %w", username, err)
	}
	return snapshotFromHash(username, values), nil
}

func snapshotFromHash(username string, values map[string]string) business.UsageSnapshot {
	parse := func(field string) int64 {
		n, _ := strconv.ParseInt(values[field], 10, 64)
		return n
	}
	return business.UsageSnapshot{
		Username:     username,
		Total:        parse(usageFieldTotal),
		Success:      parse(usageFieldSuccess),
		ClientErrors: parse(usageFieldClientErrors),
		ServerErrors: parse(usageFieldServerErrors),
		Positive:     parse(usageFieldPositive),
	}
}
