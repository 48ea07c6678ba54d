package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	errx "github.com/Chative-core-poc-v1/questionnaire/internal/core/error"
	"github.com/Chative-core-poc-v1/questionnaire/internal/survey/model"
	logx "github.com/Chative-core-poc-v1/questionnaire/pkg/logger"
)

// listClient is the subset of redis.Cmdable the archive needs.
type listClient interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	LLen(ctx context.Context, key string) *redis.IntCmd
}

// RedisArchive stores records as JSON in one list per topic.
type RedisArchive struct {
	rdb listClient
	ttl time.Duration
}

func NewRedisArchive(rdb listClient, ttl time.Duration) *RedisArchive {
	return &RedisArchive{rdb: rdb, ttl: ttl}
}

func (r *RedisArchive) Name() string { return "redis" }

// RecordsKey is the list holding every record of a topic.
func RecordsKey(topic string) string {
	return fmt.Sprintf("survey:%s:records", topic)
}

func (r *RedisArchive) Append(ctx context.Context, rec *model.Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		logx.Error().Err(err).Str("record", rec.ID).Msg("failed to marshal record")
		return fmt.Errorf("marshal record: %w", err)
	}
	key := RecordsKey(rec.Topic)

	if err := r.rdb.RPush(ctx, key, b).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push record to redis")
		return errx.WrapRedis(err)
	}
	// refresh TTL on every write
	if r.ttl > 0 {
		if ok, err := r.rdb.Expire(ctx, key, r.ttl).Result(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
			return errx.WrapRedis(err)
		} else if !ok {
			logx.Warn().Str("key", key).Dur("ttl", r.ttl).Msg("failed to set TTL on records key")
		}
	}
	return nil
}

func (r *RedisArchive) List(ctx context.Context, topic string) ([]*model.Record, error) {
	key := RecordsKey(topic)

	rows, err := r.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []*model.Record{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load records from redis")
		return nil, errx.WrapRedis(err)
	}

	recs := make([]*model.Record, 0, len(rows))
	for i, s := range rows {
		var rec model.Record
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			logx.Error().Err(err).Str("key", key).Int("index", i).Msg("failed to unmarshal record")
			return nil, fmt.Errorf("unmarshal record at index %d: %w", i, err)
		}
		recs = append(recs, &rec)
	}
	return recs, nil
}

func (r *RedisArchive) Count(ctx context.Context, topic string) (int, error) {
	key := RecordsKey(topic)
	n, err := r.rdb.LLen(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to count records in redis")
		return 0, errx.WrapRedis(err)
	}
	return int(n), nil
}

var _ Archive = (*RedisArchive)(nil)
