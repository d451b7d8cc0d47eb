package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates and pings a Redis client with optional password auth.
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

// AccessStore records, per session, the time of the last request the rate
// limiter accepted. Values are epoch milliseconds; records are upserted,
// never deleted.
type AccessStore struct {
	rdb *redis.Client
}

func NewAccessStore(rdb *redis.Client) *AccessStore {
	return &AccessStore{rdb: rdb}
}

// LastRequest returns the last accepted request time for the session. The
// bool is false when the session has no record yet.
func (s *AccessStore) LastRequest(ctx context.Context, sessionID string) (time.Time, bool, error) {
	val, err := s.rdb.Get(ctx, "access:"+sessionID).Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	millis, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false, err
	}
	return time.UnixMilli(millis), true, nil
}

// Touch stores t as the session's last accepted request time.
func (s *AccessStore) Touch(ctx context.Context, sessionID string, t time.Time) error {
	return s.rdb.Set(ctx, "access:"+sessionID, strconv.FormatInt(t.UnixMilli(), 10), 0).Err()
}
