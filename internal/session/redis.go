package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore persists sessions in Redis as JSON records so they survive restarts.
type RedisStore struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(addr, password string, db int, ttl time.Duration, logger *zap.Logger) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return NewRedisStoreFromClient(rdb, ttl, logger), nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{redis: rdb, ttl: ttl, logger: logger}
}

func sessionKey(sid string) string {
	return fmt.Sprintf("session:%s", sid)
}

func (s *RedisStore) Load(ctx context.Context, sid string) (Data, error) {
	raw, err := s.redis.Get(ctx, sessionKey(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Data{}, nil
	}
	if err != nil {
		s.logger.Error("session.redis.get_failed", zap.String("session", Fingerprint(sid)), zap.Error(err))
		return Data{}, fmt.Errorf("read session: %w", err)
	}

	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		return Data{}, fmt.Errorf("decode session: %w", err)
	}
	return d, nil
}

func (s *RedisStore) Save(ctx context.Context, sid string, data Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if err := s.redis.Set(ctx, sessionKey(sid), raw, s.ttl).Err(); err != nil {
		s.logger.Error("session.redis.set_failed", zap.String("session", Fingerprint(sid)), zap.Error(err))
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, sid string) error {
	if err := s.redis.Del(ctx, sessionKey(sid)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *RedisStore) HealthCheck(ctx context.Context) error {
	if s.redis == nil {
		return fmt.Errorf("redis not initialized")
	}
	return s.redis.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.redis.Close()
}
