package external

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"weatherdash.app/internal/config"
	"weatherdash.app/pkg/errors"
)

const redisFlagKeyPrefix = "weatherdash:flags:"

// RedisFlagStore keeps each session's flags in one hash, without expiry
type RedisFlagStore struct {
	client *redis.Client
}

func NewRedisFlagStore(config *config.RedisConfig) (*RedisFlagStore, error) {
	if config == nil {
		return nil, errors.NewConfigurationError("redis config cannot be nil", nil)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		DialTimeout:  time.Duration(config.DialTimeout) * time.Second,
		ReadTimeout:  time.Duration(config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.WriteTimeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.NewDatabaseError("failed to connect to Redis", err)
	}

	return &RedisFlagStore{client: client}, nil
}

func (s *RedisFlagStore) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	if err := validateFlagKey(sessionID, key); err != nil {
		return "", false, err
	}

	value, err := s.client.HGet(ctx, redisFlagKeyPrefix+sessionID, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.NewDatabaseError("redis get flag failed", err)
	}
	return value, true, nil
}

func (s *RedisFlagStore) Set(ctx context.Context, sessionID, key, value string) error {
	if err := validateFlagKey(sessionID, key); err != nil {
		return err
	}

	if err := s.client.HSet(ctx, redisFlagKeyPrefix+sessionID, key, value).Err(); err != nil {
		return errors.NewDatabaseError("redis set flag failed", err)
	}
	return nil
}

func (s *RedisFlagStore) Delete(ctx context.Context, sessionID, key string) error {
	if err := validateFlagKey(sessionID, key); err != nil {
		return err
	}

	if err := s.client.HDel(ctx, redisFlagKeyPrefix+sessionID, key).Err(); err != nil {
		return errors.NewDatabaseError("redis delete flag failed", err)
	}
	return nil
}

// Ping checks if Redis connection is alive
func (s *RedisFlagStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return errors.NewDatabaseError("Redis ping failed", err)
	}
	return nil
}

func (s *RedisFlagStore) Close() error {
	if err := s.client.Close(); err != nil {
		return errors.NewDatabaseError("failed to close Redis connection", err)
	}
	return nil
}
