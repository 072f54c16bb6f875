package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"rutasegura/pkg/platform/sentinel"
)

const selectionKeyPrefix = "sel:guardian:"

// Redis is the shared selection store for multi-instance deployments.
// Selections persist across app restarts until sign-out clears them, which
// matches how the mobile client remembers the last chosen child.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (s *Redis) SetActiveDependent(ctx context.Context, guardianRUT, dependentRUT string) error {
	return s.client.Set(ctx, selectionKeyPrefix+guardianRUT, dependentRUT, 0).Err()
}

func (s *Redis) ActiveDependent(ctx context.Context, guardianRUT string) (string, error) {
	rut, err := s.client.Get(ctx, selectionKeyPrefix+guardianRUT).Result()
	if errors.Is(err, redis.Nil) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return rut, nil
}

func (s *Redis) ClearActiveDependent(ctx context.Context, guardianRUT string) error {
	return s.client.Del(ctx, selectionKeyPrefix+guardianRUT).Err()
}
