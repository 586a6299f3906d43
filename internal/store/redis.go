package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// trackedKeyTTL bounds how long completed-task ids stay cached. The
// postgres table remains authoritative; expiry only costs one extra query.
const trackedKeyTTL = 24 * time.Hour

type RedisStore struct {
	client *redis.Client
}

func NewRedis(ctx context.Context, redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) Client() *redis.Client {
	return s.client
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func trackedKey(projectID, userID string) string {
	return fmt.Sprintf("tracked:%s:%s", projectID, userID)
}

// CachedTaskIDs returns which of the candidate task ids are already known
// to be tracked for this (project, user) pair.
func (s *RedisStore) CachedTaskIDs(ctx context.Context, projectID, userID string, taskIDs []string) (map[string]bool, error) {
	cached := make(map[string]bool, len(taskIDs))
	if len(taskIDs) == 0 {
		return cached, nil
	}

	members := make([]interface{}, len(taskIDs))
	for i, id := range taskIDs {
		members[i] = id
	}

	hits, err := s.client.SMIsMember(ctx, trackedKey(projectID, userID), members...).Result()
	if err != nil {
		return nil, fmt.Errorf("checking tracked task cache: %w", err)
	}

	for i, hit := range hits {
		if hit {
			cached[taskIDs[i]] = true
		}
	}

	return cached, nil
}

// CacheTaskIDs writes task ids through to the tracked-task cache after a
// successful insert.
func (s *RedisStore) CacheTaskIDs(ctx context.Context, projectID, userID string, taskIDs []string) error {
	if len(taskIDs) == 0 {
		return nil
	}

	key := trackedKey(projectID, userID)
	members := make([]interface{}, len(taskIDs))
	for i, id := range taskIDs {
		members[i] = id
	}

	pipe := s.client.Pipeline()
	pipe.SAdd(ctx, key, members...)
	pipe.Expire(ctx, key, trackedKeyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("caching tracked tasks: %w", err)
	}

	return nil
}
