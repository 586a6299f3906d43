// Package bus consumes envelopes from per-topic redis lists. Producers push
// with RPUSH, so LPop preserves per-topic ordering; each message is routed
// to completion before the next one is taken from the same topic.
package bus

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/priyank-dev/edu-sync-service/internal/domain"
)

const queuePrefix = "events:"

// QueueKey returns the redis list a topic's messages arrive on.
func QueueKey(topic string) string {
	return queuePrefix + topic
}

// Topics lists every queue the consumer drains.
var Topics = []string{
	domain.TopicUser,
	domain.TopicEvent,
	domain.TopicAttendance,
	domain.TopicCourse,
	domain.TopicAssessment,
	domain.TopicProject,
}

type routeFunc func(ctx context.Context, topic string, raw []byte)

// Consumer continuously polls the per-topic queues and hands each message
// to the router.
type Consumer struct {
	redisClient  *redis.Client
	route        routeFunc
	logger       *slog.Logger
	pollInterval time.Duration
	batchSize    int64
}

func NewConsumer(redisClient *redis.Client, route routeFunc, logger *slog.Logger) *Consumer {
	return &Consumer{
		redisClient:  redisClient,
		route:        route,
		logger:       logger,
		pollInterval: 100 * time.Millisecond,
		batchSize:    10,
	}
}

// Start begins the polling loop. It runs until the context is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	c.logger.Info("bus consumer started", "topics", Topics)

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("bus consumer stopping")
			return
		case <-ticker.C:
			for _, topic := range Topics {
				c.drain(ctx, topic)
			}
		}
	}
}

// drain takes up to one batch from a topic's queue and routes each message.
// LPopCount on a missing key returns redis.Nil, which just means the queue
// is empty.
func (c *Consumer) drain(ctx context.Context, topic string) {
	messages, err := c.redisClient.LPopCount(ctx, QueueKey(topic), int(c.batchSize)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Error("failed to poll topic queue", "topic", topic, "error", err)
		}
		return
	}

	for _, raw := range messages {
		c.route(ctx, topic, []byte(raw))
	}
}
