package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Stream names for downstream consumers.
const (
	StreamGameIngested       = "games.ingested"
	StreamProfilesRecomputed = "profiles.recomputed"
)

// RedisPublisher publishes ingest and recompute events to Redis streams
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a publisher from an existing client
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		client: client,
	}
}

// PublishGameIngested announces one parsed and persisted game file
func (rp *RedisPublisher) PublishGameIngested(ctx context.Context, payload interface{}) error {
	return rp.publish(ctx, StreamGameIngested, payload)
}

// PublishProfilesRecomputed announces a completed full recomputation
func (rp *RedisPublisher) PublishProfilesRecomputed(ctx context.Context, payload interface{}) error {
	return rp.publish(ctx, StreamProfilesRecomputed, payload)
}

func (rp *RedisPublisher) publish(ctx context.Context, stream string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
