package repositories

import (
	"context"
	"time"

	"feecalc/internal/services/analytics"

	"github.com/redis/go-redis/v9"
)

const DefaultEventStream = "analytics:events"

// RedisEventSink appends events to a capped Redis stream.
type RedisEventSink struct {
	client redis.Cmdable
	stream string
	maxLen int64
}

func NewRedisEventSink(client redis.Cmdable, stream string, maxLen int64) *RedisEventSink {
	if stream == "" {
		stream = DefaultEventStream
	}
	return &RedisEventSink{client: client, stream: stream, maxLen: maxLen}
}

func (s *RedisEventSink) Track(ctx context.Context, name string, props analytics.Properties) error {
	values := analytics.Flatten(props)
	values["event"] = name
	values["timestamp"] = time.Now().UTC().Format(time.RFC3339Nano)

	return s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: true,
		Values: values,
	}).Err()
}
