package logging

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSink appends records to a Redis stream via XADD. The client is owned
// by the caller and may be shared with other parts of the application.
type RedisSink struct {
	client *redis.Client
	stream string
}

// NewRedisSink builds a sink writing to the named stream.
func NewRedisSink(client *redis.Client, stream string) *RedisSink {
	return &RedisSink{client: client, stream: stream}
}

// Write adds one stream entry with the record fields.
func (s *RedisSink) Write(rec *Record) error {
	err := s.client.XAdd(context.Background(), &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]interface{}{
			"message":   rec.Message,
			"level":     rec.Level.String(),
			"call_tree": rec.CallPath,
			"ts":        rec.Timestamp.Format(time.RFC3339),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("%w: failed to append to stream %s: %w", ErrSinkWrite, s.stream, err)
	}
	return nil
}
