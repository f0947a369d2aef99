package worker

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher adapts a Redis client to the Publisher interface.
type RedisPublisher struct {
	Client redis.UniversalClient
}

func (p RedisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.Client.Publish(ctx, channel, payload).Err()
}

// ExportNotifyMessage is the message published on the user's Redis channel
// when an async export finishes. The field names match what the WebSocket
// clients parse.
type ExportNotifyMessage struct {
	Status        string `json:"status"`
	ResumeID      uint   `json:"resume_id"`
	CorrelationID string `json:"correlation_id"`
	PageCount     int    `json:"page_count,omitempty"`
	ErrorCode     int    `json:"error_code"`
	ErrorMessage  string `json:"error_message"`
}
