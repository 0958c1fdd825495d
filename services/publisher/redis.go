package publisher

import (
	"context"
	"encoding/base64"
	"math/rand"
	"strconv"

	"github.com/redis/go-redis/v9"

	"stayscan/hotelworker/logger"
	apperr "stayscan/hotelworker/pkg/errors"
)

// RedisPublisher implements Publisher using Redis streams. Messages are
// spread over streamCount streams named <prefix>:0 .. <prefix>:N-1 so
// consumers can shard.
type RedisPublisher struct {
	client          *redis.Client
	streamPrefix    string
	streamCount     int
	streamMaxLength int
	log             *logger.Logger
}

// NewRedisPublisher creates a new Redis publisher
func NewRedisPublisher(addr string, db int, streamPrefix string, streamCount int, streamMaxLength int) *RedisPublisher {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if streamCount < 1 {
		streamCount = 1
	}

	return &RedisPublisher{
		client:          client,
		streamPrefix:    streamPrefix,
		streamCount:     streamCount,
		streamMaxLength: streamMaxLength,
		log:             logger.ForPublisher(),
	}
}

// Publish publishes a message to a randomly chosen stream shard.
// The message is base64 encoded before publishing.
func (p *RedisPublisher) Publish(ctx context.Context, key string, message []byte) error {
	encoded := base64.StdEncoding.EncodeToString(message)
	stream := p.streamPrefix + ":" + strconv.Itoa(rand.Intn(p.streamCount))

	err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			key: encoded,
		},
	}).Err()
	if err != nil {
		return apperr.NewPublisher("xadd", "failed to publish to "+stream, err)
	}
	p.log.Debug().Str("stream", stream).Int("bytes", len(message)).Msg("Published message")
	return nil
}

// TrimStreams trims every stream shard to the configured maximum length
func (p *RedisPublisher) TrimStreams(ctx context.Context) error {
	pattern := p.streamPrefix + ":*"
	streams, err := p.client.Keys(ctx, pattern).Result()
	if err != nil {
		return apperr.NewPublisher("trim", "failed to list streams", err)
	}

	for _, stream := range streams {
		if err := p.client.XTrimMaxLen(ctx, stream, int64(p.streamMaxLength)).Err(); err != nil {
			return apperr.NewPublisher("trim", "failed to trim "+stream, err)
		}
	}
	return nil
}

// Close closes the Redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
