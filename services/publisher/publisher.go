package publisher

import "context"

// Publisher pushes scraped hotel payloads to downstream consumers
type Publisher interface {
	// Publish publishes a message under the given field key
	Publish(ctx context.Context, key string, message []byte) error

	// TrimStreams trims all streams to the configured maximum length
	TrimStreams(ctx context.Context) error

	// Close closes the publisher connection
	Close() error
}
