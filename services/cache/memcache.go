package cache

import (
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"stayscan/hotelworker/logger"
	apperr "stayscan/hotelworker/pkg/errors"
)

// MemcacheService implements CacheService using memcache
type MemcacheService struct {
	client *memcache.Client
	log    *logger.Logger
}

// NewMemcacheService creates a new memcache service
func NewMemcacheService(serverAddr string) *MemcacheService {
	return &MemcacheService{
		client: memcache.New(serverAddr),
		log:    logger.ForCache(),
	}
}

// Get retrieves a value from memcache. A cache miss is returned as-is so
// callers can distinguish it from a connection failure.
func (m *MemcacheService) Get(key string) ([]byte, error) {
	item, err := m.client.Get(key)
	if err != nil {
		if err == memcache.ErrCacheMiss {
			return nil, err
		}
		return nil, apperr.NewCache("get", "memcache get failed", err)
	}
	return item.Value, nil
}

// Set stores a value in memcache with an expiration time
func (m *MemcacheService) Set(key string, value []byte, expiration time.Duration) error {
	err := m.client.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: int32(expiration.Seconds()),
	})
	if err != nil {
		return apperr.NewCache("set", "memcache set failed", err)
	}
	m.log.Debug().Str("key", key).Dur("ttl", expiration).Msg("Cached value")
	return nil
}

// Delete removes a value from memcache
func (m *MemcacheService) Delete(key string) error {
	if err := m.client.Delete(key); err != nil && err != memcache.ErrCacheMiss {
		return apperr.NewCache("delete", "memcache delete failed", err)
	}
	return nil
}
