package redis

import (
	"context"
	"sync"
	"time"

	"github.com/fakhrymubarak/weather-station/internal/config"
	redisv9 "github.com/redis/go-redis/v9"
)

var (
	client *redisv9.Client
	once   sync.Once
)

// Enabled reports whether a Redis address is configured.
func Enabled() bool {
	return config.GetRedisAddr() != ""
}

// NewClient connects to addr with short timeouts and no retries. The quota
// check sits in front of every lookup, so Redis must answer fast or not at all.
func NewClient(addr string) *redisv9.Client {
	return redisv9.NewClient(&redisv9.Options{
		Addr:                  addr,
		DialTimeout:           500 * time.Millisecond,
		ReadTimeout:           300 * time.Millisecond,
		WriteTimeout:          300 * time.Millisecond,
		MaxRetries:            -1,
		ContextTimeoutEnabled: true,
	})
}

// GetClient returns the shared client. Callers check Enabled first.
func GetClient() *redisv9.Client {
	once.Do(func() {
		client = NewClient(config.GetRedisAddr())
	})
	return client
}

// Ping checks that the configured Redis answers.
func Ping(ctx context.Context) error {
	return GetClient().Ping(ctx).Err()
}

// Close releases the shared client, if one was created.
func Close() error {
	if client == nil {
		return nil
	}
	return client.Close()
}

// ResetClientForTest resets the Redis client singleton. Use only in tests.
func ResetClientForTest() {
	once = sync.Once{}
	client = nil
}
