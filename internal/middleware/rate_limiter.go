package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fakhrymubarak/weather-station/internal/config"
	"github.com/fakhrymubarak/weather-station/internal/redis"
	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrQuotaExceeded is returned instead of sending a request the quota does not allow.
var ErrQuotaExceeded = errors.New("request quota for this API key exhausted, try again in a minute")

// Limiter decides whether one more outbound request may be sent.
type Limiter interface {
	Allow(ctx context.Context) bool
}

// LocalLimiter is a token bucket private to this process.
type LocalLimiter struct {
	limiter *rate.Limiter
}

// NewLocalLimiter allows perMinute requests per minute with the given burst.
func NewLocalLimiter(perMinute float64, burst int) *LocalLimiter {
	return &LocalLimiter{limiter: rate.NewLimiter(rate.Limit(perMinute/60.0), burst)}
}

func (l *LocalLimiter) Allow(context.Context) bool {
	return l.limiter.Allow()
}

// redisCheckTimeout bounds the quota check so a stuck Redis cannot eat the lookup's deadline.
const redisCheckTimeout = 300 * time.Millisecond

// RedisLimiter counts requests in one-minute windows shared by every process
// using the same API key. Redis failures let the request through.
type RedisLimiter struct {
	client    redisv9.Cmdable
	keyPrefix string
	perMinute int64
	timeout   time.Duration
	now       func() time.Time
	logger    *zap.SugaredLogger
}

func NewRedisLimiter(client redisv9.Cmdable, apiKey string, perMinute int64) *RedisLimiter {
	sum := sha256.Sum256([]byte(apiKey))
	return &RedisLimiter{
		client:    client,
		keyPrefix: "quota:" + hex.EncodeToString(sum[:])[:16],
		perMinute: perMinute,
		timeout:   redisCheckTimeout,
		now:       time.Now,
		logger:    config.GetLogger(),
	}
}

func (l *RedisLimiter) windowKey() string {
	return fmt.Sprintf("%s:%d", l.keyPrefix, l.now().Unix()/60)
}

func (l *RedisLimiter) Allow(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	key := l.windowKey()
	var count *redisv9.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redisv9.Pipeliner) error {
		count = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, 2*time.Minute)
		return nil
	})
	if err != nil {
		l.logger.Warnw("Shared quota unavailable, allowing request", "error", err)
		return true
	}
	return count.Val() <= l.perMinute
}

type chain []Limiter

// Chain allows a request only if every limiter does, consulting them in order
// and stopping at the first refusal.
func Chain(limiters ...Limiter) Limiter {
	return chain(limiters)
}

func (c chain) Allow(ctx context.Context) bool {
	for _, l := range c {
		if !l.Allow(ctx) {
			return false
		}
	}
	return true
}

// NewLimiter builds the configured quota for apiKey: always the local bucket,
// plus the shared Redis window when redis.addr is set.
func NewLimiter(apiKey string) Limiter {
	perMinute, burst := config.GetRateLimiterConfig()
	limiters := []Limiter{NewLocalLimiter(perMinute, burst)}
	if redis.Enabled() {
		limiters = append(limiters, NewRedisLimiter(redis.GetClient(), apiKey, config.GetSharedQuotaPerMinute()))
	}
	return Chain(limiters...)
}

// RateLimitTransport is an http.RoundTripper that refuses requests the Limiter does not allow.
type RateLimitTransport struct {
	Base    http.RoundTripper
	Limiter Limiter
}

func (t *RateLimitTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Limiter != nil && !t.Limiter.Allow(req.Context()) {
		if req.Body != nil {
			_ = req.Body.Close()
		}
		return nil, ErrQuotaExceeded
	}
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
