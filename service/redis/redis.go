package redis

import (
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/campustrade/goapi/base/ctx"
)

const (
	// Forever means the key has no expiration
	Forever = time.Duration(-1)
)

var (
	// ErrNotFound is returned when the key does not exist
	ErrNotFound = redis.ErrNil

	// ErrNoTTL is returned by TTL when the key has no associated expire
	ErrNoTTL = redis.Error("key has no ttl")

	// ErrGapTime is returned when no pool is available for the command
	ErrGapTime = redis.Error("in gap time, no pool available")
)

// Service provides interface for redis operations
type Service interface {
	// Get gets value of the key, return ErrNotFound if key does not exist
	Get(context ctx.Ctx, key string) (val []byte, err error)

	// Set sets value to the key with expiration, pass Forever to skip expiration
	Set(context ctx.Ctx, key string, val []byte, expire time.Duration) error

	// SetNX sets value to the key only if the key does not exist
	SetNX(context ctx.Ctx, key string, val []byte, expire time.Duration) error

	// Del deletes keys and returns the number of keys removed
	Del(context ctx.Ctx, ks ...string) (int, error)

	// Exists checks existence of the key
	Exists(context ctx.Ctx, key string) (bool, error)

	// Incrby increases the key by val
	Incrby(context ctx.Ctx, key string, val int) (int64, error)

	// TTL returns remaining seconds of the key, ErrNotFound if key does
	// not exist and ErrNoTTL if key has no expire
	TTL(context ctx.Ctx, key string) (int, error)
}
