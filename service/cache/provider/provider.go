package provider

import (
	"errors"
	"time"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
)

var (
	ErrNotFound = errors.New("Cache not found")
)

// Provider is the raw byte cache under cache.Service.
// A zero ttl keeps the entry until it is evicted.
type Provider interface {
	Get(c ctx.Ctx, key string) ([]byte, time.Duration, error)
	Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error
	Del(c ctx.Ctx, key string) error
}
