package cache

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/service/cache/provider"
)

var ErrNotFound = errors.New("cache miss")

// OneTimeGetter loads the value on a miss. It must return a pointer.
type OneTimeGetter func() (interface{}, error)

// Codec turns cached values into provider bytes and back.
type Codec struct {
	Encode func(v interface{}) ([]byte, error)
	Decode func(data []byte, v interface{}) error
}

// JSON is the codec used when ServiceConfig leaves Codec empty.
var JSON = Codec{Encode: json.Marshal, Decode: json.Unmarshal}

func (cd Codec) orJSON() Codec {
	if cd.Encode == nil || cd.Decode == nil {
		return JSON
	}
	return cd
}

// Service reads and writes typed values under Pfx on a byte provider.
type Service interface {
	GetByFunc(c ctx.Ctx, key string, container interface{}, getter OneTimeGetter) error
	Get(c ctx.Ctx, key string, container interface{}) error
	Set(c ctx.Ctx, key string, value interface{}) error
	Del(c ctx.Ctx, key string) error
}

type ServiceConfig struct {
	Ttl   time.Duration
	Pfx   string
	Cache provider.Provider
	Codec Codec
}
