package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/database/mongoclient"
	hcdomain "github.com/yr12345678/piers-rugyard-auctions/domain/healthcheck"
	"github.com/yr12345678/piers-rugyard-auctions/domain/keys"
	"github.com/yr12345678/piers-rugyard-auctions/service/redis"
)

const pingTimeout = 2 * time.Second

type impl struct {
	mgoClient *mongoclient.Client
	redis     redis.Service
}

// New pings the configured backends. Either may be nil when the process runs
// on the in-memory stores.
func New(
	mgoClient *mongoclient.Client,
	redis redis.Service,
) hcdomain.HealthCheckRepo {
	return &impl{
		mgoClient: mgoClient,
		redis:     redis,
	}
}

func (im *impl) Ping(c ctx.Ctx) map[string]error {
	res := map[string]error{}
	if im.mgoClient != nil {
		tc, cancel := ctx.WithTimeout(c, pingTimeout)
		res["mongo"] = im.mgoClient.Ping(tc, readpref.Primary())
		cancel()
	}
	if im.redis != nil {
		tc, cancel := ctx.WithTimeout(c, pingTimeout)
		res["redis"] = im.redis.Set(tc, keys.RedisKey(keys.PfxHealthCheck, "testset"), []byte("1"), 30*time.Second)
		cancel()
	}
	return res
}
