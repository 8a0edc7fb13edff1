package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/yr12345678/piers-rugyard-auctions/base/clock"
	"github.com/yr12345678/piers-rugyard-auctions/base/ctx"
	"github.com/yr12345678/piers-rugyard-auctions/base/database/mongoclient"
	"github.com/yr12345678/piers-rugyard-auctions/base/database/redisclient"
	"github.com/yr12345678/piers-rugyard-auctions/base/env"
	"github.com/yr12345678/piers-rugyard-auctions/base/log"
	"github.com/yr12345678/piers-rugyard-auctions/base/metrics"
	bValidator "github.com/yr12345678/piers-rugyard-auctions/base/validator"
	"github.com/yr12345678/piers-rugyard-auctions/domain"
	"github.com/yr12345678/piers-rugyard-auctions/domain/auction"
	"github.com/yr12345678/piers-rugyard-auctions/domain/keys"
	"github.com/yr12345678/piers-rugyard-auctions/domain/locker"
	mmiddleware "github.com/yr12345678/piers-rugyard-auctions/middleware"
	"github.com/yr12345678/piers-rugyard-auctions/service/cache"
	"github.com/yr12345678/piers-rugyard-auctions/service/cache/provider"
	"github.com/yr12345678/piers-rugyard-auctions/service/cache/provider/primitive"
	redisCache "github.com/yr12345678/piers-rugyard-auctions/service/cache/provider/redis"
	"github.com/yr12345678/piers-rugyard-auctions/service/notifier"
	"github.com/yr12345678/piers-rugyard-auctions/service/query"
	"github.com/yr12345678/piers-rugyard-auctions/service/redis"
	"github.com/yr12345678/piers-rugyard-auctions/service/stream"
	"github.com/yr12345678/piers-rugyard-auctions/service/swappool"
	auction_delivery "github.com/yr12345678/piers-rugyard-auctions/stores/auction/delivery/http"
	auction_repository "github.com/yr12345678/piers-rugyard-auctions/stores/auction/repository"
	auction_usecase "github.com/yr12345678/piers-rugyard-auctions/stores/auction/usecase"
	auth_delivery "github.com/yr12345678/piers-rugyard-auctions/stores/auth/delivery/http"
	auth_middleware "github.com/yr12345678/piers-rugyard-auctions/stores/auth/delivery/http/middleware"
	auth_usecase "github.com/yr12345678/piers-rugyard-auctions/stores/auth/usecase"
	hc_delivery "github.com/yr12345678/piers-rugyard-auctions/stores/healthcheck/delivery/http"
	hc_repo "github.com/yr12345678/piers-rugyard-auctions/stores/healthcheck/repository"
	hc_usecase "github.com/yr12345678/piers-rugyard-auctions/stores/healthcheck/usecase"
	locker_delivery "github.com/yr12345678/piers-rugyard-auctions/stores/locker/delivery/http"
	locker_repository "github.com/yr12345678/piers-rugyard-auctions/stores/locker/repository"
	locker_usecase "github.com/yr12345678/piers-rugyard-auctions/stores/locker/usecase"
)

const streamPath = "/auction/stream"

func main() {
	v, err := loadConfig(os.Args[1:])
	if err != nil {
		log.Log().WithField("err", err).Panic("loadConfig failed")
	}
	if err := log.Init(v.GetString("log.level"), v.GetBool("log.development")); err != nil {
		log.Log().WithField("err", err).Panic("log.Init failed")
	}
	defer log.Sync()
	// metrics reads the agent host from the global viper
	viper.Set("datadog_host", v.GetString("datadog_host"))

	appName := env.Or(env.AppName(), v.GetString("app_name"))
	context := ctx.WithValues(ctx.Background(), map[string]interface{}{
		"app": appName,
		"env": env.Or(env.EnvName(), v.GetString("env_name")),
	})

	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == streamPath
		},
	}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware(metrics.New("http"))
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(bValidator.New())

	var (
		q           query.Mongo
		mongoClient *mongoclient.Client
		redisSvc    redis.Service
	)

	if uri := v.GetString("mongo.uri"); uri != "" {
		context.Info("init mongo")
		mongoClient = mongoclient.MustConnectMongoClient(mongoclient.Config{
			URI:                uri,
			AuthDBName:         v.GetString("mongo.authDBName"),
			DBName:             v.GetString("mongo.dbName"),
			SSL:                v.GetBool("mongo.enableSSL"),
			SetSafe:            true,
			PoolSizeMultiplier: 2,
		})
		q = query.New(mongoClient, metrics.New("mongo"), v.GetBool("mongo.checkIndex"))
		if err := q.EnsureIndexes(context, auction_repository.Indexes...); err != nil {
			context.WithField("err", err).Panic("EnsureIndexes failed")
		}
	}

	if uri := v.GetString("redis.uri"); uri != "" {
		context.Info("init redis")
		name := v.GetString("redis.name")
		pool := redisclient.MustConnectRedis(uri, v.GetString("redis.password"), redisclient.RedisParam{
			PoolMultiplier: v.GetFloat64("redis.poolMultiplier"),
			Retry:          true,
		})
		redisSvc = redis.New(name, metrics.New(name), &redis.Pools{
			Src: pool,
		})
	}

	params, err := auctionParams(v)
	if err != nil {
		context.WithField("err", err).Panic("auctionParams failed")
	}
	poolCfgs, err := poolConfigs(v, params)
	if err != nil {
		context.WithField("err", err).Panic("poolConfigs failed")
	}
	poolMetrics := metrics.New("swappool")
	pools := swappool.NewRegistry()
	for _, cfg := range poolCfgs {
		pool, err := swappool.NewPool(cfg, poolMetrics)
		if err != nil {
			context.WithFields(log.Fields{"err": err, "pool": cfg.Address}).Panic("swappool.NewPool failed")
		}
		pools.Register(pool.Address(), pool)
	}

	// repositories
	var (
		lockerRepo  locker.Repository = locker_repository.NewMemory()
		stateRepo   auction.StateRepo = auction_repository.NewMemoryState()
		archiveRepo                   = auction_repository.NewMemoryArchive()
		hub                           = stream.NewHub(v.GetInt("stream.buffer"), metrics.New("stream"))
		publishers                    = []auction.Publisher{notifier.NewLog(), hub}
		httpCache   provider.Provider = primitive.NewPrimitive("httpCacheMiddleware", v.GetInt("cache.sizeMB"))
	)
	if q != nil {
		stateRepo = auction_repository.NewMongoState(q)
		archiveRepo = auction_repository.NewMongoArchive(q)
		publishers = append(publishers, notifier.NewMongo(q))
	}
	if redisSvc != nil {
		lockerRepo = locker_repository.NewRedis(redisSvc)
		publishers = append(publishers, notifier.NewRedis(redisSvc, appName))
		httpCache = redisCache.NewRedis(redisSvc)
	}
	if url := v.GetString("nats.url"); url != "" {
		conn, err := notifier.ConnectNats(url, appName)
		if err != nil {
			context.WithField("err", err).Panic("notifier.ConnectNats failed")
		}
		defer conn.Drain()
		publishers = append(publishers, notifier.NewNats(conn, v.GetString("nats.subject")))
	}
	codec, err := cache.CBOR()
	if err != nil {
		context.WithField("err", err).Panic("cache.CBOR failed")
	}
	archiveRepo = auction_repository.NewCachedArchive(archiveRepo, cache.New(cache.ServiceConfig{
		Ttl:   24 * time.Hour,
		Pfx:   keys.PfxArchive,
		Cache: primitive.NewPrimitive(keys.PfxArchive, v.GetInt("cache.sizeMB")),
		Codec: codec,
	}))

	// usecases
	owners := ownerAddresses(v)
	authorizer := auth_usecase.NewAuthorizer(owners)
	auth := auth_usecase.New(v.GetString("jwt.secret"), v.GetString("auth.signingMsg"))
	lockerUC := locker_usecase.New(&locker_usecase.LockerUseCaseCfg{
		Repo:       lockerRepo,
		Authorizer: authorizer,
		Clock:      clock.System(),
		Metrics:    metrics.New("locker"),
	})
	auctionUC, err := auction_usecase.New(context, &auction_usecase.AuctionUseCaseCfg{
		Params:      params,
		Clock:       clock.System(),
		Authorizer:  authorizer,
		Locker:      lockerUC,
		Pools:       pools,
		Publisher:   notifier.NewMulti(publishers...),
		StateRepo:   stateRepo,
		ArchiveRepo: archiveRepo,
		Metrics:     metrics.New("auction"),
	})
	if err != nil {
		context.WithField("err", err).Panic("auction_usecase.New failed")
	}

	hcRepo := hc_repo.New(mongoClient, redisSvc)

	authMiddleware := auth_middleware.New(auth, owners)
	hc_delivery.New(e, hc_usecase.New(hcRepo, metrics.New("healthcheck")))
	auth_delivery.New(e, auth)
	auction_delivery.New(e, auctionUC, authMiddleware, cache.New(cache.ServiceConfig{
		Ttl:   time.Hour,
		Pfx:   "httpCacheMiddleware",
		Cache: httpCache,
	}))
	locker_delivery.New(e, lockerUC, authMiddleware)
	e.GET(streamPath, hub.Serve)
	registerDocs(e, appName, v.GetString("version"))

	keeperCtx, stopKeeper := ctx.WithCancel(context)
	defer stopKeeper()
	var keeperDone <-chan struct{}
	if account := v.GetString("keeper.account"); account != "" {
		keeperDone = auction_usecase.NewKeeper(&auction_usecase.KeeperCfg{
			UseCase:      auctionUC,
			Locker:       lockerUC,
			Clock:        clock.System(),
			Account:      domain.Address(account).ToLower(),
			Interval:     v.GetDuration("keeper.interval"),
			Attempts:     v.GetInt("keeper.attempts"),
			BackoffStart: v.GetDuration("keeper.backoffStart"),
			BackoffLimit: v.GetDuration("keeper.backoffLimit"),
		}).Start(keeperCtx)
		context.WithField("account", account).Info("settlement keeper started")
	}

	go func() {
		if err := e.Start(v.GetString("http.addr")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	stopKeeper()
	if keeperDone != nil {
		<-keeperDone
	}
	ctx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
