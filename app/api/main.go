package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/campustrade/goapi/base/ctx"
	"github.com/campustrade/goapi/base/database/mongoclient"
	"github.com/campustrade/goapi/base/database/redisclient"
	"github.com/campustrade/goapi/base/goroutine"
	"github.com/campustrade/goapi/base/log"
	"github.com/campustrade/goapi/base/metrics"
	bValidator "github.com/campustrade/goapi/base/validator"
	"github.com/campustrade/goapi/domain/keys"
	mmiddleware "github.com/campustrade/goapi/middleware"
	"github.com/campustrade/goapi/service/cache"
	"github.com/campustrade/goapi/service/cache/provider"
	"github.com/campustrade/goapi/service/cache/provider/compound"
	"github.com/campustrade/goapi/service/cache/provider/primitive"
	redisProvider "github.com/campustrade/goapi/service/cache/provider/redis"
	"github.com/campustrade/goapi/service/query"
	"github.com/campustrade/goapi/service/redis"
	hc_delivery "github.com/campustrade/goapi/stores/healthcheck/delivery/http"
	hc_repo "github.com/campustrade/goapi/stores/healthcheck/repository"
	hc_usecase "github.com/campustrade/goapi/stores/healthcheck/usecase"
	listing_delivery "github.com/campustrade/goapi/stores/listing/delivery/http"
	listing_repository "github.com/campustrade/goapi/stores/listing/repository"
	listing_usecase "github.com/campustrade/goapi/stores/listing/usecase"
)

func init() {
	viper.SetConfigType("yaml")
	viper.SetConfigFile(`infra/configs/config.yaml`)
	err := viper.ReadInConfig()
	if err != nil {
		panic(err)
	}

	if viper.GetBool(`debug`) {
		log.Log().Info("Service RUN on DEBUG mode")
	}
}

func main() {
	// init echo
	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{}))
	e.Use(middleware.RequestID())
	middL := mmiddleware.InitMiddleware()
	e.Use(middL.ResponseLogger())
	e.Use(middL.AddContext())
	e.Use(middleware.CORS())
	e.Validator = bValidator.NewCustomValidator(validator.New())

	context := ctx.Background()

	// init mongo client
	context.Info("init mongo")
	uri := viper.GetString("mongo.uri")
	authDBName := viper.GetString("mongo.authDBName")
	dbName := viper.GetString("mongo.dbName")
	enableSSL := viper.GetBool("mongo.enableSSL")
	checkIndex := viper.GetBool("mongo.checkIndex")
	mongoClient := mongoclient.MustConnectMongoClient(uri, authDBName, dbName, enableSSL, true, 2)
	q := query.New(mongoClient, checkIndex)

	// init redis service
	context.Info("init redis cache")
	redisCacheName := viper.GetString("redis_cache.name")
	redisCacheURI := viper.GetString("redis_cache.uri")
	redisCachePwd := viper.GetString("redis_cache.password")
	redisCachePoolMultiplier := viper.GetFloat64("redis_cache.poolMultiplier")
	redisCachePool := redisclient.MustConnectRedis(redisCacheURI, redisCachePwd, redisclient.RedisParam{
		PoolMultiplier: redisCachePoolMultiplier,
		Retry:          true,
	})
	redisCache := redis.New(redisCacheName, metrics.New(redisCacheName), &redis.Pools{
		Src: redisCachePool,
	})

	mmiddleware.SetupCache(redisCache)

	statsCache := cache.New(cache.ServiceConfig{
		Ttl: viper.GetDuration("cache.statsTtl"),
		Pfx: keys.PfxListingStats,
		Cache: compound.NewCompound([]provider.Provider{
			primitive.NewPrimitive(keys.PfxListingStats, 16),
			redisProvider.NewRedis(redisCache),
		}),
	})

	// construct repository, usecase and delivery
	hcRepo := hc_repo.New(mongoClient, redisCache)
	listingRepo := listing_repository.NewListingRepo(q)

	hc := hc_usecase.New(hcRepo)
	listingUC := listing_usecase.New(&listing_usecase.ListingUseCaseCfg{
		ListingRepo: listingRepo,
		StatsCache:  statsCache,
	})

	hc_delivery.New(e, hc)
	listing_delivery.New(e, listingUC)

	goroutine.RecoverableGo(func() {
		if err := e.Start(viper.GetString("server.address")); err != nil && err != http.ErrServerClosed {
			log.Log().WithField("err", err).Error("shutting down the server")
		}
	})

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Log().WithField("signal", sig).Info("received signal")
	shutdownCtx, cancel := ctx.WithTimeout(context, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Log().WithField("err", err).Error("shutting down the server")
	} else {
		log.Log().Info("shutdown server successfully")
	}
}
