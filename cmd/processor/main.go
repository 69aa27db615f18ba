// Command processor runs both event ingesters: the blockchain-updates gRPC
// stream (price-threshold notifications) and the matcher's Redis order-update
// stream (order-execution notifications). Both feed a single processing.
// Dispatcher over a bounded channel, so one goroutine alone ever writes to
// the database, matching the original's two binaries
// (push-notifications-processor, push-notifications-processor-prices) merged
// into one Go process sharing a pool, a translation cache, and one
// mpsc-style event queue.
package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wavesplatform/push-notifications/internal/bootstrap"
	"github.com/wavesplatform/push-notifications/internal/config"
	"github.com/wavesplatform/push-notifications/internal/database"
	"github.com/wavesplatform/push-notifications/internal/infrastructure/health"
	"github.com/wavesplatform/push-notifications/internal/processing"
	"github.com/wavesplatform/push-notifications/internal/processing/asset"
	"github.com/wavesplatform/push-notifications/internal/processing/localize"
	"github.com/wavesplatform/push-notifications/internal/source/blockchain"
	"github.com/wavesplatform/push-notifications/internal/source/orders"
)

func main() {
	app := bootstrap.NewApp(getLogLevel())
	logger := app.Logger

	ctx := context.Background()

	pricesCfg, err := config.LoadPricesProcessor()
	if err != nil {
		logger.Fatal("load prices processor config", "error", err)
	}
	ordersCfg, err := config.LoadOrdersProcessor()
	if err != nil {
		logger.Fatal("load orders processor config", "error", err)
	}
	logger.Info("loaded configuration", "prices", pricesCfg.String(), "orders", ordersCfg.String())

	pool, err := database.NewPool(ctx, pricesCfg.Postgres)
	if err != nil {
		logger.Fatal("open postgres pool", "error", err)
	}
	defer pool.Close()

	if err := database.ApplySchema(ctx, pool); err != nil {
		logger.Fatal("apply schema", "error", err)
	}

	translations, err := localize.FetchTranslations(ctx, pricesCfg.Lokalise.APIURL, string(pricesCfg.Lokalise.Token), pricesCfg.Lokalise.ProjectID)
	if err != nil {
		logger.Fatal("fetch lokalise translations", "error", err)
	}
	translationMap := localize.BuildTranslationMap(translations)
	if !translationMap.IsComplete() {
		logger.Warn("translation set is incomplete: some key/language combinations are missing")
	}
	localizer := localize.NewLocalizer(translationMap)

	assets := asset.NewRemoteGateway(pricesCfg.AssetsServiceURL)
	eventProcessor := processing.NewEventProcessor(pool, assets, localizer)
	dispatcher := processing.NewDispatcher(eventProcessor)

	blockchainCfg := blockchain.Config{
		BlockchainUpdatesURL: pricesCfg.BlockchainUpdatesURL,
		DataServiceURL:       pricesCfg.DataServiceURL,
		MatcherAddress:       pricesCfg.MatcherAddress,
		StartingHeight:       toInt32Ptr(pricesCfg.StartingHeight),
	}
	blockchainSource, err := blockchain.New(ctx, blockchainCfg, dispatcher, assets, logger)
	if err != nil {
		logger.Fatal("start blockchain source", "error", err)
	}
	defer blockchainSource.Close()

	redisOpts := &redis.Options{
		Addr:     ordersCfg.RedisHostname + ":" + portString(ordersCfg.RedisPort),
		Username: ordersCfg.RedisUser,
		Password: string(ordersCfg.RedisPassword),
	}
	ordersSource, err := orders.New(ctx, redisOpts, orders.StreamConfig{
		StreamName:   ordersCfg.RedisStreamName,
		GroupName:    ordersCfg.RedisGroupName,
		ConsumerName: ordersCfg.RedisConsumer,
		BatchMaxSize: int64(ordersCfg.RedisBatchSize),
	}, dispatcher, logger)
	if err != nil {
		logger.Fatal("start orders source", "error", err)
	}
	defer ordersSource.Close()

	redisPing := redis.NewClient(redisOpts)
	defer redisPing.Close()

	monitor := health.NewHealthManager(logger)
	monitor.Register("postgres", func() error { return pool.Ping(ctx) })
	monitor.Register("redis", func() error { return redisPing.Ping(ctx).Err() })
	reporter := bootstrap.NewHealthReporter(monitor, 30*time.Second, logger)

	if err := app.Run(dispatcher, runnerFunc(blockchainSource.Run), runnerFunc(ordersSource.Run), reporter); err != nil {
		os.Exit(1)
	}
}

// runnerFunc adapts a plain Run(ctx) error function to bootstrap.Runner.
type runnerFunc func(ctx context.Context) error

func (f runnerFunc) Run(ctx context.Context) error { return f(ctx) }

func toInt32Ptr(v *uint32) *int32 {
	if v == nil {
		return nil
	}
	h := int32(*v)
	return &h
}

func portString(p uint16) string {
	return strconv.Itoa(int(p))
}

func getLogLevel() string {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		return v
	}
	return "INFO"
}
