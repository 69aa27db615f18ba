// Package config loads per-binary configuration from environment variables,
// mirroring the prefixes and defaults of original_source's envy-based Rust
// configs (PG*, REDIS_*, SEND_*, LOKALISE_*).
package config

import (
	"fmt"

	"github.com/wavesplatform/push-notifications/internal/model"
	"github.com/wavesplatform/push-notifications/internal/waves"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s' (value: %v): %s", e.Field, e.Value, e.Message)
}

// Postgres is the system-of-record connection config, loaded from PG_HOST,
// PG_PORT, PG_DATABASE, PG_USER, PG_PASSWORD.
type Postgres struct {
	Host     string
	Port     uint16
	Database string
	User     string
	Password Secret
}

// DSN returns the pgx connection string.
func (c Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s", c.User, string(c.Password), c.Host, c.Port, c.Database)
}

func (c Postgres) String() string {
	return fmt.Sprintf("Postgres(server=%s:%d; database=%s; user=%s; password=***)", c.Host, c.Port, c.Database, c.User)
}

func loadPostgres() (Postgres, error) {
	host, err := requireEnv("PG_HOST")
	if err != nil {
		return Postgres{}, err
	}
	port, err := getEnvUint16("PG_PORT", 5432)
	if err != nil {
		return Postgres{}, err
	}
	database, err := requireEnv("PG_DATABASE")
	if err != nil {
		return Postgres{}, err
	}
	user, err := requireEnv("PG_USER")
	if err != nil {
		return Postgres{}, err
	}
	password, err := requireEnv("PG_PASSWORD")
	if err != nil {
		return Postgres{}, err
	}
	return Postgres{Host: host, Port: port, Database: database, User: user, Password: Secret(password)}, nil
}

// Lokalise is the translation-service client config, loaded with the
// LOKALISE_ prefix.
type Lokalise struct {
	Token     Secret
	ProjectID string
	APIURL    string
}

func loadLokalise() (Lokalise, error) {
	token, err := requireEnv("LOKALISE_TOKEN")
	if err != nil {
		return Lokalise{}, err
	}
	projectID, err := requireEnv("LOKALISE_PROJECT_ID")
	if err != nil {
		return Lokalise{}, err
	}
	apiURL := getEnv("LOKALISE_API_URL", "https://api.lokalise.com/api2")
	return Lokalise{Token: Secret(token), ProjectID: projectID, APIURL: apiURL}, nil
}

// PricesProcessor configures cmd/processor's blockchain-update ingestion
// side: gRPC source, assets/data HTTP collaborators, and localization.
type PricesProcessor struct {
	Postgres              Postgres
	Lokalise              Lokalise
	MetricsPort           uint16
	AssetsServiceURL      string
	DataServiceURL        string
	BlockchainUpdatesURL  string
	StartingHeight        *uint32 // nil means "resolve from the Data Service" (height of the matcher's latest exchange tx)
	MatcherAddress        model.Address
}

// LoadPricesProcessor reads PricesProcessor from the environment.
func LoadPricesProcessor() (*PricesProcessor, error) {
	pg, err := loadPostgres()
	if err != nil {
		return nil, err
	}
	lok, err := loadLokalise()
	if err != nil {
		return nil, err
	}
	metricsPort, err := getEnvUint16("METRICS_PORT", 9090)
	if err != nil {
		return nil, err
	}
	assetsURL, err := requireEnv("ASSETS_SERVICE_URL")
	if err != nil {
		return nil, err
	}
	dataURL, err := requireEnv("DATA_SERVICE_URL")
	if err != nil {
		return nil, err
	}
	blockchainURL, err := requireEnv("BLOCKCHAIN_UPDATES_URL")
	if err != nil {
		return nil, err
	}
	startingHeightRaw, err := getEnvUint32("STARTING_HEIGHT", 0)
	if err != nil {
		return nil, err
	}
	var startingHeight *uint32
	if startingHeightRaw != 0 {
		startingHeight = &startingHeightRaw
	}
	matcherRaw, err := requireEnv("MATCHER_ADDRESS")
	if err != nil {
		return nil, err
	}
	matcherAddress, err := waves.DecodeAddress(matcherRaw)
	if err != nil {
		return nil, ValidationError{Field: "MATCHER_ADDRESS", Value: matcherRaw, Message: err.Error()}
	}

	return &PricesProcessor{
		Postgres:             pg,
		Lokalise:             lok,
		MetricsPort:          metricsPort,
		AssetsServiceURL:     assetsURL,
		DataServiceURL:       dataURL,
		BlockchainUpdatesURL: blockchainURL,
		StartingHeight:       startingHeight,
		MatcherAddress:       matcherAddress,
	}, nil
}

func (c PricesProcessor) String() string {
	height := "none"
	if c.StartingHeight != nil {
		height = fmt.Sprintf("%d", *c.StartingHeight)
	}
	return fmt.Sprintf(
		"PricesProcessor(assets_service_url=%s; data_service_url=%s; blockchain_updates_url=%s; starting_height=%s; matcher_address=%s; %s)",
		c.AssetsServiceURL, c.DataServiceURL, c.BlockchainUpdatesURL, height, c.MatcherAddress.AsBase58String(), c.Postgres,
	)
}

// OrdersProcessor configures cmd/processor's Redis order-stream ingestion
// side.
type OrdersProcessor struct {
	Postgres         Postgres
	Lokalise         Lokalise
	MetricsPort      uint16
	AssetsServiceURL string
	RedisHostname    string
	RedisPort        uint16
	RedisUser        string
	RedisPassword    Secret
	RedisStreamName  string
	RedisGroupName   string
	RedisConsumer    string
	RedisBatchSize   uint32
}

// LoadOrdersProcessor reads OrdersProcessor from the environment.
func LoadOrdersProcessor() (*OrdersProcessor, error) {
	pg, err := loadPostgres()
	if err != nil {
		return nil, err
	}
	lok, err := loadLokalise()
	if err != nil {
		return nil, err
	}
	metricsPort, err := getEnvUint16("METRICS_PORT", 9090)
	if err != nil {
		return nil, err
	}
	assetsURL, err := requireEnv("ASSETS_SERVICE_URL")
	if err != nil {
		return nil, err
	}
	redisHost, err := requireEnv("REDIS_HOSTNAME")
	if err != nil {
		return nil, err
	}
	redisPort, err := getEnvUint16("REDIS_PORT", 6379)
	if err != nil {
		return nil, err
	}
	redisUser := getEnv("REDIS_USER", "default")
	redisPassword, err := requireEnv("REDIS_PASSWORD")
	if err != nil {
		return nil, err
	}
	streamName, err := requireEnv("REDIS_STREAM_NAME")
	if err != nil {
		return nil, err
	}
	groupName, err := requireEnv("REDIS_GROUP_NAME")
	if err != nil {
		return nil, err
	}
	consumerName, err := requireEnv("REDIS_CONSUMER_NAME")
	if err != nil {
		return nil, err
	}
	batchSize, err := getEnvUint32("REDIS_BATCH_SIZE", 100)
	if err != nil {
		return nil, err
	}

	return &OrdersProcessor{
		Postgres:         pg,
		Lokalise:         lok,
		MetricsPort:      metricsPort,
		AssetsServiceURL: assetsURL,
		RedisHostname:    redisHost,
		RedisPort:        redisPort,
		RedisUser:        redisUser,
		RedisPassword:    Secret(redisPassword),
		RedisStreamName:  streamName,
		RedisGroupName:   groupName,
		RedisConsumer:    consumerName,
		RedisBatchSize:   batchSize,
	}, nil
}

func (c OrdersProcessor) String() string {
	return fmt.Sprintf(
		"OrdersProcessor(assets_service_url=%s; redis=%s:%d; redis_user=%s; redis_password=***; stream=%s; group=%s; consumer=%s; batch_size=%d)",
		c.AssetsServiceURL, c.RedisHostname, c.RedisPort, c.RedisUser, c.RedisStreamName, c.RedisGroupName, c.RedisConsumer, c.RedisBatchSize,
	)
}

// Sender configures cmd/sender's delivery loop, loaded with the SEND_ prefix
// plus FCM_API_KEY.
type Sender struct {
	Postgres                           Postgres
	EmptyQueuePollPeriodMillis         uint32
	ExponentialBackoffInitialMillis    uint32
	ExponentialBackoffMultiplier       float32
	MaxAttempts                        uint8
	FCMAPIKey                          Secret
	ClickAction                        string
	DryRun                             bool
}

// LoadSender reads Sender from the environment.
func LoadSender() (*Sender, error) {
	pg, err := loadPostgres()
	if err != nil {
		return nil, err
	}
	pollPeriod, err := getEnvUint32("SEND_EMPTY_QUEUE_POLL_PERIOD_MILLIS", 5000)
	if err != nil {
		return nil, err
	}
	backoffInitial, err := getEnvUint32("SEND_EXPONENTIAL_BACKOFF_INITIAL_INTERVAL_MILLIS", 5000)
	if err != nil {
		return nil, err
	}
	backoffMultiplier, err := getEnvFloat32("SEND_EXPONENTIAL_BACKOFF_MULTIPLIER", 3.0)
	if err != nil {
		return nil, err
	}
	maxAttemptsRaw, err := getEnvUint32("SEND_MAX_ATTEMPTS", 5)
	if err != nil {
		return nil, err
	}
	fcmKey, err := requireEnv("FCM_API_KEY")
	if err != nil {
		return nil, err
	}
	clickAction := getEnv("SEND_CLICK_ACTION", "open")
	dryRun, err := getEnvBool("SEND_DRY_RUN", false)
	if err != nil {
		return nil, err
	}

	return &Sender{
		Postgres:                        pg,
		EmptyQueuePollPeriodMillis:      pollPeriod,
		ExponentialBackoffInitialMillis: backoffInitial,
		ExponentialBackoffMultiplier:    backoffMultiplier,
		MaxAttempts:                     uint8(maxAttemptsRaw),
		FCMAPIKey:                       Secret(fcmKey),
		ClickAction:                     clickAction,
		DryRun:                          dryRun,
	}, nil
}

func (c Sender) String() string {
	return fmt.Sprintf(
		"Sender(empty_queue_poll_period_ms=%d; backoff_initial_ms=%d; backoff_multiplier=%v; max_attempts=%d; fcm_api_key=***; click_action=%s; dry_run=%v)",
		c.EmptyQueuePollPeriodMillis, c.ExponentialBackoffInitialMillis, c.ExponentialBackoffMultiplier, c.MaxAttempts, c.ClickAction, c.DryRun,
	)
}

// API configures cmd/api's subscription/device HTTP surface.
type API struct {
	Postgres                            Postgres
	Port                                uint16
	MetricsPort                         uint16
	PoolConnectionTimeoutSec            uint32
	MaxSubscriptionsPerAddressPerPair   uint32
	MaxSubscriptionsPerAddressTotal     uint32
}

// LoadAPI reads API from the environment.
func LoadAPI() (*API, error) {
	pg, err := loadPostgres()
	if err != nil {
		return nil, err
	}
	port, err := getEnvUint16("PORT", 8080)
	if err != nil {
		return nil, err
	}
	metricsPort, err := getEnvUint16("METRICS_PORT", 9090)
	if err != nil {
		return nil, err
	}
	poolTimeout, err := getEnvUint32("POOL_CONNECTION_TIMEOUT_SEC", 5)
	if err != nil {
		return nil, err
	}
	perPair, err := getEnvUint32("MAX_SUBSCRIPTIONS_PER_ADDRESS_PER_PAIR", 10)
	if err != nil {
		return nil, err
	}
	total, err := getEnvUint32("MAX_SUBSCRIPTIONS_PER_ADDRESS_TOTAL", 50)
	if err != nil {
		return nil, err
	}

	return &API{
		Postgres:                          pg,
		Port:                              port,
		MetricsPort:                       metricsPort,
		PoolConnectionTimeoutSec:          poolTimeout,
		MaxSubscriptionsPerAddressPerPair: perPair,
		MaxSubscriptionsPerAddressTotal:   total,
	}, nil
}

func (c API) String() string {
	return fmt.Sprintf(
		"API(port=%d; metrics_port=%d; pool_connection_timeout_sec=%d; max_subscriptions_per_address_per_pair=%d; max_subscriptions_per_address_total=%d; %s)",
		c.Port, c.MetricsPort, c.PoolConnectionTimeoutSec, c.MaxSubscriptionsPerAddressPerPair, c.MaxSubscriptionsPerAddressTotal, c.Postgres,
	)
}
