package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setPostgresEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PG_HOST", "localhost")
	t.Setenv("PG_DATABASE", "push")
	t.Setenv("PG_USER", "push")
	t.Setenv("PG_PASSWORD", "secret")
}

func TestLoadAPI_Defaults(t *testing.T) {
	setPostgresEnv(t)

	cfg, err := LoadAPI()
	require.NoError(t, err)
	assert.EqualValues(t, 8080, cfg.Port)
	assert.EqualValues(t, 9090, cfg.MetricsPort)
	assert.EqualValues(t, 5, cfg.PoolConnectionTimeoutSec)
	assert.EqualValues(t, 10, cfg.MaxSubscriptionsPerAddressPerPair)
	assert.EqualValues(t, 50, cfg.MaxSubscriptionsPerAddressTotal)
	assert.EqualValues(t, 5432, cfg.Postgres.Port)
}

func TestLoadAPI_MissingRequired(t *testing.T) {
	_, err := LoadAPI()
	require.Error(t, err)
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "PG_HOST", verr.Field)
}

func TestLoadSender_Defaults(t *testing.T) {
	setPostgresEnv(t)
	t.Setenv("FCM_API_KEY", "fcm-key")

	cfg, err := LoadSender()
	require.NoError(t, err)
	assert.EqualValues(t, 5000, cfg.EmptyQueuePollPeriodMillis)
	assert.EqualValues(t, 5000, cfg.ExponentialBackoffInitialMillis)
	assert.EqualValues(t, 3.0, cfg.ExponentialBackoffMultiplier)
	assert.EqualValues(t, 5, cfg.MaxAttempts)
	assert.Equal(t, "open", cfg.ClickAction)
	assert.False(t, cfg.DryRun)
}

func TestLoadPricesProcessor_StartingHeightZeroMeansUnset(t *testing.T) {
	setPostgresEnv(t)
	t.Setenv("LOKALISE_TOKEN", "tok")
	t.Setenv("LOKALISE_PROJECT_ID", "proj")
	t.Setenv("ASSETS_SERVICE_URL", "http://assets")
	t.Setenv("DATA_SERVICE_URL", "http://data")
	t.Setenv("BLOCKCHAIN_UPDATES_URL", "grpc://blockchain")
	t.Setenv("MATCHER_ADDRESS", "3PGSLWrfGDWJ6dEKZFxaANTX8mVjKoHyytC")
	t.Setenv("STARTING_HEIGHT", "0")

	cfg, err := LoadPricesProcessor()
	require.NoError(t, err)
	assert.Nil(t, cfg.StartingHeight)
}

func TestLoadPricesProcessor_StartingHeightSet(t *testing.T) {
	setPostgresEnv(t)
	t.Setenv("LOKALISE_TOKEN", "tok")
	t.Setenv("LOKALISE_PROJECT_ID", "proj")
	t.Setenv("ASSETS_SERVICE_URL", "http://assets")
	t.Setenv("DATA_SERVICE_URL", "http://data")
	t.Setenv("BLOCKCHAIN_UPDATES_URL", "grpc://blockchain")
	t.Setenv("MATCHER_ADDRESS", "3PGSLWrfGDWJ6dEKZFxaANTX8mVjKoHyytC")
	t.Setenv("STARTING_HEIGHT", "12345")

	cfg, err := LoadPricesProcessor()
	require.NoError(t, err)
	require.NotNil(t, cfg.StartingHeight)
	assert.EqualValues(t, 12345, *cfg.StartingHeight)
}

func TestLoadOrdersProcessor_Defaults(t *testing.T) {
	setPostgresEnv(t)
	t.Setenv("LOKALISE_TOKEN", "tok")
	t.Setenv("LOKALISE_PROJECT_ID", "proj")
	t.Setenv("ASSETS_SERVICE_URL", "http://assets")
	t.Setenv("REDIS_HOSTNAME", "localhost")
	t.Setenv("REDIS_PASSWORD", "redis-pass")
	t.Setenv("REDIS_STREAM_NAME", "orders")
	t.Setenv("REDIS_GROUP_NAME", "push-notifications")
	t.Setenv("REDIS_CONSUMER_NAME", "consumer-1")

	cfg, err := LoadOrdersProcessor()
	require.NoError(t, err)
	assert.EqualValues(t, 6379, cfg.RedisPort)
	assert.Equal(t, "default", cfg.RedisUser)
	assert.EqualValues(t, 100, cfg.RedisBatchSize)
}
