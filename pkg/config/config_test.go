package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "grocery-pos", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.False(t, cfg.DB.Enabled())
	assert.Empty(t, cfg.Redis.Addr)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "Customer", cfg.Checkout.DefaultCustomerName)
	assert.Equal(t, 20, cfg.Checkout.RecentOrdersLimit)
}

func TestLoad_DesdeEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "pos")
	t.Setenv("DB_PASSWORD", "p@ss word")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("RECENT_ORDERS_LIMIT", "50")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.DB.Enabled())
	assert.Equal(t, "postgres://pos:p%40ss%20word@db:6543/grocery_pos?sslmode=disable", cfg.DB.ConnectionString())
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 50, cfg.Checkout.RecentOrdersLimit)
}

func TestLoad_DatabaseURLTienePrioridad(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@h:5432/x")
	t.Setenv("DB_HOST", "ignored")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@h:5432/x", cfg.DB.ConnectionString())
}

func TestLoad_ProductionSinSecretFalla(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_LimiteOrdenesFueraDeRango(t *testing.T) {
	t.Setenv("RECENT_ORDERS_LIMIT", "500")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_StoreTimezone(t *testing.T) {
	t.Setenv("STORE_TIMEZONE", "Asia/Kolkata")
	t.Setenv("STORE_NAME", "Kirana Central")

	cfg, err := Load()
	require.NoError(t, err)
	loc, err := cfg.Store.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", loc.String())
	assert.Equal(t, "Kirana Central", cfg.Store.Name)

	t.Setenv("STORE_TIMEZONE", "Mars/Olympus")
	_, err = Load()
	assert.Error(t, err)
}
