package config_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-ledger/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StoragePostgres, cfg.Storage.Driver)
	assert.True(t, cfg.Ledger.DisposalBoardThreshold.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, "SYSTEM", cfg.Ledger.SystemPartnerCode)
	assert.Equal(t, 30*time.Second, cfg.Redis.LockTTL)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
	assert.Equal(t, int32(2), cfg.DB.MinConns)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("LEDGER_DISPOSAL_BOARD_THRESHOLD", "2500.50")
	t.Setenv("LEDGER_SYSTEM_PARTNER_CODE", "SIS")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("LOCK_TTL_SECONDS", "5")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "2500.5", cfg.Ledger.DisposalBoardThreshold.String())
	assert.Equal(t, "SIS", cfg.Ledger.SystemPartnerCode)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 5*time.Second, cfg.Redis.LockTTL)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_RechazaValoresInvalidos(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("STORAGE_DRIVER", "mongo")
	_, err := config.Load()
	assert.Error(t, err)

	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("LEDGER_DISPOSAL_BOARD_THRESHOLD", "mucho")
	_, err = config.Load()
	assert.Error(t, err)

	t.Setenv("LEDGER_DISPOSAL_BOARD_THRESHOLD", "100")
	t.Setenv("DB_MIN_CONNS", "30")
	_, err = config.Load()
	assert.Error(t, err, "el mínimo de conexiones no puede superar al máximo")
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "ledger", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/ledger?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
