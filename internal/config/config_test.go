package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db.internal", Port: "3306",
		User: "app", Password: "s3cret", DBName: "transit_backoffice",
	}

	assert.Equal(t,
		"app:s3cret@tcp(db.internal:3306)/transit_backoffice?charset=utf8mb4&parseTime=True&loc=Local",
		d.DSN())
}

func TestLoadDatabaseConfig_PoolDefaults(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "")
	t.Setenv("DB_MAX_IDLE_CONNS", "")
	t.Setenv("DB_CONN_MAX_LIFETIME_MIN", "")

	d := loadDatabaseConfig("dev")

	assert.Equal(t, 50, d.MaxOpenConns)
	assert.Equal(t, 10, d.MaxIdleConns)
	assert.Equal(t, 60, d.ConnMaxLifetimeMinutes)
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("POOL_TEST_VALUE", "25")
	assert.Equal(t, 25, getEnvInt("POOL_TEST_VALUE", 50))

	t.Setenv("POOL_TEST_VALUE", "not-a-number")
	assert.Equal(t, 50, getEnvInt("POOL_TEST_VALUE", 50))

	t.Setenv("POOL_TEST_VALUE", "-3")
	assert.Equal(t, 50, getEnvInt("POOL_TEST_VALUE", 50))

	assert.Equal(t, 50, getEnvInt("POOL_TEST_UNSET", 50))
}
