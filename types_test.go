package securesql

import (
	"database/sql"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 3306, cfg.Port)
	assert.Equal(t, "utf8mb4", cfg.Charset)
	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.ConnMaxLife)
}

func TestConfig_DSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "db.internal"
	cfg.Port = 3307
	cfg.Database = "app"
	cfg.Username = "svc"
	cfg.Password = "p@ss:word"

	dsn := cfg.DSN()
	assert.Contains(t, dsn, "svc:p@ss:word@tcp(db.internal:3307)/app")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "svc", parsed.User)
	assert.Equal(t, "p@ss:word", parsed.Passwd)
	assert.Equal(t, "db.internal:3307", parsed.Addr)
	assert.Equal(t, "app", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.Empty(t, parsed.TLSConfig)
}

func TestConfig_DSN_TLS(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TLS = true

	assert.Contains(t, cfg.DSN(), "tls=true")
}

func TestResult_Len(t *testing.T) {
	var nilResult *Result
	assert.Equal(t, 0, nilResult.Len())
	assert.Equal(t, 2, (&Result{Rows: []Row{{}, {}}}).Len())
}

func TestMySQLDriverRegistered(t *testing.T) {
	assert.Contains(t, sql.Drivers(), "mysql")
}
