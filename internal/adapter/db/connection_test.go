package db

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"

	"taskmanager/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		DbHost:         "db",
		DbPort:         "3306",
		DbUser:         "tasks",
		DbPassword:     "secret",
		DbName:         "task_manager",
		DbParams:       "charset=utf8mb4",
		DbTimeout:      3 * time.Second,
		DbReadTimeout:  10 * time.Second,
		DbWriteTimeout: 10 * time.Second,
	}
}

func TestBuildDSN_WithDatabase(t *testing.T) {
	dsn, err := BuildDSN(testConfig(), true)
	require.NoError(t, err)

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	require.Equal(t, "tasks", parsed.User)
	require.Equal(t, "secret", parsed.Passwd)
	require.Equal(t, "db:3306", parsed.Addr)
	require.Equal(t, "task_manager", parsed.DBName)
	require.True(t, parsed.ParseTime)
	require.Equal(t, time.UTC, parsed.Loc)
	require.Equal(t, 3*time.Second, parsed.Timeout)
	require.Equal(t, "'STRICT_ALL_TABLES,NO_ENGINE_SUBSTITUTION'", parsed.Params["sql_mode"])
	require.Equal(t, "'+00:00'", parsed.Params["time_zone"])
}

func TestBuildDSN_WithoutDatabase(t *testing.T) {
	dsn, err := BuildDSN(testConfig(), false)
	require.NoError(t, err)

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	require.Empty(t, parsed.DBName)
}

func TestBuildDSN_KeepsExplicitSQLMode(t *testing.T) {
	cfg := testConfig()
	cfg.DbParams = "sql_mode=%27TRADITIONAL%27"

	dsn, err := BuildDSN(cfg, true)
	require.NoError(t, err)

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	require.Equal(t, "'TRADITIONAL'", parsed.Params["sql_mode"])
}

func TestQuoteIdentifier(t *testing.T) {
	require.Equal(t, "`task_manager`", quoteIdentifier("task_manager"))
	require.Equal(t, "`odd``name`", quoteIdentifier("odd`name"))
}
