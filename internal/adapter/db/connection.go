package db

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"taskmanager/internal/config"
)

const driverName = "mysql"

// ConnectDB opens the connection pool for the configured database and checks
// that the server answers.
func ConnectDB(ctx context.Context, conf *config.Config) (*sqlx.DB, error) {
	dsn, err := BuildDSN(conf, true)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(conf.DbMaxOpenConns)
	db.SetMaxIdleConns(conf.DbMaxIdleConns)
	db.SetConnMaxLifetime(conf.DbConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	return db, nil
}

// EnsureDatabase creates the configured schema when it does not exist yet.
func EnsureDatabase(ctx context.Context, conf *config.Config) error {
	dsn, err := BuildDSN(conf, false)
	if err != nil {
		return err
	}

	admin, err := sqlx.ConnectContext(ctx, driverName, dsn)
	if err != nil {
		return fmt.Errorf("connect mysql server: %w", err)
	}
	defer func() {
		_ = admin.Close()
	}()

	query := fmt.Sprintf(
		"CREATE DATABASE IF NOT EXISTS %s CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci",
		quoteIdentifier(conf.DbName),
	)
	if _, err := admin.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create database %s: %w", conf.DbName, err)
	}
	return nil
}

// BuildDSN renders the driver DSN. Timestamps are read and written in UTC and
// the session runs in strict mode so ENUM violations are rejected.
func BuildDSN(conf *config.Config, withDatabase bool) (string, error) {
	database := ""
	if withDatabase {
		database = conf.DbName
	}

	raw := fmt.Sprintf(
		"%s:%s@tcp(%s)/%s",
		conf.DbUser,
		conf.DbPassword,
		net.JoinHostPort(conf.DbHost, conf.DbPort),
		database,
	)
	if params := strings.TrimPrefix(conf.DbParams, "?"); params != "" {
		raw += "?" + params
	}

	cfg, err := mysql.ParseDSN(raw)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}

	cfg.ParseTime = true
	cfg.Loc = time.UTC
	if conf.DbTimeout > 0 {
		cfg.Timeout = conf.DbTimeout
	}
	if conf.DbReadTimeout > 0 {
		cfg.ReadTimeout = conf.DbReadTimeout
	}
	if conf.DbWriteTimeout > 0 {
		cfg.WriteTimeout = conf.DbWriteTimeout
	}

	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	if _, ok := cfg.Params["sql_mode"]; !ok {
		cfg.Params["sql_mode"] = "'STRICT_ALL_TABLES,NO_ENGINE_SUBSTITUTION'"
	}
	if _, ok := cfg.Params["time_zone"]; !ok {
		cfg.Params["time_zone"] = "'+00:00'"
	}

	return cfg.FormatDSN(), nil
}

func quoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
