package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	AppName    string `env:"APP_NAME" env-default:"task-manager"`
	AppVersion string `env:"APP_VERSION" env-default:"dev"`
	AppPort    string `env:"APP_PORT" env-default:"8000"`

	DbHost     string `env:"MYSQL_HOST" env-default:"localhost"`
	DbPort     string `env:"MYSQL_PORT" env-default:"3306"`
	DbUser     string `env:"MYSQL_USER" env-default:"root"`
	DbPassword string `env:"MYSQL_PASSWORD"`
	DbName     string `env:"MYSQL_DATABASE" env-default:"task_manager"`
	// DbParams holds extra DSN parameters in query string form.
	DbParams string `env:"MYSQL_PARAMS" env-default:"charset=utf8mb4"`

	DbMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" env-default:"10"`
	DbMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	DbConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"5m"`
	DbTimeout         time.Duration `env:"DB_TIMEOUT" env-default:"5s"`
	DbReadTimeout     time.Duration `env:"DB_READ_TIMEOUT" env-default:"30s"`
	DbWriteTimeout    time.Duration `env:"DB_WRITE_TIMEOUT" env-default:"30s"`

	CorsAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
	TrustedProxies     []string `env:"TRUSTED_PROXIES" env-separator:","`

	TranslationFolder string        `env:"TRANSLATION_FOLDER" env-default:"pkg/translator/translation"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"15s"`
}

// LoadConfig reads an optional .env file and then the process environment.
// Values already present in the environment win over the file.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	cfg.TrustedProxies = compact(cfg.TrustedProxies)
	cfg.CorsAllowedOrigins = compact(cfg.CorsAllowedOrigins)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DbName == "" {
		return fmt.Errorf("MYSQL_DATABASE must not be empty")
	}
	if c.DbMaxOpenConns < 0 || c.DbMaxIdleConns < 0 {
		return fmt.Errorf("connection pool limits must not be negative")
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + c.AppPort
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		out = append(out, value)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
