package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Alerts       AlertsConfig
	Sweep        SweepConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOCKWATCH_APP_ENV" required:"true"`
	Port         string `envconfig:"STOCKWATCH_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STOCKWATCH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOCKWATCH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STOCKWATCH_DB_DSN"`
	Driver string `envconfig:"STOCKWATCH_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STOCKWATCH_DB_HOST"`
	LegacyPort     int    `envconfig:"STOCKWATCH_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STOCKWATCH_DB_USER"`
	LegacyPassword string `envconfig:"STOCKWATCH_DB_PASSWORD"`
	LegacyName     string `envconfig:"STOCKWATCH_DB_NAME"`
	LegacySSLMode  string `envconfig:"STOCKWATCH_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOCKWATCH_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOCKWATCH_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOCKWATCH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOCKWATCH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOCKWATCH_REDIS_URL"`
	Address      string        `envconfig:"STOCKWATCH_REDIS_ADDR"`
	Password     string        `envconfig:"STOCKWATCH_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOCKWATCH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOCKWATCH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOCKWATCH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOCKWATCH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOCKWATCH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOCKWATCH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint is configured at all. The API and
// the sweep worker treat the cache as optional.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type AlertsConfig struct {
	SalesWindowDays    int           `envconfig:"STOCKWATCH_ALERTS_SALES_WINDOW_DAYS" default:"30"`
	SeverityUrgentRate float64       `envconfig:"STOCKWATCH_ALERTS_URGENT_RATIO" default:"0.5"`
	ReportCacheTTL     time.Duration `envconfig:"STOCKWATCH_ALERTS_REPORT_CACHE_TTL" default:"60s"`
}

type SweepConfig struct {
	Interval time.Duration `envconfig:"STOCKWATCH_SWEEP_INTERVAL" default:"1h"`
	LockTTL  time.Duration `envconfig:"STOCKWATCH_SWEEP_LOCK_TTL" default:"55m"`
	Port     string        `envconfig:"STOCKWATCH_SWEEP_METRICS_PORT" default:"9090"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STOCKWATCH_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
