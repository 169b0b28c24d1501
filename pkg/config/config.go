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
	AdminAuth    AdminAuthConfig
	Builder      BuilderConfig
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
	Env          string `envconfig:"PCB_APP_ENV" required:"true"`
	Port         string `envconfig:"PCB_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PCB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PCB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PCB_DB_DSN"`
	Driver string `envconfig:"PCB_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PCB_DB_HOST"`
	LegacyPort     int    `envconfig:"PCB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PCB_DB_USER"`
	LegacyPassword string `envconfig:"PCB_DB_PASSWORD"`
	LegacyName     string `envconfig:"PCB_DB_NAME"`
	LegacySSLMode  string `envconfig:"PCB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PCB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PCB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PCB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PCB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"PCB_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PCB_REDIS_ADDR"`
	Password     string        `envconfig:"PCB_REDIS_PASSWORD"`
	DB           int           `envconfig:"PCB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PCB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PCB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PCB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PCB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PCB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// AdminAuthConfig verifies tokens minted by the external identity provider.
// This service never issues credentials of its own.
type AdminAuthConfig struct {
	Secret    string `envconfig:"PCB_ADMIN_JWT_SECRET" required:"true"`
	Issuer    string `envconfig:"PCB_ADMIN_JWT_ISSUER" required:"true"`
	Audience  string `envconfig:"PCB_ADMIN_JWT_AUDIENCE" default:"pcbuilder-admin"`
	LeewaySec int    `envconfig:"PCB_ADMIN_JWT_LEEWAY_SEC" default:"30"`
}

func (a AdminAuthConfig) Leeway() time.Duration {
	if a.LeewaySec <= 0 {
		return 0
	}
	return time.Duration(a.LeewaySec) * time.Second
}

type BuilderConfig struct {
	SessionTTLMinutes int `envconfig:"PCB_BUILDER_SESSION_TTL_MINUTES" default:"10080"`
}

// SessionTTL returns how long an idle builder session survives in Redis.
func (b BuilderConfig) SessionTTL() time.Duration {
	if b.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(b.SessionTTLMinutes) * time.Minute
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PCB_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required when the sqlite driver is selected", EnvDBDSN)
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
