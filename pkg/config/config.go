package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
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
	Env          string `envconfig:"JEWELMANDI_APP_ENV" required:"true"`
	Port         string `envconfig:"JEWELMANDI_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"JEWELMANDI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"JEWELMANDI_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"JEWELMANDI_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"JEWELMANDI_DB_DSN"`

	Host     string `envconfig:"JEWELMANDI_DB_HOST"`
	Port     int    `envconfig:"JEWELMANDI_DB_PORT" default:"5432"`
	User     string `envconfig:"JEWELMANDI_DB_USER"`
	Password string `envconfig:"JEWELMANDI_DB_PASSWORD"`
	Name     string `envconfig:"JEWELMANDI_DB_NAME"`
	SSLMode  string `envconfig:"JEWELMANDI_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"JEWELMANDI_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"JEWELMANDI_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"JEWELMANDI_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"JEWELMANDI_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("database DSN or host/user/name components are required")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"JEWELMANDI_REDIS_URL"`
	Address      string        `envconfig:"JEWELMANDI_REDIS_ADDR"`
	Password     string        `envconfig:"JEWELMANDI_REDIS_PASSWORD"`
	DB           int           `envconfig:"JEWELMANDI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"JEWELMANDI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"JEWELMANDI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"JEWELMANDI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"JEWELMANDI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"JEWELMANDI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"JEWELMANDI_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"JEWELMANDI_JWT_ISSUER" default:"jewelmandi"`
	ExpirationMinutes      int    `envconfig:"JEWELMANDI_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"JEWELMANDI_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"JEWELMANDI_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"JEWELMANDI_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"JEWELMANDI_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"JEWELMANDI_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"JEWELMANDI_ARGON_KEY_LEN" default:"32"`
}
