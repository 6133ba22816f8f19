package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `env:"ENV" env-required:"true"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info" env-description:"logging level, debug, info, etc."`
	HttpServer HttpServer
	Database   Database
	Limiter    Limiter
	Auth       AuthConfig
	SMTP       SMTPConfig
	Email      EmailConfig
	Cache      Cache
	Gateway    GatewayConfig
	Reconcile  ReconcileConfig
}

type HttpServer struct {
	Port           string        `env:"HTTP_PORT" env-default:"8080"`
	Timeout        time.Duration `env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	SwaggerEnabled bool          `env:"HTTP_SWAGGER_ENABLED" env-default:"false"`
	AllowedOrigins []string      `env:"HTTP_ALLOWED_ORIGINS" env-default:"*" env-description:"comma-separated CORS origins"`
}

type Database struct {
	Net                string        `env:"DB_NET" env-default:"tcp"`
	Server             string        `env:"DB_SERVER" env-required:"true"`
	DBName             string        `env:"DB_NAME" env-required:"true"`
	User               string        `env:"DB_USER" env-required:"true"`
	Password           string        `env:"DB_PASSWORD" env-required:"true"`
	TimeZone           string        `env:"DB_TIMEZONE"`
	Timeout            time.Duration `env:"DB_TIMEOUT" env-default:"2s"`
	MaxIdleConnections int           `env:"DB_MAX_IDLE_CONNECTIONS" env-default:"40"`
	MaxOpenConnections int           `env:"DB_MAX_OPEN_CONNECTIONS" env-default:"40"`
}

type Limiter struct {
	RPS   int           `env:"LIMITER_RPS" env-default:"10"`
	Burst int           `env:"LIMITER_BURST" env-default:"20"`
	TTL   time.Duration `env:"LIMITER_TTL" env-default:"10m"`
}

type AuthConfig struct {
	JWT          JWTConfig
	PasswordSalt string `env:"AUTH_PASSWORD_SALT" env-required:"true"`
}

type JWTConfig struct {
	AccessTokenTTL time.Duration `env:"JWT_ACCESS_TOKEN_TTL" env-default:"12h"`
	SigningKey     string        `env:"JWT_SIGNING_KEY" env-required:"true"`
}

type SMTPConfig struct {
	Host string `env:"SMTP_HOST"`
	Port int    `env:"SMTP_PORT" env-default:"465"`
	From string `env:"SMTP_FROM"`
	Pass string `env:"SMTP_PASS"`
}

type EmailConfig struct {
	Enabled   bool `env:"EMAIL_ENABLED" env-default:"false"`
	Templates EmailTemplates
}

type EmailTemplates struct {
	RegistrationConfirmed string `env:"EMAIL_TEMPLATE_REGISTRATION_CONFIRMED" env-default:"registration_confirmed.html"`
}

type Cache struct {
	Type  string        `env:"REDIS_TYPE" env-required:"true" env-description:"specifies provider, one of redis/redisCluster"`
	TTL   time.Duration `env:"CACHE_TTL" env-default:"5m" env-description:"listing cache entry lifetime"`
	Redis struct {
		Address  string `env:"REDIS_ADDR" env-default:"" env-description:"redis host:port single instance"`
		Password string `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize int    `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
	RedisCluster struct {
		Addresses []string `env:"REDIS_CLUSTER_ADDRS" env-default:"" env-description:"redis cluster nodes"`
		Password  string   `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize  int      `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
}

// GatewayConfig configures the checkout gateway the registration flow
// creates and verifies payment orders against.
type GatewayConfig struct {
	BaseURL   string        `env:"GATEWAY_BASE_URL" env-default:"https://api.razorpay.com/v1"`
	KeyID     string        `env:"GATEWAY_KEY_ID" env-required:"true"`
	KeySecret string        `env:"GATEWAY_KEY_SECRET" env-required:"true"`
	Currency  string        `env:"GATEWAY_CURRENCY" env-default:"INR"`
	Timeout   time.Duration `env:"GATEWAY_TIMEOUT" env-default:"30s"`
}

// ReconcileConfig drives the background sweep that settles payment orders
// stuck without a verification callback.
type ReconcileConfig struct {
	Interval    time.Duration `env:"RECONCILE_INTERVAL" env-default:"10m"`
	MinOrderAge time.Duration `env:"RECONCILE_MIN_ORDER_AGE" env-default:"30m"`
}

func MustLoad() *Config {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}

	return &cfg
}
