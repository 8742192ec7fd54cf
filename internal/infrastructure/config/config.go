package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string        `env:"PORT,        default=8080"`
	Env        string        `env:"ENV,         default=development"`
	JWTSecret  string        `env:"JWT_SECRET"`
	TokenTTL   time.Duration `env:"JWT_EXPIRES_IN, default=720h"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`
	CORSOrigin string        `env:"CORS_ORIGIN, default=http://localhost:5173"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Webhook WebhookConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=k8_automation"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR, default=localhost:6379"`
	DB       int           `env:"REDIS_DB,   default=0"`
	DedupTTL time.Duration `env:"LEAD_DEDUP_TTL, default=1h"`
}

type WebhookConfig struct {
	// URL is the automation webhook new leads are forwarded to.
	// Forwarding is disabled when empty.
	URL     string        `env:"LEAD_WEBHOOK_URL"`
	Timeout time.Duration `env:"LEAD_WEBHOOK_TIMEOUT, default=5s"`
}

// IsDevelopment reports whether the service runs in diagnostic mode, where
// error responses may include internal detail.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
