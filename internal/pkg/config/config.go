package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// FirebaseCredentials is the service account file used to verify ID
	// tokens. When empty outside production, an unverified dev parser is
	// used instead.
	FirebaseCredentials string `env:"FIREBASE_CREDENTIALS"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Geocoder GeocoderConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=shop_discovery"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type GeocoderConfig struct {
	BaseURL   string `env:"GEOCODER_URL"`
	UserAgent string `env:"GEOCODER_USER_AGENT, default=DOS-App/1.0 (Discovery Of Shops)"`
}

// IsProduction reports whether the deployment is flagged as production,
// which disables dev-only routes and error detail in responses.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
