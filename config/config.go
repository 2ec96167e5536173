package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env         string `envconfig:"ENV"`
		LogLevel    string `envconfig:"LOG_LEVEL"`
		MetricsAddr string `envconfig:"METRICS_ADDR"`
		Shutdown    struct {
			GracePeriodSeconds int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name string `envconfig:"APP_NAME" default:"hostel"`
	} `envconfig:"APP"`

	// Store is the hosted backend: REST data API, auth API and storage all hang off URL.
	Store struct {
		URL                  string `envconfig:"URL"                    required:"true"`
		PublicKey            string `envconfig:"PUBLIC_KEY"             required:"true"`
		TimeoutSeconds       int    `envconfig:"TIMEOUT_SECONDS"        default:"20"`
		SessionStorageKey    string `envconfig:"SESSION_STORAGE_KEY"    default:"hostel:auth:session"`
		SessionTTLSeconds    int    `envconfig:"SESSION_TTL_SECONDS"    default:"2592000"`
		RefreshMarginSeconds int    `envconfig:"REFRESH_MARGIN_SECONDS" default:"30"`
		// RateLimit caps outbound requests per second. Zero disables the limiter.
		RateLimit int `envconfig:"RATE_LIMIT" default:"0"`
	} `envconfig:"STORE"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
	} `envconfig:"CACHE"`

	JWT struct {
		// Secret enables signature checks on persisted access tokens. Empty means claims are read unverified.
		Secret string `envconfig:"SECRET"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"       default:"3"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME" default:"2"`
			MigrationTable string `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
			Host           string `envconfig:"HOST"`
			Port           string `envconfig:"PORT"`
			Username       string `envconfig:"USER"`
			Password       string `envconfig:"PASSWORD"`
			Name           string `envconfig:"NAME"`
			SSLMode        string `envconfig:"SSL_MODE"        default:"disable"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME" default:"hostel-images"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			Region          string `envconfig:"REGION"      default:"auto"`
		} `envconfig:"S3"`
	}
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

// Load reads .env when present and processes the environment into a fresh Config.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
	} else {
		log.Info().Msg("Successfully loaded variables from .env file into environment")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing environment variables: %w", err)
	}

	return &cfg, nil
}

func Init() error {
	var err error

	once.Do(func() {
		var cfg *Config

		cfg, err = Load()
		if err != nil {
			return
		}

		conf = *cfg
		initialized = true

		log.Info().Msg("Client configuration initialized successfully")
	})

	return err
}

// Get returns the process-wide configuration. A missing store URL or public key is fatal.
func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
