package config

import (
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents an app config.
type Config struct {
	CurrencyBeacon CurrencyBeacon
	PostgreSQL     PostgreSQL
	HTTPServer     HTTPServer
	Logger         Logger
}

// CurrencyBeacon represents a Currency Beacon API and rates cache configuration.
type CurrencyBeacon struct {
	APIURL  string        `env:"CURRENCY_BEACON_API_URL" env-default:"https://api.currencybeacon.com"`
	APIKey  string        `env:"CURRENCY_BEACON_API_KEY"`
	Timeout time.Duration `env:"CURRENCY_BEACON_TIMEOUT" env-default:"10s"`
	// RatesTTL is a freshness window of cached rates.
	RatesTTL     time.Duration `env:"CURRENCY_BEACON_RATES_TTL" env-default:"4h"`
	SingleFlight bool          `env:"CURRENCY_BEACON_SINGLE_FLIGHT" env-default:"false"`

	PersistWorkers   int           `env:"CURRENCY_BEACON_PERSIST_WORKERS" env-default:"1"`
	PersistQueueSize int           `env:"CURRENCY_BEACON_PERSIST_QUEUE" env-default:"16"`
	PersistTimeout   time.Duration `env:"CURRENCY_BEACON_PERSIST_TIMEOUT" env-default:"5s"`
}

// PostgreSQL represents a PostgreSQL database configuration.
type PostgreSQL struct {
	User     string `env:"POSTGRES_USER" env-default:"admin"`
	Password string `env:"POSTGRES_PASSWORD" env-default:"admin"`
	Database string `env:"POSTGRES_DB" env-default:"currency_beacon"`
	Host     string `env:"POSTGRES_HOST" env-default:"localhost"`
	Port     string `env:"POSTGRES_PORT" env-default:"5432"`
	SSLMode  string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
}

// HTTPServer represents an admin http server configuration.
type HTTPServer struct {
	Address string `env:"HTTP_SERVER_ADDRESS" env-default:":8080"`
}

// Logger represents a logger configuration.
type Logger struct {
	LogLevel        string `env:"CB_LOGGER_LOG_LEVEL" env-default:"debug"`
	LogFilename     string `env:"CB_LOGGER_LOG_FILENAME" env-default:""`
	PrettyLogOutput bool   `env:"CB_LOGGER_PRETTY_LOG_OUTPUT" env-default:"false"`
}

var (
	config Config
	once   sync.Once
)

// Get returns a new config.
func Get() *Config {
	once.Do(func() {
		err := cleanenv.ReadEnv(&config)
		if err != nil {
			log.Fatalf("read env: %v", err)
		}
	})

	return &config
}
