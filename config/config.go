package config

import (
	"flag"
	"os"
	"sync"

	"github.com/mkorobov/qrpay/internal/models"
)

const (
	defaultServerAddress  = ":8080"
	defaultDatabaseDSN    = ""
	defaultRedisAddr      = "localhost:6379"
	defaultGatewayBaseURL = "https://api.sberbank.ru"
	defaultLogLevel       = "debug"

	// value of the credential placeholders in the legacy integration
	placeholderCredential = "xxxx"
)

type Config struct {
	ServerAddr          string
	DatabaseDSN         string
	RedisAddr           string
	GatewayBaseURL      string
	GatewayClientID     string
	GatewayClientSecret string
	GatewayQRID         string
	LogLevel            string
}

var (
	once      sync.Once
	singleton *Config
)

// New returns new Config. It parses command line and environment variables only once.
func New() (*Config, error) {
	once.Do(func() {
		cfg := Config{}

		// initialize flags
		flag.StringVar(&cfg.ServerAddr, "a", defaultServerAddress, "qrpay server address")
		flag.StringVar(&cfg.DatabaseDSN, "d", defaultDatabaseDSN, "qrpay database DSN")
		flag.StringVar(&cfg.RedisAddr, "r", defaultRedisAddr, "redis address")
		flag.StringVar(&cfg.GatewayBaseURL, "g", defaultGatewayBaseURL, "gateway base URL")
		flag.StringVar(&cfg.LogLevel, "l", defaultLogLevel, "log level")

		flag.Parse()

		// if environment variable is set, then using it
		if serverAddrEnv := os.Getenv("RUN_ADDRESS"); serverAddrEnv != "" {
			cfg.ServerAddr = serverAddrEnv
		}
		if databaseDSNEnv := os.Getenv("DATABASE_URI"); databaseDSNEnv != "" {
			cfg.DatabaseDSN = databaseDSNEnv
		}
		if redisAddrEnv := os.Getenv("REDIS_ADDRESS"); redisAddrEnv != "" {
			cfg.RedisAddr = redisAddrEnv
		}
		if gatewayBaseURLEnv := os.Getenv("GATEWAY_BASE_URL"); gatewayBaseURLEnv != "" {
			cfg.GatewayBaseURL = gatewayBaseURLEnv
		}
		if logLevelEnv := os.Getenv("LOG_LEVEL"); logLevelEnv != "" {
			cfg.LogLevel = logLevelEnv
		}

		// gateway credentials are never defaulted and never placed in flags
		cfg.GatewayClientID = os.Getenv("GATEWAY_CLIENT_ID")
		cfg.GatewayClientSecret = os.Getenv("GATEWAY_CLIENT_SECRET")
		cfg.GatewayQRID = os.Getenv("GATEWAY_QR_ID")

		singleton = &cfg
	})

	return singleton, nil
}

// Validate rejects empty or placeholder gateway credentials so the
// service fails at startup instead of on the first payment.
func (cfg *Config) Validate() error {
	for _, v := range []string{cfg.GatewayClientID, cfg.GatewayClientSecret, cfg.GatewayQRID} {
		if v == "" || v == placeholderCredential {
			return models.ErrEmptyCredentials
		}
	}
	return nil
}
