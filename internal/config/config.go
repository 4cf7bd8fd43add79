package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Hermes   HermesConfig   `yaml:"hermes"`
	Ledger   LedgerConfig   `yaml:"ledger"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port               int    `yaml:"port"`
	MetricsPort        int    `yaml:"metrics_port"`
	AdminToken         string `yaml:"admin_token"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
	// TrustProxyHeaders takes the client address from X-Forwarded-For or
	// X-Real-IP. Only enable behind a proxy that overwrites them.
	TrustProxyHeaders  bool   `yaml:"trust_proxy_headers"`
}

type DatabaseConfig struct {
	URL         string `yaml:"url"`
	AutoMigrate bool   `yaml:"auto_migrate"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

// LedgerConfig points at the RPC relay in front of the on-chain score registry.
type LedgerConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	ContractIndex int    `yaml:"contract_index"`
	TimeoutMs     int    `yaml:"timeout_ms"`
	RetryCount    int    `yaml:"retry_count"`
	QueueSize     int    `yaml:"queue_size"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) LedgerTimeout() time.Duration {
	return time.Duration(c.Ledger.TimeoutMs) * time.Millisecond
}

// Load reads defaults, then the YAML file at path (if any), then GUARDIAN_*
// environment variables. A .env file in the working directory is loaded into
// the environment first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:               3001,
			MetricsPort:        3002,
			RateLimitPerMinute: 100,
		},
		Database: DatabaseConfig{
			AutoMigrate: true,
		},
		Hermes: HermesConfig{
			URL: "nats://localhost:4222",
		},
		Ledger: LedgerConfig{
			URL:           "https://testnet-rpc.qubic.org",
			ContractIndex: 1,
			TimeoutMs:     10000,
			RetryCount:    2,
			QueueSize:     256,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setInt("GUARDIAN_PORT", &cfg.Server.Port)
	setInt("GUARDIAN_METRICS_PORT", &cfg.Server.MetricsPort)
	if v := os.Getenv("GUARDIAN_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	setInt("GUARDIAN_RATE_LIMIT_PER_MINUTE", &cfg.Server.RateLimitPerMinute)
	setBool("GUARDIAN_TRUST_PROXY_HEADERS", &cfg.Server.TrustProxyHeaders)

	if v := os.Getenv("GUARDIAN_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	} else if v := os.Getenv("DATABASE_URL"); v != "" && cfg.Database.URL == "" {
		cfg.Database.URL = v
	}
	setBool("GUARDIAN_AUTO_MIGRATE", &cfg.Database.AutoMigrate)

	if v := os.Getenv("GUARDIAN_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}

	setBool("GUARDIAN_LEDGER_ENABLED", &cfg.Ledger.Enabled)
	if v := os.Getenv("GUARDIAN_LEDGER_URL"); v != "" {
		cfg.Ledger.URL = v
	}
	if v := os.Getenv("GUARDIAN_LEDGER_TOKEN"); v != "" {
		cfg.Ledger.Token = v
	}
	setInt("GUARDIAN_CONTRACT_INDEX", &cfg.Ledger.ContractIndex)
	setInt("GUARDIAN_LEDGER_TIMEOUT_MS", &cfg.Ledger.TimeoutMs)
	setInt("GUARDIAN_LEDGER_RETRY_COUNT", &cfg.Ledger.RetryCount)
	setInt("GUARDIAN_LEDGER_QUEUE_SIZE", &cfg.Ledger.QueueSize)

	if v := os.Getenv("GUARDIAN_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("GUARDIAN_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

func setInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
