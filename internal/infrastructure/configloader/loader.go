package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"quantora_agent/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Price sources accepted in prices.source.
const (
	PriceSourceStatic            = "static"
	PriceSourceCoinGecko         = "coingecko"
	PriceSourceCoinGeckoFallback = "coingecko+static"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
	// AllowedOrigins пусто = разрешены все источники
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// UpstreamConfig holds the connection settings shared by every provider client.
type UpstreamConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	APIKey               string  `yaml:"apiKey"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RateLimitPerSecond   float64 `yaml:"rateLimitPerSecond"` // 0 отключает ограничение
	RateLimitBurst       int     `yaml:"rateLimitBurst"`
}

// TonAPIConfig holds TonAPI specific configurations.
type TonAPIConfig struct {
	UpstreamConfig `yaml:",inline"`
	NFTLimit       int `yaml:"nftLimit"`
}

// CoinGeckoConfig holds CoinGecko API specific configurations.
type CoinGeckoConfig struct {
	UpstreamConfig `yaml:",inline"`
	VsCurrency     string `yaml:"vsCurrency"`
	// SymbolIDs дополняет соответствие символ -> id CoinGecko из реестра сетей
	SymbolIDs map[string]string `yaml:"symbolIds"`
}

// PricesConfig selects and tunes the price resolver.
type PricesConfig struct {
	Source          string             `yaml:"source"`
	Static          map[string]float64 `yaml:"static"`
	CacheTTLSeconds int                `yaml:"cacheTTLSeconds"`
}

// PortfolioConfig holds configuration for the aggregator.
type PortfolioConfig struct {
	FetchTimeoutMs        int `yaml:"fetchTimeoutMs"`
	MaxConcurrentRequests int `yaml:"maxConcurrentRequests"`
}

// ConnectConfig configures the multi-chain portfolio endpoint.
type ConnectConfig struct {
	Chains []string `yaml:"chains"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server    ServerConfig             `yaml:"server"`
	Logging   LoggingConfig            `yaml:"logging"`
	Alchemy   UpstreamConfig           `yaml:"alchemy"`
	Moralis   UpstreamConfig           `yaml:"moralis"`
	Toncenter UpstreamConfig           `yaml:"toncenter"`
	TonAPI    TonAPIConfig             `yaml:"tonapi"`
	CoinGecko CoinGeckoConfig          `yaml:"coingecko"`
	Prices    PricesConfig             `yaml:"prices"`
	Portfolio PortfolioConfig          `yaml:"portfolio"`
	Insight   entity.InsightThresholds `yaml:"insight"`
	Connect   ConnectConfig            `yaml:"connect"`
}

// Load reads the YAML configuration file from the given path, applies defaults and
// environment overrides. A missing file is not an error: defaults and env are used.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logrus.Warnf("Config file %s not found, using defaults and environment", path)
	case err != nil:
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
			return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logrus.Infof("Configuration loaded: price source %s, tracked chains %v", cfg.Prices.Source, cfg.Connect.Chains)
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// Validate checks values that have no sensible default.
func (c *Config) Validate() error {
	switch c.Prices.Source {
	case PriceSourceStatic, PriceSourceCoinGecko, PriceSourceCoinGeckoFallback:
	default:
		return fmt.Errorf("invalid prices.source %q: expected %s, %s or %s",
			c.Prices.Source, PriceSourceStatic, PriceSourceCoinGecko, PriceSourceCoinGeckoFallback)
	}
	for symbol, price := range c.Prices.Static {
		if price < 0 {
			return fmt.Errorf("negative static price for %s", symbol)
		}
	}
	if c.Insight.LowConcentration > c.Insight.HighConcentration {
		return fmt.Errorf("insight.lowConcentration (%v) exceeds insight.highConcentration (%v)",
			c.Insight.LowConcentration, c.Insight.HighConcentration)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	overrides := []struct {
		env    string
		target *string
	}{
		{"ALCHEMY_API_KEY", &cfg.Alchemy.APIKey},
		{"MORALIS_API_KEY", &cfg.Moralis.APIKey},
		{"TONCENTER_API_KEY", &cfg.Toncenter.APIKey},
		{"TONAPI_KEY", &cfg.TonAPI.APIKey},
		{"COINGECKO_API_KEY", &cfg.CoinGecko.APIKey},
		{"PRICE_SOURCE", &cfg.Prices.Source},
		{"LOG_LEVEL", &cfg.Logging.Level},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.env); ok && v != "" {
			*o.target = v
		}
	}

	if port, ok := os.LookupEnv("PORT"); ok && port != "" {
		if _, err := strconv.Atoi(port); err == nil {
			port = ":" + port
		}
		cfg.Server.Port = port
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 30
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	upstreamDefaults(&cfg.Alchemy, "https://eth-mainnet.g.alchemy.com/v2")
	upstreamDefaults(&cfg.Moralis, "https://deep-index.moralis.io")
	upstreamDefaults(&cfg.Toncenter, "https://toncenter.com")
	upstreamDefaults(&cfg.TonAPI.UpstreamConfig, "https://tonapi.io")
	upstreamDefaults(&cfg.CoinGecko.UpstreamConfig, "https://api.coingecko.com")
	if cfg.TonAPI.NFTLimit <= 0 {
		cfg.TonAPI.NFTLimit = 50
	}
	if cfg.CoinGecko.VsCurrency == "" {
		cfg.CoinGecko.VsCurrency = "usd"
	}

	cfg.Prices.Source = strings.ToLower(strings.TrimSpace(cfg.Prices.Source))
	if cfg.Prices.Source == "" {
		cfg.Prices.Source = PriceSourceStatic
	}
	if cfg.Prices.CacheTTLSeconds <= 0 {
		cfg.Prices.CacheTTLSeconds = 60
	}

	if cfg.Portfolio.FetchTimeoutMs <= 0 {
		cfg.Portfolio.FetchTimeoutMs = 8000
	}
	if cfg.Portfolio.MaxConcurrentRequests < 0 {
		cfg.Portfolio.MaxConcurrentRequests = 0 // без ограничения
	}

	defaults := entity.DefaultInsightThresholds()
	if cfg.Insight.MaterialValueUSD <= 0 {
		cfg.Insight.MaterialValueUSD = defaults.MaterialValueUSD
	}
	if cfg.Insight.SmallValueUSD <= 0 {
		cfg.Insight.SmallValueUSD = defaults.SmallValueUSD
	}
	if cfg.Insight.HighConcentration <= 0 {
		cfg.Insight.HighConcentration = defaults.HighConcentration
	}
	if cfg.Insight.LowConcentration <= 0 {
		cfg.Insight.LowConcentration = defaults.LowConcentration
	}

	if len(cfg.Connect.Chains) == 0 {
		cfg.Connect.Chains = []string{"eth", "0x89", "0x38"}
	}
}

func upstreamDefaults(u *UpstreamConfig, baseURL string) {
	if u.BaseURL == "" {
		u.BaseURL = baseURL
	}
	u.BaseURL = strings.TrimRight(u.BaseURL, "/")
	if u.RequestTimeoutMillis <= 0 {
		u.RequestTimeoutMillis = 8000
	}
	if u.RateLimitPerSecond > 0 && u.RateLimitBurst <= 0 {
		u.RateLimitBurst = 1
	}
}
