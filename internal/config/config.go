package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// apiKeyPlaceholder is the value the setup guide ships in .env.example; a key
// equal to it is treated as unconfigured.
const apiKeyPlaceholder = "your_api_key_here"

// minAPIKeyLength is the sanity threshold below which a configured key is
// assumed to be garbage and the live tier stays disabled.
const minAPIKeyLength = 10

// defaultResourceIDs lists the data.gov.in resource identifiers known to have
// carried the MGNREGA at-a-glance dataset, in probe order. The real endpoint
// identifier is not stable across ministry re-publishes.
var defaultResourceIDs = []string{
	"9ef84268-d588-465a-a308-a864a43d0070",
	"603001422",
	"district-wise-mgnrega-data-glance",
	"mgnrega-district-wise-data",
}

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	AllowedOrigin   string
	ShutdownTimeout time.Duration

	// Live-data tier. UpstreamTimeout bounds one full resource-probe chain,
	// not a single probe, so it must stay below the HTTP write deadline for
	// the tier walk to finish inside a district-detail request.
	UseLiveData     bool
	APIKey          string
	BaseURL         string
	ResourceIDs     []string
	UpstreamTimeout time.Duration

	// Cache and refresh.
	CacheTTL        time.Duration
	RefreshEnabled  bool
	RefreshInterval time.Duration

	// Optional Kafka export of refreshed records.
	KafkaBrokers     []string
	KafkaExportTopic string
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	// Missing .env is the normal production case.
	_ = godotenv.Load()

	shutdownTimeout, err := envDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	upstreamTimeout, err := envDuration("UPSTREAM_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := envDuration("CACHE_TTL", time.Hour)
	if err != nil {
		return nil, err
	}
	refreshInterval, err := envDuration("REFRESH_INTERVAL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		AllowedOrigin:   envOrDefault("ALLOWED_ORIGIN", "*"),
		ShutdownTimeout: shutdownTimeout,

		UseLiveData:     envBool("USE_LIVE_DATA", false),
		APIKey:          os.Getenv("DATA_GOV_API_KEY"),
		BaseURL:         envOrDefault("DATA_GOV_BASE_URL", "https://api.data.gov.in/resource"),
		ResourceIDs:     envList("DATA_GOV_RESOURCE_IDS", defaultResourceIDs),
		UpstreamTimeout: upstreamTimeout,

		CacheTTL:        cacheTTL,
		RefreshEnabled:  envBool("REFRESH_ENABLED", true),
		RefreshInterval: refreshInterval,

		KafkaBrokers:     envList("KAFKA_BROKERS", nil),
		KafkaExportTopic: envOrDefault("KAFKA_EXPORT_TOPIC", "mgnrega-district-metrics"),
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("HTTP_ADDR is required")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("DATA_GOV_BASE_URL is required")
	}
	if len(cfg.ResourceIDs) == 0 {
		return nil, errors.New("DATA_GOV_RESOURCE_IDS must list at least one resource")
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaExportTopic == "" {
		return nil, errors.New("KAFKA_BROKERS is set but KAFKA_EXPORT_TOPIC is empty")
	}

	return cfg, nil
}

// LiveTierEnabled reports whether resolution may enter the live API tier:
// live mode must be on and the credential must pass the sanity check.
func (c *Config) LiveTierEnabled() bool {
	return c.UseLiveData && c.APIKeyConfigured()
}

// APIKeyConfigured reports whether a plausible API credential is present.
func (c *Config) APIKeyConfigured() bool {
	return c.APIKey != "" && c.APIKey != apiKeyPlaceholder && len(c.APIKey) > minAPIKeyLength
}

// ExportEnabled reports whether refreshed records should be published to Kafka.
func (c *Config) ExportEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
