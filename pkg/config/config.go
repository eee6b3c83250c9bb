package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// RegionConfig is one region profile as configured in YAML. Conversion to
// the domain profile happens at wiring time.
type RegionConfig struct {
	ID                string             `yaml:"id"`
	Name              string             `yaml:"name"`
	ProxyType         string             `yaml:"proxy_type"`
	PhysBaseline      float64            `yaml:"phys_baseline"`
	PhysVolatility    float64            `yaml:"phys_volatility"`
	WeekendMultiplier float64            `yaml:"weekend_multiplier"`
	Persistence       float64            `yaml:"persistence"`
	VolumeBaseline    int                `yaml:"volume_baseline"`
	SentimentBias     float64            `yaml:"sentiment_bias"`
	HypeTendency      float64            `yaml:"hype_tendency"`
	DiversityBaseline float64            `yaml:"diversity_baseline"`
	RegimeWeights     map[string]float64 `yaml:"regime_weights"`
	Market            struct {
		Symbol string `yaml:"symbol"`
		Name   string `yaml:"name"`
	} `yaml:"market"`
}

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Backend struct {
		Type string `yaml:"type"` // kafka or log
	} `yaml:"backend"`
	Kafka struct {
		Brokers       []string `yaml:"brokers"`
		FeedTopic     string   `yaml:"feed_topic"`
		AlertTopic    string   `yaml:"alert_topic"`
		ReadingsTopic string   `yaml:"readings_topic"`
		LogsTopic     string   `yaml:"logs_topic"`
		RequiredAcks  int      `yaml:"required_acks"`
		Compression   string   `yaml:"compression"`
		Producer      struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
		Consumer struct {
			GroupID    string        `yaml:"group_id"`
			Workers    int           `yaml:"workers"`
			BufferSize int           `yaml:"buffer_size"`
			RetryMax   int           `yaml:"retry_max"`
			BackoffMin time.Duration `yaml:"backoff_min"`
			BackoffMax time.Duration `yaml:"backoff_max"`
			DLQTopic   string        `yaml:"dlq_topic"`
			MinBytes   int           `yaml:"min_bytes"`
			MaxBytes   int           `yaml:"max_bytes"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	Market struct {
		StreamEnabled  bool          `yaml:"stream_enabled"`
		APIKey         string        `yaml:"api_key"`
		WebSocketURL   string        `yaml:"websocket_url"`
		RESTURL        string        `yaml:"rest_url"`
		ReconnectDelay time.Duration `yaml:"reconnect_delay"`
		PingInterval   time.Duration `yaml:"ping_interval"`
	} `yaml:"market"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Cache struct {
		ResponseTTL time.Duration `yaml:"response_ttl"`
	} `yaml:"cache"`
	Queue struct {
		Workers    int           `yaml:"workers"`
		QueueSize  int           `yaml:"queue_size"`
		RetryLimit int           `yaml:"retry_limit"`
		RetryDelay time.Duration `yaml:"retry_delay"`
	} `yaml:"queue"`
	// Tuning overrides use pointers so an explicit zero in the YAML is
	// distinguishable from an absent key.
	Simulation struct {
		SecondRegimeProb     *float64 `yaml:"second_regime_prob"`
		NarrativePersistence *float64 `yaml:"narrative_persistence"`
		NarrativeNoiseSigma  *float64 `yaml:"narrative_noise_sigma"`
		HeadlinesPerDay      *int     `yaml:"headlines_per_day"`
	} `yaml:"simulation"`
	Signal struct {
		TanhScale       *float64 `yaml:"tanh_scale"`
		HypeAmpFactor   *float64 `yaml:"hype_amp_factor"`
		NeutralBand     *float64 `yaml:"neutral_band"`
		ThresholdLow    *float64 `yaml:"threshold_low"`
		ThresholdMedium *float64 `yaml:"threshold_medium"`
		ThresholdHigh   *float64 `yaml:"threshold_high"`
	} `yaml:"signal"`
	Regions []RegionConfig `yaml:"regions"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("MARKET_API_KEY"); v != "" {
		c.Market.APIKey = v
	}
	if v := os.Getenv("BACKEND"); v != "" {
		c.Backend.Type = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("KAFKA_FEED_TOPIC"); v != "" {
		c.Kafka.FeedTopic = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
		c.Redis.Enabled = true
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Backend.Type == "" {
		return fmt.Errorf("backend.type is required")
	}
	if c.Backend.Type != "kafka" && c.Backend.Type != "log" {
		return fmt.Errorf("backend.type must be 'kafka' or 'log', got '%s'", c.Backend.Type)
	}
	if c.Backend.Type == "kafka" && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers required for kafka backend")
	}
	if len(c.Regions) == 0 {
		return fmt.Errorf("regions cannot be empty")
	}
	seen := make(map[string]bool, len(c.Regions))
	for _, r := range c.Regions {
		if r.ID == "" {
			return fmt.Errorf("region id is required")
		}
		if seen[r.ID] {
			return fmt.Errorf("duplicate region id '%s'", r.ID)
		}
		seen[r.ID] = true
	}
	if c.Market.StreamEnabled && c.Market.APIKey == "" {
		return fmt.Errorf("market.api_key required when market.stream_enabled")
	}
	return nil
}

// MarketSymbols lists the distinct market symbols across regions.
func (c *Config) MarketSymbols() []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(c.Regions))
	for _, r := range c.Regions {
		s := r.Market.Symbol
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
