// Package config loads the engine configuration from YAML with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config owns everything the core deliberately does not: the symbol
// universe, per-side capacity, worker concurrency, broker endpoints and
// storage directories.
type Config struct {
	Engine struct {
		CapacityPerSide int      `yaml:"capacity_per_side"`
		Symbols         []string `yaml:"symbols"`
		RetireRingSize  uint64   `yaml:"retire_ring_size"`
	} `yaml:"engine"`

	Server struct {
		GRPCAddr string `yaml:"grpc_addr"`
		HTTPAddr string `yaml:"http_addr"`
	} `yaml:"server"`

	WAL struct {
		Dir             string        `yaml:"dir"`
		SegmentSize     int64         `yaml:"segment_size"`
		SegmentDuration time.Duration `yaml:"segment_duration"`
	} `yaml:"wal"`

	Outbox struct {
		Dir string `yaml:"dir"`
	} `yaml:"outbox"`

	Snapshot struct {
		Dir      string        `yaml:"dir"`
		Interval time.Duration `yaml:"interval"`
	} `yaml:"snapshot"`

	Kafka struct {
		Brokers     []string `yaml:"brokers"`
		FillsTopic  string   `yaml:"fills_topic"`
		QuotesTopic string   `yaml:"quotes_topic"`
	} `yaml:"kafka"`

	Quotes struct {
		Interval time.Duration `yaml:"interval"`
	} `yaml:"quotes"`

	Feeder struct {
		Enabled         bool  `yaml:"enabled"`
		Workers         int   `yaml:"workers"`
		OrdersPerWorker int   `yaml:"orders_per_worker"`
		MaxQty          int64 `yaml:"max_qty"`
		MinPrice        int64 `yaml:"min_price"`
		MaxPrice        int64 `yaml:"max_price"`
	} `yaml:"feeder"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// Default mirrors the legacy engine's constants: 1024 orders per side,
// the original eight-ticker universe, four feeder workers.
func Default() Config {
	var c Config
	c.Engine.CapacityPerSide = 1024
	c.Engine.Symbols = []string{"AAPL", "GOOG", "MSFT", "AMZN", "FB", "TSLA", "NFLX", "NVDA"}
	c.Engine.RetireRingSize = 1 << 16
	c.Server.GRPCAddr = ":50051"
	c.Server.HTTPAddr = ":8080"
	c.WAL.Dir = "./data/wal_entry"
	c.WAL.SegmentSize = 2 * 1024 * 1024
	c.WAL.SegmentDuration = time.Minute
	c.Outbox.Dir = "./data/outbox"
	c.Snapshot.Dir = "./data/snapshots"
	c.Snapshot.Interval = 30 * time.Second
	c.Kafka.Brokers = []string{"localhost:9092"}
	c.Kafka.FillsTopic = "engine.fills"
	c.Kafka.QuotesTopic = "engine.quotes"
	c.Quotes.Interval = time.Second
	c.Feeder.Enabled = false
	c.Feeder.Workers = 4
	c.Feeder.OrdersPerWorker = 10000
	c.Feeder.MaxQty = 1000
	c.Feeder.MinPrice = 10
	c.Feeder.MaxPrice = 500
	c.Logging.Level = "info"
	return c
}

// Load reads the YAML file at path (optional), applies environment
// overrides and validates the result. Priority: env > file > defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	_ = godotenv.Load() // .env is optional

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Engine.CapacityPerSide <= 0 {
		return fmt.Errorf("engine.capacity_per_side must be positive")
	}
	if c.Engine.RetireRingSize == 0 || c.Engine.RetireRingSize&(c.Engine.RetireRingSize-1) != 0 {
		return fmt.Errorf("engine.retire_ring_size must be a power of two")
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("at least one kafka broker is required")
	}
	if c.Feeder.Enabled {
		if c.Feeder.Workers <= 0 || c.Feeder.OrdersPerWorker <= 0 {
			return fmt.Errorf("feeder.workers and feeder.orders_per_worker must be positive")
		}
		if c.Feeder.MinPrice <= 0 || c.Feeder.MaxPrice < c.Feeder.MinPrice || c.Feeder.MaxQty <= 0 {
			return fmt.Errorf("feeder price/qty bounds are invalid")
		}
	}
	return nil
}

func overrideWithEnv(cfg *Config) {
	if v := os.Getenv("ONYMOS_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("ONYMOS_GRPC_ADDR"); v != "" {
		cfg.Server.GRPCAddr = v
	}
	if v := os.Getenv("ONYMOS_HTTP_ADDR"); v != "" {
		cfg.Server.HTTPAddr = v
	}
	if v := os.Getenv("ONYMOS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ONYMOS_CAPACITY_PER_SIDE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Engine.CapacityPerSide = n
		}
	}
	if v := os.Getenv("ONYMOS_FEEDER_ENABLED"); v != "" {
		cfg.Feeder.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
}
