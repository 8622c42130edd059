package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
	if c.Engine.CapacityPerSide != 1024 {
		t.Fatalf("capacity = %d, want 1024", c.Engine.CapacityPerSide)
	}
	if len(c.Engine.Symbols) != 8 {
		t.Fatalf("symbol universe = %v", c.Engine.Symbols)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.GRPCAddr != ":50051" {
		t.Fatalf("grpc addr = %q", cfg.Server.GRPCAddr)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
engine:
  capacity_per_side: 64
  symbols: [ONE, TWO]
snapshot:
  interval: 5s
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Engine.CapacityPerSide != 64 {
		t.Fatalf("capacity = %d, want 64", cfg.Engine.CapacityPerSide)
	}
	if len(cfg.Engine.Symbols) != 2 || cfg.Engine.Symbols[0] != "ONE" {
		t.Fatalf("symbols = %v", cfg.Engine.Symbols)
	}
	if cfg.Snapshot.Interval != 5*time.Second {
		t.Fatalf("interval = %v", cfg.Snapshot.Interval)
	}
	// Untouched sections keep their defaults.
	if cfg.Kafka.FillsTopic != "engine.fills" {
		t.Fatalf("fills topic = %q", cfg.Kafka.FillsTopic)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("ONYMOS_GRPC_ADDR", ":6000")
	t.Setenv("ONYMOS_CAPACITY_PER_SIDE", "32")
	t.Setenv("ONYMOS_KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.GRPCAddr != ":6000" {
		t.Fatalf("grpc addr = %q", cfg.Server.GRPCAddr)
	}
	if cfg.Engine.CapacityPerSide != 32 {
		t.Fatalf("capacity = %d", cfg.Engine.CapacityPerSide)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Fatalf("brokers = %v", cfg.Kafka.Brokers)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	c := Default()
	c.Engine.CapacityPerSide = 0
	if err := c.Validate(); err == nil {
		t.Fatal("zero capacity validated")
	}

	c = Default()
	c.Engine.RetireRingSize = 1000 // not a power of two
	if err := c.Validate(); err == nil {
		t.Fatal("non power-of-two ring size validated")
	}

	c = Default()
	c.Kafka.Brokers = nil
	if err := c.Validate(); err == nil {
		t.Fatal("empty broker list validated")
	}

	c = Default()
	c.Feeder.Enabled = true
	c.Feeder.MaxPrice = 5 // below MinPrice
	if err := c.Validate(); err == nil {
		t.Fatal("inverted feeder price bounds validated")
	}
}
