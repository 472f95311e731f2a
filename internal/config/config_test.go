package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.ServerPort == "" {
		t.Fatalf("expected default server port")
	}
	if cfg.MotionSource != "push" {
		t.Fatalf("expected push motion source default, got %q", cfg.MotionSource)
	}
	if cfg.FixTimeout() != 5*time.Second {
		t.Fatalf("expected 5s fix timeout default, got %v", cfg.FixTimeout())
	}
	if cfg.ClearOnStart || cfg.StampAtEvent {
		t.Fatalf("expected reference-behavior defaults")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", ":9000")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("MOTION_SOURCE", "kafka")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092,broker-2:9092")
	t.Setenv("FIX_TIMEOUT_MS", "250")
	t.Setenv("CLEAR_ON_START", "true")

	cfg := Load()
	if cfg.ServerPort != ":9000" {
		t.Fatalf("expected override port")
	}
	if cfg.RedisAddr != "redis:6379" {
		t.Fatalf("expected override redis")
	}
	if cfg.MotionSource != "kafka" {
		t.Fatalf("expected override motion source")
	}
	if brokers := cfg.KafkaBrokerList(); len(brokers) != 2 || brokers[1] != "broker-2:9092" {
		t.Fatalf("unexpected brokers: %v", brokers)
	}
	if cfg.FixTimeout() != 250*time.Millisecond {
		t.Fatalf("expected override fix timeout, got %v", cfg.FixTimeout())
	}
	if !cfg.ClearOnStart {
		t.Fatalf("expected clear-on-start override")
	}
}

func TestKafkaBrokerListEmpty(t *testing.T) {
	cfg := Config{}
	if cfg.KafkaBrokerList() != nil {
		t.Fatalf("expected nil broker list when unset")
	}
}
