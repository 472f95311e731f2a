package db

import (
	"context"
	"testing"

	"backend-shaketrack/internal/config"

	"github.com/alicebob/miniredis/v2"
)

func TestConnectRedisEmpty(t *testing.T) {
	cfg := config.Config{RedisAddr: ""}
	if client := ConnectRedis(cfg); client != nil {
		t.Fatalf("expected nil redis client when addr empty")
	}
}

func TestConnectRedisConfigured(t *testing.T) {
	s := miniredis.RunT(t)
	cfg := config.Config{RedisAddr: s.Addr()}

	client := ConnectRedis(cfg)
	if client == nil {
		t.Fatalf("expected redis client")
	}
	defer client.Close()

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("ping: %v", err)
	}
}
