package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/fakhrymubarak/weather-station/internal/config"
	"github.com/spf13/viper"
)

func withMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	viper.Set("redis.addr", mr.Addr())
	config.ReloadConfigForTest()
	ResetClientForTest()
	t.Cleanup(func() {
		_ = Close()
		ResetClientForTest()
		viper.Set("redis.addr", "")
	})
	return mr
}

func TestEnabled(t *testing.T) {
	viper.Set("redis.addr", "")
	if Enabled() {
		t.Error("Expected Redis to be disabled without an address")
	}

	withMiniRedis(t)
	if !Enabled() {
		t.Error("Expected Redis to be enabled with an address")
	}
}

func TestGetClient(t *testing.T) {
	withMiniRedis(t)
	client := GetClient()
	if client == nil {
		t.Error("Expected Redis client to be created")
	}

	// Test that we can get the same client multiple times (singleton pattern)
	client2 := GetClient()
	if client != client2 {
		t.Error("Expected same client instance (singleton pattern)")
	}
}

func TestPing(t *testing.T) {
	mr := withMiniRedis(t)
	if err := Ping(context.Background()); err != nil {
		t.Fatalf("Expected ping to succeed, got %v", err)
	}

	mr.Close()
	if err := Ping(context.Background()); err == nil {
		t.Error("Expected ping to fail once Redis is gone")
	}
}

func TestResetClientForTest(t *testing.T) {
	withMiniRedis(t)
	client1 := GetClient()
	ResetClientForTest()
	client2 := GetClient()
	if client1 == client2 {
		t.Error("Expected a new client instance after reset")
	}
	_ = client1.Close()
}

func TestClose_WithoutClient(t *testing.T) {
	ResetClientForTest()
	if err := Close(); err != nil {
		t.Errorf("Expected nil error closing an unused client, got %v", err)
	}
}

func BenchmarkGetClient(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GetClient()
	}
}
