package cacheinfra

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		Capacity:           100,
		NumShards:          4,
		TTL:                time.Minute,
		EvictionPercentage: 10,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		field   string
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero capacity", mutate: func(c *Config) { c.Capacity = 0 }, field: "Capacity", wantErr: true},
		{name: "zero shards", mutate: func(c *Config) { c.NumShards = 0 }, field: "NumShards", wantErr: true},
		{name: "zero ttl", mutate: func(c *Config) { c.TTL = 0 }, field: "TTL", wantErr: true},
		{name: "eviction too high", mutate: func(c *Config) { c.EvictionPercentage = 101 }, field: "EvictionPercentage", wantErr: true},
		{name: "negative interval", mutate: func(c *Config) { c.EvictionInterval = -time.Second }, field: "EvictionInterval", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			cfgErr, ok := err.(*ConfigError)
			if !ok {
				t.Fatalf("expected *ConfigError, got %T (%v)", err, err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, cfgErr.Field)
			}
		})
	}
}

func TestToSturdycOptions(t *testing.T) {
	cfg := testConfig()
	if len(cfg.ToSturdycOptions()) != 0 {
		t.Errorf("expected no options without an eviction interval")
	}

	cfg.EvictionInterval = 5 * time.Second
	if len(cfg.ToSturdycOptions()) != 1 {
		t.Errorf("expected one option with an eviction interval")
	}
}

func TestNewSturdycStore_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Capacity = -1

	if _, err := NewSturdycStore(cfg); err == nil {
		t.Fatal("expected invalid config to be rejected")
	}
}

func TestSturdycStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	store, err := NewSturdycStore(testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	payload := []byte("page")
	if err := store.Set(ctx, "k", payload); err != nil {
		t.Fatalf("set: %v", err)
	}
	payload[0] = 'X'

	got, ok, err := store.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(got) != "page" {
		t.Fatalf("stored entry was mutated through the caller's slice: %q", got)
	}

	got[0] = 'Y'
	again, _, _ := store.Get(ctx, "k")
	if string(again) != "page" {
		t.Fatalf("stored entry was mutated through a returned slice: %q", again)
	}

	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatal("expected miss after delete")
	}
}

func TestSturdycStore_EmptyPayloadIsAHit(t *testing.T) {
	ctx := context.Background()
	store, err := NewSturdycStore(testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := store.Set(ctx, "empty", []byte{}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok, err := store.Get(ctx, "empty"); err != nil || !ok {
		t.Fatalf("expected an empty payload to be a hit, got ok=%v err=%v", ok, err)
	}
}

func TestSturdycStore_DeleteByPrefix(t *testing.T) {
	ctx := context.Background()
	store, err := NewSturdycStore(testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 5; i++ {
		_ = store.Set(ctx, fmt.Sprintf("product::filterKey:%d", i), []byte{0x90})
	}
	_ = store.Set(ctx, "user::filterKey:0", []byte{0x90})

	if err := store.DeleteByPrefix(ctx, "product::"); err != nil {
		t.Fatalf("delete by prefix: %v", err)
	}
	if store.Size() != 1 {
		t.Fatalf("expected one entry left, got %d", store.Size())
	}
}

func TestSturdycStore_CancelledContext(t *testing.T) {
	store, err := NewSturdycStore(testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := store.Get(ctx, "k"); err == nil {
		t.Error("expected Get to honour cancellation")
	}
	if err := store.Set(ctx, "k", []byte("v")); err == nil {
		t.Error("expected Set to honour cancellation")
	}
}
