package cache

import (
	"testing"
)

func TestOptions(t *testing.T) {
	t.Setenv("REDIS_URL", "cache.internal:6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_POOL_SIZE", "not_a_number")

	opts := options()
	if opts.Addr != "cache.internal:6380" {
		t.Errorf("Addr = %s", opts.Addr)
	}
	if opts.DB != 2 {
		t.Errorf("DB = %d, want 2", opts.DB)
	}
	if opts.PoolSize != 50 {
		t.Errorf("PoolSize = %d, want default 50", opts.PoolSize)
	}
}

func TestNew_NoRedis(t *testing.T) {
	t.Setenv("REDIS_URL", "127.0.0.1:1")

	if service := New(); service != nil {
		t.Errorf("expected nil service when Redis is unreachable, got %T", service)
	}
}

func TestClient_NilService(t *testing.T) {
	if c := Client(nil); c != nil {
		t.Error("Client(nil) should be nil")
	}
}

func TestService_Interface(t *testing.T) {
	var _ Service = (*service)(nil)
}
