package cache

import (
	"context"
	"testing"
)

func TestInitRedis_NoAddr(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	// Should not panic or fatal, just log and return
	InitRedis(context.Background())
	if Client != nil {
		t.Fatal("Client must stay nil without an address")
	}
}
