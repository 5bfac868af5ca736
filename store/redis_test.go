package store

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rushteam/feedrank/core"
)

// 127.0.0.1:1 上没有监听者，连接会被立即拒绝。
const unreachableAddr = "127.0.0.1:1"

func TestNewRedisStore_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	s, err := NewRedisStore(ctx, unreachableAddr, 0)
	if err == nil {
		_ = s.Close()
		t.Fatal("expected connect error")
	}
	if !core.IsUnavailable(err) {
		t.Errorf("err = %v, want UNAVAILABLE", err)
	}
}

func TestRedisStore_ErrorsAreUnavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        unreachableAddr,
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	s := NewRedisStoreWithClient(client)
	defer s.Close()
	ctx := context.Background()

	if _, err := s.Get(ctx, "k"); !core.IsUnavailable(err) || core.IsStoreNotFound(err) {
		t.Errorf("Get() err = %v, want UNAVAILABLE", err)
	}
	if err := s.Set(ctx, "k", []byte("v")); !core.IsUnavailable(err) {
		t.Errorf("Set() err = %v, want UNAVAILABLE", err)
	}
	if _, err := s.BatchGet(ctx, []string{"a", "b"}); !core.IsUnavailable(err) {
		t.Errorf("BatchGet() err = %v, want UNAVAILABLE", err)
	}
	got, err := s.BatchGet(ctx, nil)
	if err != nil || len(got) != 0 {
		t.Errorf("BatchGet(nil) = %v, %v", got, err)
	}
}

func TestExpiration(t *testing.T) {
	tests := []struct {
		ttl  []int
		want time.Duration
	}{
		{nil, 0},
		{[]int{0}, 0},
		{[]int{-5}, 0},
		{[]int{30}, 30 * time.Second},
	}
	for _, tt := range tests {
		if got := expiration(tt.ttl); got != tt.want {
			t.Errorf("expiration(%v) = %v, want %v", tt.ttl, got, tt.want)
		}
	}
}
