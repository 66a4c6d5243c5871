package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_ExpiresAfterTTL(t *testing.T) {
	s := NewStore(time.Minute)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	ctx := context.Background()
	s.Set(ctx, "rounds", []string{"Jornada 1"})

	if _, ok := s.Get(ctx, "rounds"); !ok {
		t.Fatal("fresh entry missing")
	}

	now = now.Add(2 * time.Minute)
	if _, ok := s.Get(ctx, "rounds"); ok {
		t.Fatal("expired entry still served")
	}
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	s := NewStore(0)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	ctx := context.Background()
	s.Set(ctx, "leagues", 6)

	now = now.Add(24 * time.Hour)
	if v, ok := s.Get(ctx, "leagues"); !ok || v != 6 {
		t.Fatalf("Get = %v, %v", v, ok)
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	s := NewStore(time.Minute)
	ctx := context.Background()

	s.Set(ctx, "fixtures::39::Jornada 1", "a")
	s.Set(ctx, "fixtures::39::Jornada 2", "b")
	s.Set(ctx, "rounds::39", "c")

	s.DeletePrefix(ctx, "fixtures::39::")

	if _, ok := s.Get(ctx, "fixtures::39::Jornada 1"); ok {
		t.Fatal("prefixed key survived DeletePrefix")
	}
	if _, ok := s.Get(ctx, "rounds::39"); !ok {
		t.Fatal("unrelated key dropped")
	}
}

func TestStore_GetOrLoad_CachesResult(t *testing.T) {
	s := NewStore(time.Minute)
	ctx := context.Background()
	var loads atomic.Int32

	loader := func(context.Context) (any, error) {
		loads.Add(1)
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		v, err := s.GetOrLoad(ctx, "k", loader)
		if err != nil {
			t.Fatalf("GetOrLoad: %v", err)
		}
		if v != "value" {
			t.Fatalf("GetOrLoad = %v", v)
		}
	}

	if got := loads.Load(); got != 1 {
		t.Fatalf("loader ran %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_ErrorNotCached(t *testing.T) {
	s := NewStore(time.Minute)
	ctx := context.Background()
	var loads atomic.Int32
	boom := errors.New("upstream down")

	loader := func(context.Context) (any, error) {
		if loads.Add(1) == 1 {
			return nil, boom
		}
		return "recovered", nil
	}

	if _, err := s.GetOrLoad(ctx, "k", loader); !errors.Is(err, boom) {
		t.Fatalf("first load err = %v, want %v", err, boom)
	}
	v, err := s.GetOrLoad(ctx, "k", loader)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if v != "recovered" {
		t.Fatalf("second load = %v", v)
	}
}
