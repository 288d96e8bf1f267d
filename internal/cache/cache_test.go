package cache

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestMemory_RoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.Set(ctx, "k", "answer text", 5*time.Second)
	got, ok := m.Get(ctx, "k")
	if !ok {
		t.Fatal("Get() missed immediately after Set")
	}
	if got != "answer text" {
		t.Errorf("Get() = %q, want %q", got, "answer text")
	}
}

func TestMemory_TTLExpiry(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	current := time.Now()
	m.now = func() time.Time { return current }

	m.Set(ctx, "k", "v", 5*time.Second)

	current = current.Add(4 * time.Second)
	if _, ok := m.Get(ctx, "k"); !ok {
		t.Error("entry expired before its TTL")
	}

	current = current.Add(2 * time.Second)
	if _, ok := m.Get(ctx, "k"); ok {
		t.Error("entry returned past its TTL")
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d after lazy eviction, want 0", m.Len())
	}
}

func TestMemory_Overwrite(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.Set(ctx, "k", "old", time.Minute)
	m.Set(ctx, "k", "new", time.Minute)
	got, _ := m.Get(ctx, "k")
	if got != "new" {
		t.Errorf("Get() = %q, want %q", got, "new")
	}
}

func TestMemory_MissOnAbsent(t *testing.T) {
	m := NewMemory()
	if _, ok := m.Get(context.Background(), "nope"); ok {
		t.Error("Get() hit on absent key")
	}
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			m.Set(ctx, "shared", "v", time.Minute)
		}()
		go func() {
			defer wg.Done()
			m.Get(ctx, "shared")
		}()
	}
	wg.Wait()
}

func TestKey_Normalization(t *testing.T) {
	a := Key("What plywood brands do you carry?")
	b := Key("  what   plywood brands do you carry ")
	if a != b {
		t.Errorf("normalized variants should share a key:\n%s\n%s", a, b)
	}

	c := Key("completely different question")
	if a == c {
		t.Error("different questions should not collide")
	}
}

func TestKey_Prefix(t *testing.T) {
	if k := Key("q"); !strings.HasPrefix(k, "faqbot:answer:") {
		t.Errorf("Key() = %q, want faqbot:answer: prefix", k)
	}
}

func TestNew_FallsBackWithoutRedis(t *testing.T) {
	// Port 1 is never a Redis server; New must degrade, not fail.
	s := New("redis://127.0.0.1:1/0")
	if _, ok := s.(*Memory); !ok {
		t.Errorf("New() = %T, want *Memory fallback", s)
	}
}
