package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/set-night/intakebot/internal/domain"
)

func TestMemoryStoreBasics(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, ok := store.Get(ctx, "u1"); ok {
		t.Fatal("empty store returned a session")
	}

	store.Put(ctx, "u1", domain.NewSession())
	store.Put(ctx, "u2", domain.NewSession())
	if store.Len() != 2 {
		t.Errorf("Len = %d, want 2", store.Len())
	}

	s, ok := store.Get(ctx, "u1")
	if !ok || s.UpdatedAt.IsZero() {
		t.Errorf("Get(u1) = %+v, %v; want stamped session", s, ok)
	}

	store.Delete(ctx, "u1")
	store.Delete(ctx, "missing")
	if _, ok := store.Get(ctx, "u1"); ok {
		t.Error("u1 still present after Delete")
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
}

func TestEvictIdle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	store.Put(ctx, "old", domain.NewSession())
	now = now.Add(20 * time.Minute)
	store.Put(ctx, "fresh", domain.NewSession())
	now = now.Add(5 * time.Minute)

	evicted := store.EvictIdle(10 * time.Minute)
	sort.Strings(evicted)
	if len(evicted) != 1 || evicted[0] != "old" {
		t.Errorf("evicted = %v, want [old]", evicted)
	}
	if _, ok := store.Get(ctx, "fresh"); !ok {
		t.Error("fresh session was evicted")
	}
}

func TestKeyedMutexSerializesPerKey(t *testing.T) {
	k := NewKeyedMutex()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("same")
			defer unlock()

			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxSeen != 1 {
		t.Errorf("max concurrent holders = %d, want 1", maxSeen)
	}
	if k.size() != 0 {
		t.Errorf("lock entries left = %d, want 0", k.size())
	}
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	k := NewKeyedMutex()
	unlockA := k.Lock("a")

	done := make(chan struct{})
	go func() {
		unlock := k.Lock("b")
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on b blocked behind a")
	}
	unlockA()
}
