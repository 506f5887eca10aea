package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/set-night/intakebot/internal/domain"
)

// SessionStore maps user identifiers to dialogue sessions.
type SessionStore interface {
	Get(ctx context.Context, userID string) (*domain.Session, bool)
	Put(ctx context.Context, userID string, s *domain.Session)
	Delete(ctx context.Context, userID string)
	Len() int
}

// MemoryStore is a process-wide in-memory SessionStore.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*domain.Session),
		now:      time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, userID string) (*domain.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[userID]
	return s, ok
}

func (m *MemoryStore) Put(_ context.Context, userID string, s *domain.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.UpdatedAt = m.now()
	m.sessions[userID] = s
}

func (m *MemoryStore) Delete(_ context.Context, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// EvictIdle removes sessions untouched for longer than ttl and returns their user IDs.
func (m *MemoryStore) EvictIdle(ttl time.Duration) []string {
	cutoff := m.now().Add(-ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	var evicted []string
	for id, s := range m.sessions {
		if s.UpdatedAt.Before(cutoff) {
			delete(m.sessions, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}

// StartEvictor sweeps idle sessions every interval until ctx is done.
// onEvict is called once per evicted user.
func StartEvictor(ctx context.Context, store *MemoryStore, ttl, interval time.Duration, onEvict func(userID string)) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		slog.Info("session evictor started", "interval", interval, "ttl", ttl)
		for {
			select {
			case <-ctx.Done():
				slog.Info("session evictor stopped", "reason", ctx.Err())
				return
			case <-ticker.C:
				evicted := store.EvictIdle(ttl)
				if len(evicted) == 0 {
					continue
				}
				slog.Info("evicted idle sessions", "count", len(evicted))
				if onEvict != nil {
					for _, id := range evicted {
						onEvict(id)
					}
				}
			}
		}
	}()
}

// KeyedMutex serializes work per key. Entries are dropped once no holder remains.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyedLock)}
}

// Lock blocks until key is free and returns the unlock function.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

func (k *KeyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
