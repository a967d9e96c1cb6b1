package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"restaurant-hub/restaurant-svc/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore keeps each session as JSON under session:<id>. Every save
// pushes the expiry forward.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Client: client, TTL: ttl}
}

func (s *RedisSessionStore) New() *domain.Session {
	return &domain.Session{ID: uuid.NewString()}
}

func (s *RedisSessionStore) Load(ctx context.Context, id string) (*domain.Session, error) {
	payload, err := s.Client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	sess.ID = id
	return &sess, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, sess *domain.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, sessionKeyPrefix+sess.ID, payload, s.TTL).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.Client.Del(ctx, sessionKeyPrefix+id).Err()
}

// MemorySessionStore is a process-local store for running without Redis.
// Sessions are kept as encoded JSON so callers never share a draft.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string][]byte)}
}

func (s *MemorySessionStore) New() *domain.Session {
	return &domain.Session{ID: uuid.NewString()}
}

func (s *MemorySessionStore) Load(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	payload, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}

	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, err
	}
	sess.ID = id
	return &sess, nil
}

func (s *MemorySessionStore) Save(_ context.Context, sess *domain.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sessions[sess.ID] = payload
	s.mu.Unlock()
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}
