package auth

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	SessionTTL    = 24 * time.Hour
	SessionCookie = "warbler_session"
)

var ErrNoSession = errors.New("session not found")

// SessionStore maps opaque session ids to user ids. The stored id is the only
// thing a request may be trusted for; the actual user row is reloaded from the
// database on every request.
type SessionStore interface {
	Create(ctx context.Context, userID uint) (string, error)
	Fetch(ctx context.Context, sessionID string) (uint, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessions keeps sessions in Redis under "session:<id>" with a TTL.
type RedisSessions struct {
	rdb *redis.Client
}

func NewRedisSessions(rdb *redis.Client) *RedisSessions {
	return &RedisSessions{rdb: rdb}
}

func (s *RedisSessions) Create(ctx context.Context, userID uint) (string, error) {
	sid := uuid.New().String()
	err := s.rdb.Set(ctx, "session:"+sid, strconv.FormatUint(uint64(userID), 10), SessionTTL).Err()
	return sid, err
}

func (s *RedisSessions) Fetch(ctx context.Context, sessionID string) (uint, error) {
	val, err := s.rdb.Get(ctx, "session:"+sessionID).Result()
	if err == redis.Nil {
		return 0, ErrNoSession
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, ErrNoSession
	}
	return uint(id), nil
}

func (s *RedisSessions) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, "session:"+sessionID).Err()
}

// MemorySessions backs sessions when Redis is not available (development and
// tests).
type MemorySessions struct {
	mu       sync.Mutex
	sessions map[string]memorySession
}

type memorySession struct {
	userID    uint
	expiresAt time.Time
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: make(map[string]memorySession)}
}

func (s *MemorySessions) Create(_ context.Context, userID uint) (string, error) {
	sid := uuid.New().String()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = memorySession{userID: userID, expiresAt: time.Now().Add(SessionTTL)}
	return sid, nil
}

func (s *MemorySessions) Fetch(_ context.Context, sessionID string) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return 0, ErrNoSession
	}
	if time.Now().After(sess.expiresAt) {
		delete(s.sessions, sessionID)
		return 0, ErrNoSession
	}
	return sess.userID, nil
}

func (s *MemorySessions) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
