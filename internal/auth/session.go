package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned for unknown or expired session tokens.
var ErrSessionNotFound = errors.New("session not found")

// Session is the server-held identity for a logged-in caller. Lang is the
// caller's persisted language preference.
type Session struct {
	Token  string
	UserID string
	Lang   string
}

// SessionStore persists sessions keyed by opaque token.
type SessionStore interface {
	Create(ctx context.Context, userID, lang string) (*Session, error)
	Get(ctx context.Context, token string) (*Session, error)
	SetLang(ctx context.Context, token, lang string) error
	Delete(ctx context.Context, token string) error
}

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore returns a Redis-backed store. Sessions expire after
// ttl and are removed eagerly at logout.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) SessionStore {
	return &redisSessionStore{client: client, ttl: ttl}
}

func sessionKey(token string) string {
	return "session:" + token
}

func (s *redisSessionStore) Create(ctx context.Context, userID, lang string) (*Session, error) {
	session := &Session{
		Token:  uuid.NewString(),
		UserID: userID,
		Lang:   lang,
	}
	key := sessionKey(session.Token)
	if err := s.client.HSet(ctx, key, "user_id", userID, "lang", lang).Err(); err != nil {
		return nil, err
	}
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *redisSessionStore) Get(ctx context.Context, token string) (*Session, error) {
	fields, err := s.client.HGetAll(ctx, sessionKey(token)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrSessionNotFound
	}
	return &Session{
		Token:  token,
		UserID: fields["user_id"],
		Lang:   fields["lang"],
	}, nil
}

func (s *redisSessionStore) SetLang(ctx context.Context, token, lang string) error {
	return s.client.HSet(ctx, sessionKey(token), "lang", lang).Err()
}

func (s *redisSessionStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, sessionKey(token)).Err()
}

type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewMemorySessionStore returns an in-process store used by tests and by
// deployments without Redis.
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{sessions: make(map[string]*Session)}
}

func (s *memorySessionStore) Create(_ context.Context, userID, lang string) (*Session, error) {
	session := &Session{Token: uuid.NewString(), UserID: userID, Lang: lang}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return &Session{Token: session.Token, UserID: userID, Lang: lang}, nil
}

func (s *memorySessionStore) Get(_ context.Context, token string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &Session{Token: session.Token, UserID: session.UserID, Lang: session.Lang}, nil
}

func (s *memorySessionStore) SetLang(_ context.Context, token, lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[token]; ok {
		session.Lang = lang
	}
	return nil
}

func (s *memorySessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
