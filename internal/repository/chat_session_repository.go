package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"book-talk-api/internal/client"
)

// ErrSessionNotFound is returned when a chat session does not exist or
// its TTL has expired
var ErrSessionNotFound = errors.New("chat session not found")

// ChatSession is a book talk conversation stored in redis. Each read or
// write refreshes the TTL so active conversations stay alive.
type ChatSession struct {
	SessionID string            `json:"session_id"`
	UserID    uint              `json:"user_id"`
	BookID    uint              `json:"book_id"`
	History   []client.ChatTurn `json:"history"`
	CreatedAt time.Time         `json:"created_at"`
}

// ChatSessionRepository defines redis-backed storage for AI chat sessions
type ChatSessionRepository interface {
	Save(ctx context.Context, session *ChatSession) error
	Find(ctx context.Context, sessionID string) (*ChatSession, error)
	Delete(ctx context.Context, sessionID string) error
}

type chatSessionRepositoryImpl struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewChatSessionRepository creates a new instance of ChatSessionRepository
func NewChatSessionRepository(rdb *redis.Client, ttl time.Duration) ChatSessionRepository {
	return &chatSessionRepositoryImpl{rdb: rdb, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("chat:session:%s", sessionID)
}

func (r *chatSessionRepositoryImpl) Save(ctx context.Context, session *ChatSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal chat session: %w", err)
	}
	return r.rdb.Set(ctx, sessionKey(session.SessionID), data, r.ttl).Err()
}

func (r *chatSessionRepositoryImpl) Find(ctx context.Context, sessionID string) (*ChatSession, error) {
	data, err := r.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session ChatSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal chat session: %w", err)
	}

	// Sliding expiry for active conversations
	if err := r.rdb.Expire(ctx, sessionKey(sessionID), r.ttl).Err(); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *chatSessionRepositoryImpl) Delete(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, sessionKey(sessionID)).Err()
}
