package builder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/nayeemjohny/pcbuilder-backend/pkg/errors"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/redis"
)

type sessionCache interface {
	SessionKey(sessionID string) string
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// SessionStore persists build sessions as JSON snapshots in Redis. Every
// save refreshes the TTL, so active sessions stay alive and abandoned
// ones expire on their own.
type SessionStore struct {
	cache sessionCache
	ttl   time.Duration
}

// NewSessionStore wires the store against the shared Redis client.
func NewSessionStore(cache sessionCache, ttl time.Duration) (*SessionStore, error) {
	if cache == nil {
		return nil, fmt.Errorf("builder: session cache is required")
	}
	return &SessionStore{cache: cache, ttl: ttl}, nil
}

// Save writes the session snapshot and resets its TTL.
func (s *SessionStore) Save(ctx context.Context, build *Build) error {
	payload, err := json.Marshal(build)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode session snapshot")
	}
	key := s.cache.SessionKey(build.ID.String())
	if err := s.cache.Set(ctx, key, payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store session snapshot")
	}
	return nil
}

// Load reads a session snapshot. Missing or expired sessions surface as
// a not-found error.
func (s *SessionStore) Load(ctx context.Context, id uuid.UUID) (*Build, error) {
	raw, err := s.cache.Get(ctx, s.cache.SessionKey(id.String()))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "builder session not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session snapshot")
	}

	var build Build
	if err := json.Unmarshal([]byte(raw), &build); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode session snapshot")
	}
	return &build, nil
}

// Delete removes a session snapshot. Deleting an absent session is fine.
func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.cache.Del(ctx, s.cache.SessionKey(id.String())); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete session snapshot")
	}
	return nil
}
