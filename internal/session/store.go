// Package session keeps the server-side half of a login: a random session id
// mapped to a user id with an expiry. The cookie only carries a signed
// reference to it, so logout can revoke a session before its token expires.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("session not found")

type Store interface {
	Create(ctx context.Context, userID uint, ttl time.Duration) (string, error)
	Lookup(ctx context.Context, sessionID string) (uint, error)
	Destroy(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
}

func newSessionID() string {
	return uuid.NewString()
}
