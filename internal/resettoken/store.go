// Package resettoken holds the single-use password-reset tokens. A token
// maps to the email it was issued for and redeems at most once.
package resettoken

import (
	"context"
	"sync"
	"time"
)

// Store is the token table injected into the user service. Put records a
// token for an email; Redeem removes the token and returns the email, or
// ok=false when the token is unknown or already used. TTL of zero means
// the token never expires.
type Store interface {
	Put(ctx context.Context, token, email string, ttl time.Duration) error
	Redeem(ctx context.Context, token string) (email string, ok bool, err error)
}

// Memory is the default backend: a mutex-guarded map, lost on restart.
type Memory struct {
	mu     sync.Mutex
	tokens map[string]string
}

func NewMemory() *Memory {
	return &Memory{tokens: make(map[string]string)}
}

// Put stores the mapping. The TTL is ignored; tokens live until redeemed
// or the process restarts.
func (m *Memory) Put(_ context.Context, token, email string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = email
	return nil
}

func (m *Memory) Redeem(_ context.Context, token string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email, ok := m.tokens[token]
	if ok {
		delete(m.tokens, token)
	}
	return email, ok, nil
}
