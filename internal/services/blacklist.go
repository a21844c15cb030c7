package services

import (
	"sync"
	"time"
)

// TokenBlacklist tracks revoked session tokens until they would have expired
// anyway. Entries are pruned lazily on access.
type TokenBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewTokenBlacklist() *TokenBlacklist {
	return &TokenBlacklist{revoked: make(map[string]time.Time)}
}

func (b *TokenBlacklist) Revoke(token string, until time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prune()
	b.revoked[token] = until
}

func (b *TokenBlacklist) IsRevoked(token string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prune()
	_, ok := b.revoked[token]
	return ok
}

func (b *TokenBlacklist) prune() {
	now := time.Now()
	for token, until := range b.revoked {
		if now.After(until) {
			delete(b.revoked, token)
		}
	}
}
