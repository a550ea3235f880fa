package auth

import (
	"context"
	"sync"
	"time"

	"predictive-guardian/internal/config"
)

// KeyLookup resolves an API key to the client it was issued to.
// An empty owner with a nil error means the key is unknown.
type KeyLookup interface {
	GetAPIKey(ctx context.Context, apiKey string) (string, error)
}

type cacheEntry struct {
	owner     string
	expiresAt time.Time
}

type Authenticator struct {
	localCache sync.Map
	lookup     KeyLookup
	ttl        time.Duration
	staticKeys map[string]bool
	now        func() time.Time
}

// NewAuthenticator accepts a nil lookup, in which case only the configured keys validate.
func NewAuthenticator(cfg *config.Config, lookup KeyLookup) *Authenticator {
	staticKeys := make(map[string]bool, len(cfg.ValidAPIKeys))
	for _, k := range cfg.ValidAPIKeys {
		if k != "" {
			staticKeys[k] = true
		}
	}

	return &Authenticator{
		lookup:     lookup,
		ttl:        time.Duration(cfg.AuthCacheTTLSeconds) * time.Second,
		staticKeys: staticKeys,
		now:        time.Now,
	}
}

// Enabled reports whether any key source is configured.
func (a *Authenticator) Enabled() bool {
	return len(a.staticKeys) > 0 || a.lookup != nil
}

func (a *Authenticator) Validate(ctx context.Context, apiKey string) bool {
	// Level 0: static config keys
	if a.staticKeys[apiKey] {
		return true
	}

	// Level 1: in-memory cache
	if raw, ok := a.localCache.Load(apiKey); ok {
		entry := raw.(cacheEntry)
		if a.now().Before(entry.expiresAt) {
			return true
		}
		a.localCache.Delete(apiKey)
	}

	if a.lookup == nil {
		return false
	}

	// Level 2: Redis lookup
	owner, err := a.lookup.GetAPIKey(ctx, apiKey)
	if err != nil || owner == "" {
		return false
	}

	a.localCache.Store(apiKey, cacheEntry{
		owner:     owner,
		expiresAt: a.now().Add(a.ttl),
	})

	return true
}
