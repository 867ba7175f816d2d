package rate

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Config defines outbound rate limiting parameters.
// A RequestsPerSecond of zero or less disables limiting.
type Config struct {
	RequestsPerSecond float64
	Burst             int
}

// Manager holds one token-bucket limiter per key.
type Manager struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	defaults Config
}

func NewManager(defaults Config) *Manager {
	if defaults.Burst <= 0 {
		defaults.Burst = 1
	}
	return &Manager{
		limiters: make(map[string]*rate.Limiter),
		defaults: defaults,
	}
}

// Enabled reports whether the manager limits anything at all.
func (m *Manager) Enabled() bool {
	return m != nil && m.defaults.RequestsPerSecond > 0
}

func (m *Manager) GetLimiter(key string) *rate.Limiter {
	m.mu.RLock()
	if lim, ok := m.limiters[key]; ok {
		m.mu.RUnlock()
		return lim
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if lim, ok := m.limiters[key]; ok {
		return lim
	}
	lim := rate.NewLimiter(rate.Limit(m.defaults.RequestsPerSecond), m.defaults.Burst)
	m.limiters[key] = lim
	return lim
}

// Wait blocks until key may issue a request or ctx is done.
func (m *Manager) Wait(ctx context.Context, key string) error {
	if !m.Enabled() {
		return nil
	}
	return m.GetLimiter(key).Wait(ctx)
}
