package session

import (
	"context"
	"time"

	"github.com/Checker-Finance/usuarios-console/pkg/secrets"
)

// MemoryStore keeps sessions in process memory. Records expire after the configured TTL
// and are lost on restart.
type MemoryStore struct {
	cache *secrets.Cache[Data]
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: secrets.NewCache[Data](ttl)}
}

func (m *MemoryStore) Load(_ context.Context, sid string) (Data, error) {
	d, _ := m.cache.Get(sid)
	return d, nil
}

func (m *MemoryStore) Save(_ context.Context, sid string, data Data) error {
	m.cache.Set(sid, data)
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, sid string) error {
	m.cache.Delete(sid)
	return nil
}

func (m *MemoryStore) HealthCheck(context.Context) error { return nil }

// RunSweeper evicts expired sessions every interval until ctx is done.
func (m *MemoryStore) RunSweeper(ctx context.Context, interval time.Duration) {
	m.cache.RunSweeper(ctx, interval)
}
