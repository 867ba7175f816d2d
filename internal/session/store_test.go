package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisStoreFromClient(rdb, ttl, zap.NewNop()), mr
}

// storeContract exercises the behaviour every Store implementation shares.
func storeContract(t *testing.T, st Store) {
	ctx := context.Background()

	d, err := st.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, Data{}, d, "unknown session is anonymous")

	require.NoError(t, st.Save(ctx, "sid-1", Data{Token: "T1", User: "alice"}))
	require.NoError(t, st.Save(ctx, "sid-2", Data{Token: "T2", User: "bob"}))

	d, err = st.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, Data{Token: "T1", User: "alice"}, d)

	require.NoError(t, st.Save(ctx, "sid-1", Data{Token: "T3", User: "alice"}))
	d, _ = st.Load(ctx, "sid-1")
	assert.Equal(t, "T3", d.Token, "Save overwrites")

	require.NoError(t, st.Clear(ctx, "sid-1"))
	d, _ = st.Load(ctx, "sid-1")
	assert.Equal(t, Data{}, d)

	d, _ = st.Load(ctx, "sid-2")
	assert.Equal(t, Data{Token: "T2", User: "bob"}, d, "sessions are isolated")

	assert.NoError(t, st.HealthCheck(ctx))
}

func TestMemoryStore_Contract(t *testing.T) {
	storeContract(t, NewMemoryStore(time.Minute))
}

func TestRedisStore_Contract(t *testing.T) {
	st, mr := newTestRedisStore(t, time.Minute)
	defer mr.Close()

	storeContract(t, st)
}

func TestRedisStore_TTLApplied(t *testing.T) {
	st, mr := newTestRedisStore(t, 30*time.Minute)
	defer mr.Close()

	require.NoError(t, st.Save(context.Background(), "sid", Data{Token: "T1"}))
	assert.Equal(t, 30*time.Minute, mr.TTL("session:sid"))

	mr.FastForward(31 * time.Minute)
	d, err := st.Load(context.Background(), "sid")
	require.NoError(t, err)
	assert.Empty(t, d.Token, "expired session reads as unauthenticated")
}

func TestRedisStore_CorruptRecord(t *testing.T) {
	st, mr := newTestRedisStore(t, time.Minute)
	defer mr.Close()

	require.NoError(t, mr.Set("session:sid", "not-json"))
	_, err := st.Load(context.Background(), "sid")
	assert.Error(t, err)
}

func TestRedisStore_Down(t *testing.T) {
	st, mr := newTestRedisStore(t, time.Minute)
	mr.Close()

	_, err := st.Load(context.Background(), "sid")
	assert.Error(t, err)
	assert.Error(t, st.HealthCheck(context.Background()))
}

func TestHolder_BindsSession(t *testing.T) {
	st := NewMemoryStore(time.Minute)
	h := NewHolder(st, "sid-9")
	ctx := context.Background()

	assert.Equal(t, "sid-9", h.SessionID())
	require.NoError(t, h.Save(ctx, Data{Token: "T1", User: "alice"}))

	raw, _ := st.Load(ctx, "sid-9")
	assert.Equal(t, "T1", raw.Token)

	tok, err := h.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "T1", tok)

	user, err := h.User(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", user)

	require.NoError(t, h.Clear(ctx))
	tok, _ = h.Token(ctx)
	assert.Empty(t, tok)
}

func TestNewID_UniqueAndValid(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)
	assert.True(t, ValidID(a))
}

func TestValidID_RejectsForeignValues(t *testing.T) {
	for _, sid := range []string{"", "attacker-chosen", "sid-admin", "{" + NewID() + "}", "urn:uuid:" + NewID()} {
		assert.False(t, ValidID(sid), sid)
	}
}

func TestFingerprint(t *testing.T) {
	sid := NewID()
	fp := Fingerprint(sid)

	assert.Len(t, fp, 16)
	assert.Equal(t, fp, Fingerprint(sid), "stable for one session")
	assert.NotEqual(t, fp, Fingerprint(NewID()))
	assert.NotContains(t, sid, fp)
	assert.Equal(t, fp, NewHolder(NewMemoryStore(time.Minute), sid).Fingerprint())
}
