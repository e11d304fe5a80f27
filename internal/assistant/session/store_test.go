package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boutiqo/server/internal/gateway"
)

// fakeTurnStore is an in-memory append-only turn log with a load counter
// used to observe durable-history reloads.
type fakeTurnStore struct {
	mu    sync.Mutex
	turns map[string][]gateway.Turn
	loads int
}

func newFakeTurnStore() *fakeTurnStore {
	return &fakeTurnStore{turns: make(map[string][]gateway.Turn)}
}

func (f *fakeTurnStore) AppendTurn(ctx context.Context, sessionKey, role, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.turns[sessionKey] = append(f.turns[sessionKey], gateway.Turn{
		SessionKey: sessionKey,
		Role:       role,
		Content:    content,
		CreatedAt:  time.Now(),
	})
	return nil
}

func (f *fakeTurnStore) RecentTurns(ctx context.Context, sessionKey string, limit int) ([]gateway.Turn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	rows := f.turns[sessionKey]
	if len(rows) > limit {
		rows = rows[len(rows)-limit:]
	}
	out := make([]gateway.Turn, len(rows))
	copy(out, rows)
	return out, nil
}

func TestScopeKey(t *testing.T) {
	assert.Equal(t, "global", ScopeKey(""))
	assert.Equal(t, "shop_7", ScopeKey("7"))
}

func TestGetOrCreateStartsWithPrimingPair(t *testing.T) {
	store := NewStore(newFakeTurnStore(), NewMemoryCache(), DefaultReplayDepth)

	msgs, err := store.GetOrCreate(context.Background(), "global")
	require.NoError(t, err)

	require.Len(t, msgs, 2)
	assert.Equal(t, schema.User, msgs[0].Role)
	assert.Equal(t, schema.Assistant, msgs[1].Role)
}

func TestGetOrCreateReplaysBoundedHistory(t *testing.T) {
	turns := newFakeTurnStore()
	ctx := context.Background()
	for i := 0; i < 25; i++ {
		role := RoleUser
		if i%2 == 1 {
			role = RoleAssistant
		}
		require.NoError(t, turns.AppendTurn(ctx, "shop_1", role, fmt.Sprintf("turn %d", i)))
	}

	store := NewStore(turns, NewMemoryCache(), DefaultReplayDepth)
	msgs, err := store.GetOrCreate(ctx, "shop_1")
	require.NoError(t, err)

	// 2 priming turns plus at most 20 replayed
	require.Len(t, msgs, 22)
	assert.Equal(t, "turn 5", msgs[2].Content, "replay keeps the most recent turns")
	assert.Equal(t, "turn 24", msgs[21].Content)
}

func TestScopeIsolation(t *testing.T) {
	turns := newFakeTurnStore()
	ctx := context.Background()
	require.NoError(t, turns.AppendTurn(ctx, "shop_1", RoleUser, "question boutique 1"))
	require.NoError(t, turns.AppendTurn(ctx, "shop_2", RoleUser, "question boutique 2"))
	require.NoError(t, turns.AppendTurn(ctx, "global", RoleUser, "question globale"))

	store := NewStore(turns, NewMemoryCache(), DefaultReplayDepth)

	one, err := store.GetOrCreate(ctx, "shop_1")
	require.NoError(t, err)
	two, err := store.GetOrCreate(ctx, "shop_2")
	require.NoError(t, err)

	require.Len(t, one, 3)
	require.Len(t, two, 3)
	assert.Equal(t, "question boutique 1", one[2].Content)
	assert.Equal(t, "question boutique 2", two[2].Content)
}

func TestGetOrCreateUsesCacheUntilInvalidated(t *testing.T) {
	turns := newFakeTurnStore()
	store := NewStore(turns, NewMemoryCache(), DefaultReplayDepth)
	ctx := context.Background()

	_, err := store.GetOrCreate(ctx, "global")
	require.NoError(t, err)
	_, err = store.GetOrCreate(ctx, "global")
	require.NoError(t, err)
	assert.Equal(t, 1, turns.loads, "second call must hit the cache")

	store.Invalidate(ctx, "global")

	_, err = store.GetOrCreate(ctx, "global")
	require.NoError(t, err)
	assert.Equal(t, 2, turns.loads, "invalidation forces a durable reload")
}

func TestSaveUpdatesLiveConversation(t *testing.T) {
	turns := newFakeTurnStore()
	store := NewStore(turns, NewMemoryCache(), DefaultReplayDepth)
	ctx := context.Background()

	msgs, err := store.GetOrCreate(ctx, "global")
	require.NoError(t, err)

	msgs = append(msgs, schema.UserMessage("combien de ventes ?"))
	require.NoError(t, store.Save(ctx, "global", msgs))

	reloaded, err := store.GetOrCreate(ctx, "global")
	require.NoError(t, err)
	require.Len(t, reloaded, 3)
	assert.Equal(t, "combien de ventes ?", reloaded[2].Content)
	assert.Equal(t, 1, turns.loads)
}
