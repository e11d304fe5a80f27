package session

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/schema"

	"github.com/boutiqo/server/internal/gateway"
	logx "github.com/boutiqo/server/pkg/logger"
)

// Turn roles as persisted in the durable history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultReplayDepth bounds how many durable turns are replayed into a
// rebuilt conversation.
const DefaultReplayDepth = 20

// GlobalKey is the shared scope when no shop is provided.
const GlobalKey = "global"

// Identity priming pair. Every replayed conversation starts with these two
// turns before any persisted history.
const (
	primingQuestion = "Tu es l'assistant business de la plateforme. Tu aides le commerçant à gérer " +
		"sa boutique: produits, stocks, ventes, dépenses, dettes et conversion. " +
		"Réponds toujours de façon concise, chiffrée et actionnable."
	primingAnswer = "Compris. Je suis prêt à analyser la boutique et à répondre aux questions business."
)

// ScopeKey maps a shop identifier to its session lineage. There is no
// cross-scope sharing of history.
func ScopeKey(shopID string) string {
	if shopID == "" {
		return GlobalKey
	}
	return "shop_" + shopID
}

// Store is the keyed conversational memory: durable turns plus a hot cache
// of the live conversation, with bounded replay depth.
type Store struct {
	turns gateway.TurnStore
	cache Cache
	depth int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(turns gateway.TurnStore, cache Cache, depth int) *Store {
	if depth <= 0 {
		depth = DefaultReplayDepth
	}
	return &Store{
		turns: turns,
		cache: cache,
		depth: depth,
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock serialises turns per scope key: the live conversation is not safe
// for concurrent mutation. Returns the unlock func.
func (s *Store) Lock(key string) func() {
	s.mu.Lock()
	m, ok := s.locks[key]
	if !ok {
		m = &sync.Mutex{}
		s.locks[key] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// GetOrCreate returns the cached live conversation, or rebuilds one from
// the priming pair plus up to depth most recent durable turns, oldest first.
func (s *Store) GetOrCreate(ctx context.Context, key string) ([]*schema.Message, error) {
	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		// a broken cache read is recoverable: rebuild from durable history
		logx.Warn().Err(err).Str("session_key", key).Msg("session cache read failed, rebuilding")
	} else if ok {
		return cached, nil
	}

	history, err := s.turns.RecentTurns(ctx, key, s.depth)
	if err != nil {
		return nil, err
	}

	msgs := make([]*schema.Message, 0, len(history)+2)
	msgs = append(msgs,
		schema.UserMessage(primingQuestion),
		schema.AssistantMessage(primingAnswer, nil),
	)
	for _, turn := range history {
		switch turn.Role {
		case RoleUser:
			msgs = append(msgs, schema.UserMessage(turn.Content))
		case RoleAssistant:
			msgs = append(msgs, schema.AssistantMessage(turn.Content, nil))
		}
	}

	if err := s.cache.Set(ctx, key, msgs); err != nil {
		logx.Warn().Err(err).Str("session_key", key).Msg("failed to cache rebuilt session")
	}
	return msgs, nil
}

// Append durably persists one turn. The in-memory conversation is updated
// separately via Save so history survives process restarts on its own.
func (s *Store) Append(ctx context.Context, key, role, content string) error {
	return s.turns.AppendTurn(ctx, key, role, content)
}

// Save stores the live conversation back into the hot cache after a turn.
func (s *Store) Save(ctx context.Context, key string, messages []*schema.Message) error {
	return s.cache.Set(ctx, key, messages)
}

// Invalidate drops the cached conversation so the next request rebuilds
// from durable history. Called on any unrecovered failure during a turn.
func (s *Store) Invalidate(ctx context.Context, key string) {
	if err := s.cache.Delete(ctx, key); err != nil {
		logx.Error().Err(err).Str("session_key", key).Msg("failed to invalidate session")
	}
}
