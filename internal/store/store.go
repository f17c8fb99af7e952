package store

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// Tier is one storage backend. Load reports a miss with ok=false; backend
// failures are reported as errors so the composing Store can swallow them.
type Tier interface {
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)
	Save(ctx context.Context, key string, value []byte) error
}

// Store composes a fast tier and a durable tier with read-through and
// write-through semantics. A missing or failing tier never surfaces to the
// caller: reads degrade to the fallback, writes stay best-effort.
type Store struct {
	Fast    Tier
	Durable Tier
}

// New returns a Store over the given tiers. Durable may be nil, in which case
// the store runs fast-tier only.
func New(fast, durable Tier) *Store {
	return &Store{Fast: fast, Durable: durable}
}

// Load tries the fast tier first, then the durable tier. A durable-tier hit is
// backfilled into the fast tier so later reads stay cheap.
func (s *Store) Load(ctx context.Context, key string) ([]byte, bool) {
	if raw, ok, err := s.Fast.Load(ctx, key); err == nil && ok {
		return raw, true
	}
	if s.Durable == nil {
		return nil, false
	}
	raw, ok, err := s.Durable.Load(ctx, key)
	if err != nil || !ok {
		if err != nil {
			zap.S().Named("store").Warnw("durable tier read failed", "key", key, "error", err)
		}
		return nil, false
	}
	if err := s.Fast.Save(ctx, key, raw); err != nil {
		zap.S().Named("store").Warnw("fast tier backfill failed", "key", key, "error", err)
	}
	return raw, true
}

// Save writes through to both tiers. Each write is attempted independently and
// failures are swallowed; in-memory state stays authoritative for the session.
func (s *Store) Save(ctx context.Context, key string, value []byte) {
	if err := s.Fast.Save(ctx, key, value); err != nil {
		zap.S().Named("store").Warnw("fast tier write failed", "key", key, "error", err)
	}
	if s.Durable == nil {
		return
	}
	if err := s.Durable.Save(ctx, key, value); err != nil {
		zap.S().Named("store").Warnw("durable tier write failed", "key", key, "error", err)
	}
}

// LoadSync reads from the fast tier only. It is the emergency path used when
// full initialization fails.
func (s *Store) LoadSync(key string) ([]byte, bool) {
	raw, ok, err := s.Fast.Load(context.Background(), key)
	if err != nil || !ok {
		return nil, false
	}
	return raw, true
}

// LoadJSON unmarshals the stored value for key, returning fallback on a miss
// or parse failure.
func LoadJSON[T any](ctx context.Context, s *Store, key string, fallback T) T {
	raw, ok := s.Load(ctx, key)
	if !ok {
		return fallback
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return fallback
	}
	return v
}

// LoadJSONSync is LoadJSON over the fast tier only.
func LoadJSONSync[T any](s *Store, key string, fallback T) T {
	raw, ok := s.LoadSync(key)
	if !ok {
		return fallback
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return fallback
	}
	return v
}

// SaveJSON marshals v and writes it through both tiers. Serialization failure
// is swallowed like any other storage write failure.
func SaveJSON(ctx context.Context, s *Store, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		zap.S().Named("store").Warnw("marshal failed", "key", key, "error", err)
		return
	}
	s.Save(ctx, key, raw)
}
