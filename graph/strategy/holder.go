package strategy

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
)

// Holder owns the optional active GraphStrategy of a graph instance.
type Holder interface {
	// SetStrategy replaces the active strategy. None() clears it.
	// Some(nil) is rejected with graph.ErrNilStrategy before any state changes.
	SetStrategy(ctx context.Context, s Option) error

	// Strategy returns the active strategy, or None() when there is none.
	Strategy(ctx context.Context) Option
}

// Shared is a Holder with a single slot visible to every caller.
//
// Reads and writes are atomic, but there is no ordering guarantee between concurrent callers:
// a read may observe any strategy being written at the same time. Callers that need ordering
// must synchronize externally. The zero value holds no strategy and is ready to use.
type Shared struct {
	slot atomic.Pointer[Option]
}

// NewShared creates a Shared holder without an active strategy.
func NewShared() *Shared {
	return &Shared{}
}

// SetStrategy overwrites the single slot. The context is not consulted.
func (h *Shared) SetStrategy(_ context.Context, s Option) error {
	if !s.valid() {
		return graph.ErrNilStrategy
	}

	h.slot.Store(&s)

	return nil
}

// Strategy reads the single slot. The context is not consulted.
func (h *Shared) Strategy(_ context.Context) Option {
	if current := h.slot.Load(); current != nil {
		return *current
	}

	return None()
}

// ScopeID identifies one execution scope of a Scoped holder.
type ScopeID = uuid.UUID

// contextKey is a private type to prevent context key collisions.
type contextKey string

// scopeKey is the context key used to store the execution scope.
const scopeKey contextKey = "strategy.execution_scope"

// WithScope returns a context that starts a new execution scope.
//
// Every goroutine, transaction or request that needs its own strategy under a Scoped holder
// should run with its own scope. Scopes do not nest: the new id replaces any inherited one.
func WithScope(ctx context.Context) context.Context {
	return WithScopeID(ctx, uuid.New())
}

// WithScopeID returns a context bound to an existing execution scope, so several calls
// (for example the statements of one transaction) can share a slot.
func WithScopeID(ctx context.Context, id ScopeID) context.Context {
	return context.WithValue(ctx, scopeKey, id)
}

// ScopeFromContext extracts the execution scope from the context.
func ScopeFromContext(ctx context.Context) (ScopeID, bool) {
	id, ok := ctx.Value(scopeKey).(ScopeID)
	return id, ok
}

// Scoped is a Holder with one independent slot per execution scope.
//
// Writes in one scope are never visible in another. A scope's slot is created lazily,
// as absent, on its first read or write and lives until Release is called for it.
type Scoped struct {
	mu    sync.RWMutex
	slots map[ScopeID]Option
}

// NewScoped creates a Scoped holder with no live scopes.
func NewScoped() *Scoped {
	return &Scoped{slots: make(map[ScopeID]Option)}
}

// SetStrategy sets the strategy of the scope carried by ctx.
// Returns graph.ErrNoExecutionScope when ctx carries no scope.
func (h *Scoped) SetStrategy(ctx context.Context, s Option) error {
	if !s.valid() {
		return graph.ErrNilStrategy
	}

	id, ok := ScopeFromContext(ctx)
	if !ok {
		return graph.ErrNoExecutionScope
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.slots[id] = s

	return nil
}

// Strategy returns the strategy of the scope carried by ctx.
// A context without a scope always sees None().
func (h *Scoped) Strategy(ctx context.Context) Option {
	id, ok := ScopeFromContext(ctx)
	if !ok {
		return None()
	}

	h.mu.RLock()
	s, exists := h.slots[id]
	h.mu.RUnlock()

	if exists {
		return s
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if s, exists = h.slots[id]; !exists {
		h.slots[id] = None()
	}

	return s
}

// Release drops the slot of the scope carried by ctx. Releasing an unknown scope is a no-op.
func (h *Scoped) Release(ctx context.Context) {
	id, ok := ScopeFromContext(ctx)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.slots, id)
}

// Scopes returns the number of live scope slots.
func (h *Scoped) Scopes() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.slots)
}

var (
	_ Holder = (*Shared)(nil)
	_ Holder = (*Scoped)(nil)
)
