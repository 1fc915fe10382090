package strategy_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
	"github.com/AntonStoeckl/graph-strategies-go/graph/strategy"
)

type namedStrategy struct {
	strategy.BaseStrategy
	name string
}

func Test_Option(t *testing.T) {
	s := &namedStrategy{name: "a"}

	present, ok := strategy.Some(s).Get()
	assert.True(t, ok)
	assert.Same(t, s, present)
	assert.True(t, strategy.Some(s).IsPresent())

	_, ok = strategy.None().Get()
	assert.False(t, ok)
	assert.False(t, strategy.Option{}.IsPresent(), "the zero value is absent")
}

func Test_Shared_LastWriteWins(t *testing.T) {
	// setup
	ctx := context.Background()
	holder := strategy.NewShared()
	a := &namedStrategy{name: "a"}
	b := &namedStrategy{name: "b"}

	// act + assert
	assert.False(t, holder.Strategy(ctx).IsPresent(), "a new holder has no active strategy")

	require.NoError(t, holder.SetStrategy(ctx, strategy.Some(a)))
	require.NoError(t, holder.SetStrategy(ctx, strategy.Some(b)))

	active, ok := holder.Strategy(ctx).Get()
	assert.True(t, ok)
	assert.Same(t, b, active)

	require.NoError(t, holder.SetStrategy(ctx, strategy.None()))
	assert.False(t, holder.Strategy(ctx).IsPresent())
}

func Test_Shared_IsVisibleAcrossScopes(t *testing.T) {
	// setup
	holder := strategy.NewShared()
	a := &namedStrategy{name: "a"}

	// act
	require.NoError(t, holder.SetStrategy(strategy.WithScope(context.Background()), strategy.Some(a)))

	// assert
	active, ok := holder.Strategy(strategy.WithScope(context.Background())).Get()
	assert.True(t, ok)
	assert.Same(t, a, active)
}

func Test_Holders_RejectNilStrategy(t *testing.T) {
	// setup
	ctx := strategy.WithScope(context.Background())
	a := &namedStrategy{name: "a"}
	var typedNil *namedStrategy

	holders := map[string]strategy.Holder{
		"shared": strategy.NewShared(),
		"scoped": strategy.NewScoped(),
	}

	for name, holder := range holders {
		t.Run(name, func(t *testing.T) {
			// arrange
			require.NoError(t, holder.SetStrategy(ctx, strategy.Some(a)))

			// act
			err := holder.SetStrategy(ctx, strategy.Some(nil))

			// assert
			assert.ErrorIs(t, err, graph.ErrNilStrategy)

			active, ok := holder.Strategy(ctx).Get()
			assert.True(t, ok, "a rejected write must not change state")
			assert.Same(t, a, active)

			assert.ErrorIs(t, holder.SetStrategy(ctx, strategy.Some(typedNil)), graph.ErrNilStrategy)
		})
	}
}

func Test_Scoped_IsolatesConcurrentScopes(t *testing.T) {
	// setup
	holder := strategy.NewScoped()
	const scopes = 50

	var wg sync.WaitGroup
	observed := make([]strategy.GraphStrategy, scopes)
	expected := make([]strategy.GraphStrategy, scopes)

	// act
	for i := 0; i < scopes; i++ {
		expected[i] = &namedStrategy{name: string(rune('a' + i%26))}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			ctx := strategy.WithScope(context.Background())
			if err := holder.SetStrategy(ctx, strategy.Some(expected[i])); err != nil {
				return
			}

			for j := 0; j < 100; j++ {
				s, ok := holder.Strategy(ctx).Get()
				if !ok || s != expected[i] {
					return
				}
			}

			observed[i], _ = holder.Strategy(ctx).Get()
		}(i)
	}

	wg.Wait()

	// assert
	for i := 0; i < scopes; i++ {
		assert.Same(t, expected[i], observed[i], "scope %d must only ever see its own strategy", i)
	}

	assert.Equal(t, scopes, holder.Scopes())
}

func Test_Scoped_SlotLifecycle(t *testing.T) {
	// setup
	holder := strategy.NewScoped()
	a := &namedStrategy{name: "a"}
	first := strategy.WithScope(context.Background())
	second := strategy.WithScope(context.Background())

	// act + assert
	assert.False(t, holder.Strategy(first).IsPresent(), "a first read initializes the slot as absent")
	assert.Equal(t, 1, holder.Scopes())

	require.NoError(t, holder.SetStrategy(first, strategy.Some(a)))
	assert.False(t, holder.Strategy(second).IsPresent(), "writes in one scope are invisible to another")
	assert.Equal(t, 2, holder.Scopes())

	id, ok := strategy.ScopeFromContext(first)
	require.True(t, ok)
	joined := strategy.WithScopeID(context.Background(), id)

	active, ok := holder.Strategy(joined).Get()
	assert.True(t, ok, "a context bound to the same scope id shares the slot")
	assert.Same(t, a, active)

	holder.Release(first)
	assert.Equal(t, 1, holder.Scopes())
	assert.False(t, holder.Strategy(joined).IsPresent(), "a released scope starts over")

	holder.Release(context.Background())
}

func Test_Scoped_WithoutScope(t *testing.T) {
	// setup
	ctx := context.Background()
	holder := strategy.NewScoped()

	// act
	err := holder.SetStrategy(ctx, strategy.Some(&namedStrategy{name: "a"}))

	// assert
	assert.ErrorIs(t, err, graph.ErrNoExecutionScope)
	assert.False(t, holder.Strategy(ctx).IsPresent())
	assert.Zero(t, holder.Scopes())

	_, ok := strategy.ScopeFromContext(ctx)
	assert.False(t, ok)
}
