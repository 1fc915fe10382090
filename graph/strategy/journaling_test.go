package strategy_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/graph-strategies-go/graph"
	"github.com/AntonStoeckl/graph-strategies-go/graph/journal"
	"github.com/AntonStoeckl/graph-strategies-go/graph/strategy"
	"github.com/AntonStoeckl/graph-strategies-go/graph/tinkergraph"
)

var errJournalUnavailable = errors.New("journal unavailable")

type failingJournal struct{}

func (failingJournal) Append(context.Context, journal.MutationRecord, ...journal.MutationRecord) error {
	return errJournalUnavailable
}

func givenJournaledGraph(t *testing.T) (*tinkergraph.Graph, *journal.MemoryJournal) {
	t.Helper()

	g, err := tinkergraph.New()
	require.NoError(t, err)

	j := journal.NewMemoryJournal()
	journaling, err := strategy.Journaling(j)
	require.NoError(t, err)
	require.NoError(t, g.StrategyHolder().SetStrategy(context.Background(), strategy.Some(journaling)))

	return g, j
}

func operationsOf(records journal.MutationRecords) []graph.Operation {
	ops := make([]graph.Operation, 0, len(records))
	for _, r := range records {
		ops = append(ops, r.Operation)
	}

	return ops
}

func Test_Journaling_RecordsSuccessfulMutations(t *testing.T) {
	// setup
	ctx := context.Background()
	g, j := givenJournaledGraph(t)

	// act
	marko, err := g.AddVertex(ctx, "name", "marko")
	require.NoError(t, err)
	josh, err := g.AddVertex(ctx, "name", "josh")
	require.NoError(t, err)
	knows, err := marko.AddEdge(ctx, "knows", josh, "weight", 0.5)
	require.NoError(t, err)
	_, err = marko.SetProperty(ctx, "age", 29)
	require.NoError(t, err)
	age, err := marko.Property(ctx, "age")
	require.NoError(t, err)
	require.NoError(t, age.Remove(ctx))
	require.NoError(t, marko.Remove(ctx))

	// assert
	records, err := j.Query(ctx, journal.MatchingAnyRecord())
	require.NoError(t, err)

	assert.Equal(t, []graph.Operation{
		graph.OpAddVertex,
		graph.OpAddVertex,
		graph.OpAddEdge,
		graph.OpSetProperty,
		graph.OpRemoveProperty,
		graph.OpRemoveEdge,
		graph.OpRemoveVertex,
	}, operationsOf(records))

	for i, r := range records {
		assert.Equal(t, journal.SequenceNumberUint(i+1), r.SequenceNumber)
		assert.False(t, r.OccurredAt.IsZero())
	}

	var edgeValue struct {
		Out        int64          `json:"out"`
		In         int64          `json:"in"`
		Properties map[string]any `json:"properties"`
	}
	require.NoError(t, records[2].DecodeValue(&edgeValue))
	assert.Equal(t, marko.ID(), edgeValue.Out)
	assert.Equal(t, josh.ID(), edgeValue.In)
	assert.InDelta(t, 0.5, edgeValue.Properties["weight"], 0.0001)
	assert.Equal(t, "knows", records[2].Label)

	var age29 int
	require.NoError(t, records[3].DecodeValue(&age29))
	assert.Equal(t, 29, age29)
	assert.Equal(t, "age", records[3].Key)

	removedEdge, err := j.Query(ctx, journal.BuildFilter().ForElement(knows.ID()).Finalize())
	require.NoError(t, err)
	assert.Equal(t, []graph.Operation{graph.OpAddEdge, graph.OpRemoveEdge}, operationsOf(removedEdge))
}

func Test_Journaling_SkipsFailuresAndNoOps(t *testing.T) {
	// setup
	ctx := context.Background()
	g, j := givenJournaledGraph(t)

	v, err := g.AddVertex(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, j.Len())

	// act
	_, err = v.AddEdge(ctx, "", v)
	assert.ErrorIs(t, err, graph.ErrEdgeLabelEmpty)

	_, err = v.SetProperty(ctx, "", "value")
	assert.ErrorIs(t, err, graph.ErrPropertyKeyEmpty)

	missing, err := v.Property(ctx, "missing")
	require.NoError(t, err)
	require.NoError(t, missing.Remove(ctx))

	require.NoError(t, v.Remove(ctx))
	require.NoError(t, v.Remove(ctx))

	// assert
	records, err := j.Query(ctx, journal.MatchingAnyRecord())
	require.NoError(t, err)
	assert.Equal(t, []graph.Operation{graph.OpAddVertex, graph.OpRemoveVertex}, operationsOf(records))
}

func Test_Journaling_UnencodableValues_LeaveGraphUntouched(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(ctx context.Context, g graph.Graph, v graph.Vertex) error
	}{
		{
			name: "set property NaN",
			mutate: func(ctx context.Context, _ graph.Graph, v graph.Vertex) error {
				_, err := v.SetProperty(ctx, "score", math.NaN())
				return err
			},
		},
		{
			name: "set property infinity",
			mutate: func(ctx context.Context, _ graph.Graph, v graph.Vertex) error {
				_, err := v.SetProperty(ctx, "score", math.Inf(-1))
				return err
			},
		},
		{
			name: "add vertex with complex property",
			mutate: func(ctx context.Context, g graph.Graph, _ graph.Vertex) error {
				_, err := g.AddVertex(ctx, "c", complex(1, 2))
				return err
			},
		},
		{
			name: "add edge with NaN property",
			mutate: func(ctx context.Context, _ graph.Graph, v graph.Vertex) error {
				_, err := v.AddEdge(ctx, "self", v, "weight", math.NaN())
				return err
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			ctx := context.Background()
			g, j := givenJournaledGraph(t)
			v, err := g.AddVertex(ctx)
			require.NoError(t, err)

			// act
			err = tc.mutate(ctx, g, v)

			// assert
			assert.ErrorIs(t, err, journal.ErrMarshalingValueFailed)
			assert.Len(t, g.Vertices(ctx), 1)
			assert.Empty(t, g.Edges(ctx))
			assert.Empty(t, v.Keys(ctx))
			assert.Equal(t, 1, j.Len())
		})
	}
}

func Test_Journaling_RemovingPropertyTwice_RecordsOnce(t *testing.T) {
	// setup
	ctx := context.Background()
	g, j := givenJournaledGraph(t)
	v, err := g.AddVertex(ctx, "name", "marko")
	require.NoError(t, err)
	name, err := v.Property(ctx, "name")
	require.NoError(t, err)
	sameName, err := v.Property(ctx, "name")
	require.NoError(t, err)

	// act
	require.NoError(t, name.Remove(ctx))
	require.NoError(t, name.Remove(ctx))
	require.NoError(t, sameName.Remove(ctx))

	// assert
	records, err := j.Query(ctx, journal.MatchingAnyRecord())
	require.NoError(t, err)
	assert.Equal(t, []graph.Operation{graph.OpAddVertex, graph.OpRemoveProperty}, operationsOf(records))
	assert.Empty(t, v.Keys(ctx))
}

func Test_Journaling_ReturnsJournalFailures(t *testing.T) {
	// setup
	ctx := context.Background()
	g, err := tinkergraph.New()
	require.NoError(t, err)

	journaling, err := strategy.Journaling(failingJournal{})
	require.NoError(t, err)
	require.NoError(t, g.StrategyHolder().SetStrategy(ctx, strategy.Some(journaling)))

	// act
	_, err = g.AddVertex(ctx)

	// assert
	assert.ErrorIs(t, err, errJournalUnavailable)
	assert.Len(t, g.Vertices(ctx), 1, "the mutation happened before the journal failed")
}

func Test_Journaling_RejectsNilJournal(t *testing.T) {
	var typedNil *journal.MemoryJournal

	_, err := strategy.Journaling(nil)
	assert.ErrorIs(t, err, journal.ErrNilJournal)

	_, err = strategy.Journaling(typedNil)
	assert.ErrorIs(t, err, journal.ErrNilJournal)
}
