package graph_test

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schemagraph/schemagraph/lib/format/formattest"
	"github.com/schemagraph/schemagraph/lib/graph"
	"github.com/schemagraph/schemagraph/lib/util"
)

func cmd(id string, phase graph.Phase, deps ...string) graph.Command {
	return graph.Command{
		Id:           id,
		Phase:        phase,
		Statements:   []string{"-- " + id},
		Description:  "Run " + id,
		Dependencies: util.NewStrSet(deps...),
	}
}

func ids(cmds []graph.Command) []string {
	return util.Map(cmds, func(c graph.Command) string { return c.Id })
}

func waitsOnRegistered(c graph.Command, position map[string]int) bool {
	for _, dep := range c.DependsOn() {
		if _, ok := position[dep]; ok {
			return true
		}
	}
	return false
}

func sortedIds(t *testing.T, g *graph.Graph) []string {
	sorted, err := g.Sorted()
	require.NoError(t, err)
	return ids(sorted)
}

func TestGraph_PhaseThenIdOrdering(t *testing.T) {
	g := graph.New()
	g.AddCommand(cmd("b", graph.PhaseCreate))
	g.AddCommand(cmd("a", graph.PhaseCreate))
	g.AddCommand(cmd("z", graph.PhaseDrop))
	g.AddCommand(cmd("m", graph.PhaseAlter))
	g.AddCommand(cmd("p", graph.PhasePostHelper))

	assert.Equal(t, []string{"z", "m", "a", "b", "p"}, sortedIds(t, g))
}

func TestGraph_DependenciesBeatPhases(t *testing.T) {
	g := graph.New()
	g.AddCommand(cmd("create_x", graph.PhaseCreate))
	g.AddCommand(cmd("drop_y", graph.PhaseDrop, "create_x"))
	g.AddCommand(cmd("alter_w", graph.PhaseAlter))

	assert.Equal(t, []string{"alter_w", "create_x", "drop_y"}, sortedIds(t, g))
}

func TestGraph_DanglingDependenciesAreIgnored(t *testing.T) {
	g := graph.New()
	g.AddCommand(cmd("a", graph.PhaseAlter, "never_registered"))
	g.AddCommand(cmd("b", graph.PhaseDrop, "a", "also_missing"))

	assert.Equal(t, []string{"a", "b"}, sortedIds(t, g))
}

func TestGraph_CycleIsReported(t *testing.T) {
	g := graph.New()
	g.AddCommand(cmd("a", graph.PhaseAlter, "c"))
	g.AddCommand(cmd("b", graph.PhaseAlter, "a"))
	g.AddCommand(cmd("c", graph.PhaseAlter, "b"))
	g.AddCommand(cmd("free", graph.PhaseDrop))

	_, err := g.Sorted()
	require.Error(t, err)
	assert.True(t, errors.Is(err, graph.ErrCircularDependency))

	var cycle *graph.CycleError
	require.True(t, errors.As(err, &cycle))
	assert.Equal(t, []string{"a", "b", "c"}, cycle.Ids)

	_, err = g.ToScript(nil)
	assert.True(t, errors.Is(err, graph.ErrCircularDependency))

	lines := g.ReportLines()
	require.Len(t, lines, 2)
	assert.Equal(t, graph.ReportHeader, lines[0])
	assert.Contains(t, lines[1], "circular dependency")
}

func TestGraph_SelfDependencyIsACycle(t *testing.T) {
	g := graph.New()
	g.AddCommand(cmd("a", graph.PhaseAlter, "a"))
	_, err := g.Sorted()
	assert.True(t, errors.Is(err, graph.ErrCircularDependency))
}

func TestGraph_RandomDagsSortTopologically(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewSource(seed))
			n := 5 + rng.Intn(40)
			g := graph.New()
			// edges only point at lower indices, so the graph is acyclic
			for i := 0; i < n; i++ {
				deps := []string{}
				for j := 0; j < i; j++ {
					if rng.Intn(6) == 0 {
						deps = append(deps, fmt.Sprintf("cmd_%03d", j))
					}
				}
				if rng.Intn(8) == 0 {
					deps = append(deps, "dangling")
				}
				g.AddCommand(cmd(fmt.Sprintf("cmd_%03d", i), graph.Phase(rng.Intn(4)), deps...))
			}

			sorted, err := g.Sorted()
			require.NoError(t, err)
			require.Len(t, sorted, n)

			position := map[string]int{}
			for i, c := range sorted {
				position[c.Id] = i
			}
			for _, c := range sorted {
				for _, dep := range c.DependsOn() {
					if depPos, ok := position[dep]; ok {
						assert.Less(t, depPos, position[c.Id], "%s must follow %s", c.Id, dep)
					}
				}
			}

			// a command waiting on nothing is ready from the start, so no
			// command of a later phase can overtake it
			for _, c := range sorted {
				if !waitsOnRegistered(c, position) {
					for _, other := range sorted {
						if other.Phase > c.Phase {
							assert.Less(t, position[c.Id], position[other.Id], "%s must precede later phase %s", c.Id, other.Id)
						}
					}
				}
			}

			again, err := g.Sorted()
			require.NoError(t, err)
			assert.Equal(t, ids(sorted), ids(again))
			assert.Equal(t, util.Map(sorted, graph.Command.DependsOn), util.Map(again, graph.Command.DependsOn))
		})
	}
}

func TestGraph_ToScriptWrapsSortedStatements(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	g := graph.New()
	g.AddCommand(graph.Command{Id: "create_a", Phase: graph.PhaseCreate, Statements: []string{"CREATE a;", "GRANT a;"}})
	g.AddCommand(graph.Command{Id: "drop_b", Phase: graph.PhaseDrop, Statements: []string{"DROP b;"}})

	platform := formattest.NewMockPlatform(ctrl)
	platform.EXPECT().
		WrapInTransaction([]string{"DROP b;", "CREATE a;", "GRANT a;"}).
		Return("wrapped").
		Times(1)

	script, err := g.ToScript(platform)
	require.NoError(t, err)
	assert.Equal(t, "wrapped", script)
}

func TestGraph_ReportLines(t *testing.T) {
	g := graph.New()
	assert.Equal(t, []string{graph.ReportHeader}, g.ReportLines())

	g.AddCommand(cmd("b", graph.PhaseCreate))
	g.AddCommand(cmd("a", graph.PhaseDrop))
	g.AddCommand(graph.Command{Id: "quiet", Phase: graph.PhaseAlter, Statements: []string{"x"}})
	assert.Equal(t, []string{graph.ReportHeader, "- Run a", "- Run b"}, g.ReportLines())
}

func TestGraph_AddCommandReplacesAndCopies(t *testing.T) {
	g := graph.New()
	first := cmd("a", graph.PhaseDrop)
	g.AddCommand(first)
	first.Statements[0] = "mutated"
	first.Dependencies.Add("late")

	stored, ok := g.Command("a")
	require.True(t, ok)
	assert.Equal(t, []string{"-- a"}, stored.Statements)
	assert.Empty(t, stored.DependsOn())

	g.AddCommand(cmd("a", graph.PhaseCreate))
	stored, _ = g.Command("a")
	assert.Equal(t, graph.PhaseCreate, stored.Phase)
	assert.Equal(t, 1, g.Len())

	_, ok = g.Command("missing")
	assert.False(t, ok)
}

func TestGraph_DataLoss(t *testing.T) {
	typed := func(id string, kind graph.CommandKind, target string) graph.Command {
		c := cmd(id, graph.PhaseAlter)
		c.Kind = kind
		c.Target = target
		return c
	}

	g := graph.New()
	g.AddCommand(typed("add_column_x", graph.KindAddColumn, "dbo.t.x"))
	g.AddCommand(typed("alter_column_y", graph.KindAlterColumn, "dbo.t.y"))
	assert.False(t, g.HasDataLoss())

	// a recreated column is dropped and added under the same target
	g.AddCommand(typed("drop_column_x", graph.KindDropColumn, "DBO.T.X"))
	assert.False(t, g.HasDataLoss())

	g.AddCommand(typed("drop_column_z", graph.KindDropColumn, "dbo.t.z"))
	assert.True(t, g.HasDataLoss())
	assert.Equal(t, []string{"drop_column_z"}, g.DestructiveCommands())

	g.AddCommand(typed("drop_table_old", graph.KindDropTable, "dbo.old"))
	assert.Equal(t, []string{"drop_column_z", "drop_table_old"}, g.DestructiveCommands())
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "drop", graph.PhaseDrop.String())
	assert.Equal(t, "post-helper", graph.PhasePostHelper.String())
	assert.Equal(t, "phase(9)", graph.Phase(9).String())
}
