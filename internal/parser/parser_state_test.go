package parser

import (
	"os"
	"testing"

	"github.com/plantgo/plantgo/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStateTransition(t *testing.T) {
	t.Parallel()
	t.Run("InitialToState", func(t *testing.T) {
		t.Parallel()
		diagram, errs := Parse("@startuml\n[*] --> Idle\n@enduml")
		require.Empty(t, errs)
		require.Len(t, diagram.Statements, 1)
		tr, ok := diagram.Statements[0].(*ast.Transition)
		require.True(t, ok)
		assert.Equal(t, "[*]", tr.From)
		assert.Equal(t, "Idle", tr.To)
	})
	t.Run("WithEventLabel", func(t *testing.T) {
		t.Parallel()
		diagram, errs := Parse("@startuml\n[*] --> Idle\nIdle --> Running : start\n@enduml")
		require.Empty(t, errs)
		tr := diagram.Statements[1].(*ast.Transition)
		assert.Equal(t, "Idle", tr.From)
		assert.Equal(t, "Running", tr.To)
		assert.Equal(t, "start", tr.Event)
	})
	t.Run("WithGuard", func(t *testing.T) {
		t.Parallel()
		diagram, errs := Parse("@startuml\n[*] --> Idle\nIdle --> Running : start [ready]\n@enduml")
		require.Empty(t, errs)
		tr := diagram.Statements[1].(*ast.Transition)
		assert.Equal(t, "start", tr.Event)
		assert.Equal(t, "ready", tr.Guard)
	})
	t.Run("WithAction", func(t *testing.T) {
		t.Parallel()
		diagram, errs := Parse("@startuml\n[*] --> Idle\nIdle --> Running : start / logStart\n@enduml")
		require.Empty(t, errs)
		tr := diagram.Statements[1].(*ast.Transition)
		assert.Equal(t, "start", tr.Event)
		assert.Equal(t, "logStart", tr.Action)
	})
	t.Run("ToFinal", func(t *testing.T) {
		t.Parallel()
		diagram, errs := Parse("@startuml\nRunning --> [*]\n@enduml")
		require.Empty(t, errs)
		tr := diagram.Statements[0].(*ast.Transition)
		assert.Equal(t, "Running", tr.From)
		assert.Equal(t, "[*]", tr.To)
	})
}

func TestParseStateDeclaration(t *testing.T) {
	t.Parallel()
	t.Run("Simple", func(t *testing.T) {
		t.Parallel()
		diagram, errs := Parse("@startuml\nstate Idle\n@enduml")
		require.Empty(t, errs)
		st, ok := diagram.Statements[0].(*ast.State)
		require.True(t, ok)
		assert.Equal(t, "Idle", st.Name)
		assert.Equal(t, ast.StateSimple, st.Kind)
	})
	t.Run("WithAlias", func(t *testing.T) {
		t.Parallel()
		diagram, errs := Parse("@startuml\nstate \"Waiting For Input\" as Waiting\n@enduml")
		require.Empty(t, errs)
		st := diagram.Statements[0].(*ast.State)
		assert.Equal(t, "Waiting For Input", st.Name)
		assert.Equal(t, "Waiting", st.Alias)
		assert.Equal(t, "Waiting", st.ID())
	})
	t.Run("WithColor", func(t *testing.T) {
		t.Parallel()
		diagram, errs := Parse("@startuml\nstate Idle #lightblue\n@enduml")
		require.Empty(t, errs)
		st := diagram.Statements[0].(*ast.State)
		assert.Equal(t, "#lightblue", st.Color)
	})
	t.Run("Composite", func(t *testing.T) {
		t.Parallel()
		input := "@startuml\nstate Active {\n  [*] --> Processing\n  Processing --> Done\n}\n@enduml"
		diagram, errs := Parse(input)
		require.Empty(t, errs)
		st := diagram.Statements[0].(*ast.State)
		assert.Equal(t, ast.StateComposite, st.Kind)
		require.Len(t, st.InternalTransitions, 2)
	})
	t.Run("CompositeWithSubstates", func(t *testing.T) {
		t.Parallel()
		input := "@startuml\nstate Active {\n  state Processing\n  state Done\n}\n@enduml"
		diagram, errs := Parse(input)
		require.Empty(t, errs)
		st := diagram.Statements[0].(*ast.State)
		require.Len(t, st.Substates, 2)
	})
	t.Run("InternalAction", func(t *testing.T) {
		t.Parallel()
		input := "@startuml\nstate Active {\n  Active : entry / startTimer\n  Active : exit / stopTimer\n}\n@enduml"
		diagram, errs := Parse(input)
		require.Empty(t, errs)
		st := diagram.Statements[0].(*ast.State)
		assert.Equal(t, "startTimer", st.Entry)
		assert.Equal(t, "stopTimer", st.Exit)
	})
}

func TestParseStateFixture(t *testing.T) {
	t.Parallel()
	data, err := os.ReadFile("../../testdata/state_basic.puml")
	require.NoError(t, err)
	diagram, errs := Parse(string(data))
	require.Empty(t, errs, "fixture should parse without errors: %v", errs)
	var states, transitions int
	for _, stmt := range diagram.Statements {
		switch stmt.(type) {
		case *ast.State:
			states++
		case *ast.Transition:
			transitions++
		}
	}
	assert.GreaterOrEqual(t, states, 1)
	assert.GreaterOrEqual(t, transitions, 4)
}
