package layout

import (
	"testing"

	"github.com/plantgo/plantgo/internal/layoutmodel"
	"github.com/plantgo/plantgo/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateInitialAndFinalSentinels(t *testing.T) {
	t.Parallel()
	diagram, errs := parser.Parse("@startuml\n[*] --> Idle\nIdle --> [*]\n@enduml")
	require.Empty(t, errs)

	result := State(diagram, DefaultConfig())
	require.NotEmpty(t, result.Elements)

	var sawInitial, sawFinal, sawIdle bool
	for _, el := range result.Elements {
		switch el.Kind {
		case layoutmodel.InitialState:
			sawInitial = true
		case layoutmodel.FinalState:
			sawFinal = true
		case layoutmodel.State:
			if el.Text == "Idle" {
				sawIdle = true
			}
		}
	}
	assert.True(t, sawInitial, "expected an initial state sentinel")
	assert.True(t, sawFinal, "expected a final state sentinel")
	assert.True(t, sawIdle, "expected an Idle state node")
}

func TestStateLevelsFollowTransitionOrder(t *testing.T) {
	t.Parallel()
	diagram, errs := parser.Parse("@startuml\n[*] --> Idle\nIdle --> Running : start\nRunning --> Done : finish\n@enduml")
	require.Empty(t, errs)

	result := State(diagram, DefaultConfig())
	byName := make(map[string]float64)
	for _, el := range result.Elements {
		if el.Kind == layoutmodel.State {
			byName[el.Text] = el.Bounds.Y
		}
	}
	require.Contains(t, byName, "Idle")
	require.Contains(t, byName, "Running")
	require.Contains(t, byName, "Done")
	assert.Less(t, byName["Idle"], byName["Running"])
	assert.Less(t, byName["Running"], byName["Done"])
}

func TestStateCompositeRecursion(t *testing.T) {
	t.Parallel()
	src := "@startuml\nstate Outer {\n  [*] --> Inner\n  Inner --> [*]\n}\n@enduml"
	diagram, errs := parser.Parse(src)
	require.Empty(t, errs)

	result := State(diagram, DefaultConfig())
	found := false
	for _, el := range result.Elements {
		if el.Kind == layoutmodel.CompositeState {
			found = true
			require.NotNil(t, el.CompositeState)
			assert.Equal(t, "Outer", el.CompositeState.Name)
		}
	}
	assert.True(t, found, "expected a composite state container for Outer")
}

func TestStateBackwardEdgeFansOut(t *testing.T) {
	t.Parallel()
	src := "@startuml\n[*] --> A\nA --> B : forward\nB --> A : back1\nB --> A : back2\n@enduml"
	diagram, errs := parser.Parse(src)
	require.Empty(t, errs)

	result := State(diagram, DefaultConfig())
	var backwardEdges []layoutmodel.LayoutElement
	for _, el := range result.Elements {
		if el.Kind == layoutmodel.Edge && el.EdgePayload != nil &&
			(el.EdgePayload.Label == "back1" || el.EdgePayload.Label == "back2") {
			backwardEdges = append(backwardEdges, el)
		}
	}
	require.Len(t, backwardEdges, 2)
	assert.NotEqual(t, backwardEdges[0].Bounds.Right(), backwardEdges[1].Bounds.Right(),
		"backward edges should fan out at different x offsets")
}

func TestStateEmptyDiagram(t *testing.T) {
	t.Parallel()
	diagram, errs := parser.Parse("@startuml\n@enduml")
	require.Empty(t, errs)
	result := State(diagram, DefaultConfig())
	assert.Empty(t, result.Elements)
}
