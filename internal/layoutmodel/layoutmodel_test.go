package layoutmodel

import (
	"testing"

	"github.com/plantgo/plantgo/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElementTypeString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		kind ElementType
		want string
	}{
		{Rectangle, "rectangle"},
		{Ellipse, "ellipse"},
		{Text, "text"},
		{Edge, "edge"},
		{Fragment, "fragment"},
		{State, "state"},
		{CompositeState, "composite_state"},
		{InitialState, "initial_state"},
		{FinalState, "final_state"},
		{Activation, "activation"},
		{ParticipantBox, "participant_box"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestBounds(t *testing.T) {
	t.Parallel()
	t.Run("Empty", func(t *testing.T) {
		t.Parallel()
		b := Bounds(nil)
		assert.True(t, b.Empty())
	})
	t.Run("UnionsAllElements", func(t *testing.T) {
		t.Parallel()
		elements := []LayoutElement{
			{ID: "a", Bounds: geom.Rect{X: 0, Y: 0, Width: 10, Height: 10}},
			{ID: "b", Bounds: geom.Rect{X: 20, Y: 0, Width: 10, Height: 10}},
		}
		b := Bounds(elements)
		assert.Equal(t, 0.0, b.X)
		assert.Equal(t, 30.0, b.Width)
	})
}

func TestLayoutElementProperty(t *testing.T) {
	t.Parallel()
	t.Run("Missing", func(t *testing.T) {
		t.Parallel()
		el := LayoutElement{ID: "a"}
		_, ok := el.Property("autonumber")
		assert.False(t, ok)
	})
	t.Run("WithPropertyIsImmutable", func(t *testing.T) {
		t.Parallel()
		el := LayoutElement{ID: "a"}
		updated := el.WithProperty("autonumber", "1")
		v, ok := updated.Property("autonumber")
		require.True(t, ok)
		assert.Equal(t, "1", v)
		_, stillMissing := el.Property("autonumber")
		assert.False(t, stillMissing, "original element must be unmodified")
	})
}
