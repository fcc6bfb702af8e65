package layout

import (
	"fmt"
	"strings"
	"testing"

	"github.com/plantgo/plantgo/internal/layoutmodel"
	"github.com/plantgo/plantgo/internal/parser"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// genSequenceSource builds a random sequence-diagram source with
// participantCount distinct participants (named "ActorN" to stay clear of
// reserved keywords, per the lexer's identifier rules) and one message
// between consecutive participants carrying the given label.
func genSequenceSource(participantCount int, label string) string {
	var b strings.Builder
	b.WriteString("@startuml\n")
	for i := range participantCount {
		fmt.Fprintf(&b, "participant Actor%d\n", i)
	}
	for i := 0; i+1 < participantCount; i++ {
		fmt.Fprintf(&b, "Actor%d -> Actor%d : %s\n", i, i+1, label)
	}
	b.WriteString("@enduml\n")
	return b.String()
}

// isSafeLabelRune restricts a generated label to plain ASCII letters and
// spaces, so it survives parser_sequence.go's
// strings.TrimSpace(p.readRestOfLine()) unchanged and never collides with
// punctuation the grammar treats specially.
func isSafeLabelRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == ' '
}

// safeLabel draws a short, non-empty, trimmed label made only of letters
// and spaces.
func safeLabel(t *rapid.T) string {
	s := rapid.StringOf(rapid.Rune()).Filter(func(s string) bool {
		if len(s) == 0 || len(s) > 20 {
			return false
		}
		for _, r := range s {
			if !isSafeLabelRune(r) {
				return false
			}
		}
		return strings.TrimSpace(s) != ""
	}).Draw(t, "label")
	return strings.TrimSpace(s)
}

// TestPropertyLayoutAlwaysProducesPositiveBounds is invariant 1: a parsed
// diagram, once laid out, has a strictly positive bounds width and height.
func TestPropertyLayoutAlwaysProducesPositiveBounds(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 8).Draw(t, "participantCount")
		label := safeLabel(t)
		src := genSequenceSource(count, label)

		diagram, errs := parser.Parse(src)
		require.Empty(t, errs)

		result := Sequence(diagram, DefaultConfig())
		require.Greater(t, result.Bounds.Width, 0.0)
		require.Greater(t, result.Bounds.Height, 0.0)
	})
}

// TestPropertyLayoutIsDeterministic is invariant 3: laying out the same
// parsed diagram twice produces the identical ordered sequence of element
// ids.
func TestPropertyLayoutIsDeterministic(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 8).Draw(t, "participantCount")
		label := safeLabel(t)
		src := genSequenceSource(count, label)

		diagram, errs := parser.Parse(src)
		require.Empty(t, errs)

		first := Sequence(diagram, DefaultConfig())
		second := Sequence(diagram, DefaultConfig())

		require.Equal(t, len(first.Elements), len(second.Elements))
		for i := range first.Elements {
			require.Equal(t, first.Elements[i].ID, second.Elements[i].ID)
		}
	})
}

// TestPropertyEdgesHaveDistinctConsecutivePoints is invariant 4: every Edge
// element has at least two points, and no two consecutive points coincide.
func TestPropertyEdgesHaveDistinctConsecutivePoints(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 8).Draw(t, "participantCount")
		label := safeLabel(t)
		src := genSequenceSource(count, label)

		diagram, errs := parser.Parse(src)
		require.Empty(t, errs)

		result := Sequence(diagram, DefaultConfig())
		for _, el := range result.Elements {
			if el.Kind != layoutmodel.Edge {
				continue
			}
			require.NotNil(t, el.EdgePayload)
			pts := el.EdgePayload.Points
			require.GreaterOrEqual(t, len(pts), 2)
			for i := 1; i < len(pts); i++ {
				require.NotEqual(t, pts[i-1], pts[i],
					"consecutive points of edge %s must differ", el.ID)
			}
		}
	})
}

// TestPropertyLongerLabelNeverShrinksWidth is invariant 6: widening a
// message label never makes the overall bounds narrower than it was with a
// shorter label, holding the rest of the diagram fixed.
func TestPropertyLongerLabelNeverShrinksWidth(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(2, 6).Draw(t, "participantCount")
		shortLabel := "hi"
		extra := rapid.StringOf(rapid.Rune()).Filter(func(s string) bool {
			if len(s) == 0 || len(s) > 40 {
				return false
			}
			for _, r := range s {
				if !isSafeLabelRune(r) {
					return false
				}
			}
			return true
		}).Draw(t, "extra")
		longLabel := shortLabel + " " + strings.TrimSpace(extra)

		shortDiagram, errs := parser.Parse(genSequenceSource(count, shortLabel))
		require.Empty(t, errs)
		longDiagram, errs := parser.Parse(genSequenceSource(count, longLabel))
		require.Empty(t, errs)

		shortResult := Sequence(shortDiagram, DefaultConfig())
		longResult := Sequence(longDiagram, DefaultConfig())

		require.GreaterOrEqual(t, longResult.Bounds.Width, shortResult.Bounds.Width)
	})
}
