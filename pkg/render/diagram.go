package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/planhaus/planhaus/pkg/plan"
)

// ConstraintDOT converts a space's rooms and relational constraints to
// Graphviz DOT format. Rooms become nodes labeled with name and size;
// min_distance and adjacency constraints become labeled edges. Unknown
// constraint types and constraints with missing room ids are drawn dashed so
// authoring mistakes are visible in the diagram even though the validator
// ignores them.
func ConstraintDOT(space plan.Space) string {
	var buf bytes.Buffer
	buf.WriteString("graph constraints {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	for _, room := range space.Rooms {
		label := fmt.Sprintf("%s\n%s", room.Name, room.Dimensions)
		fmt.Fprintf(&buf, "  %q [label=%q];\n", room.ID, label)
	}

	buf.WriteString("\n")
	for _, c := range space.Constraints {
		id1, id2 := c.RoomIDs()
		if id1 == "" || id2 == "" {
			continue
		}

		attrs := []string{fmt.Sprintf("label=%q", edgeLabel(c))}
		_, ok1 := space.RoomByID(id1)
		_, ok2 := space.RoomByID(id2)
		if !ok1 || !ok2 || !knownConstraint(c.Type) {
			attrs = append(attrs, "style=dashed", "color=grey")
		}

		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", id1, id2, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func knownConstraint(t string) bool {
	return t == plan.ConstraintMinDistance || t == plan.ConstraintAdjacency
}

func edgeLabel(c plan.Constraint) string {
	switch c.Type {
	case plan.ConstraintMinDistance:
		return fmt.Sprintf("min %g", c.MinDistance())
	case plan.ConstraintAdjacency:
		return fmt.Sprintf("adj ≤ %g", c.MaxDistance())
	default:
		return c.Type
	}
}

// DiagramSVG renders a constraint DOT graph to SVG using Graphviz.
func DiagramSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
