package render

import (
	"fmt"
	"strings"

	"github.com/planhaus/planhaus/pkg/plan"
)

// Summary formats a layout document as a human-readable text report:
// the space, each placed room with its position, and the quality metrics.
func Summary(doc plan.Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Layout for %gx%g space (%g units²)\n",
		doc.Dimensions.Width, doc.Dimensions.Height, doc.Dimensions.Area)
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n\n")

	if len(doc.Rooms) == 0 {
		b.WriteString("No rooms placed.\n")
	}
	for _, room := range doc.Rooms {
		pos := "unplaced"
		if room.Position != nil {
			pos = fmt.Sprintf("at (%g, %g)", room.Position.X, room.Position.Y)
		}
		fmt.Fprintf(&b, "  %-20s %gx%g  %s\n",
			room.Name, room.Dimensions.Width, room.Dimensions.Height, pos)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Score:       %.2f\n", doc.Metrics.Score)
	fmt.Fprintf(&b, "Utilization: %.1f%%\n", doc.Metrics.Utilization*100)
	fmt.Fprintf(&b, "Valid:       %t\n", doc.Metrics.IsValid)

	if len(doc.Metrics.Violations) > 0 {
		b.WriteString("\nViolations:\n")
		for _, v := range doc.Metrics.Violations {
			fmt.Fprintf(&b, "  - %s\n", v)
		}
	}

	return b.String()
}
